package user

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Role is a fixed, non-hierarchical capability class. Roles do not inherit
// from one another; every permission is granted per role.
type Role string

const (
	Admin   Role = "ADMIN"
	Manager Role = "MANAGER"
	Staff   Role = "STAFF"
	Driver  Role = "DRIVER"
)

func Roles() []Role {
	return []Role{Admin, Manager, Staff, Driver}
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case Admin, Manager, Staff, Driver:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not one of ADMIN, MANAGER, STAFF, DRIVER", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}
