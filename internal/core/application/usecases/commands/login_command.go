package commands

import (
	"errors"
	"strings"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrLoginCommandIsNotConstructed = errors.New(
	"LoginCommand must be created via NewLoginCommand constructor",
)

type LoginCommand struct {
	username  string
	password  string
	ipAddress string
	guard     guard.ConstructorGuard
}

func NewLoginCommand(username, password, ipAddress string) (LoginCommand, error) {
	username = strings.TrimSpace(username)

	var err error
	if username == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("username"))
	}
	if password == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("password"))
	}
	if err != nil {
		return LoginCommand{}, err
	}

	return LoginCommand{
		username:  username,
		password:  password,
		ipAddress: ipAddress,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c LoginCommand) Username() string { return c.username }

func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}
