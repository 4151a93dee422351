package kernel

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the storage-native identifier for users and activity log entries.
type UUID struct {
	id uuid.UUID
}

func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", err)
	}
	return fromGoogle(id)
}

func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", err)
	}
	return fromGoogle(id)
}

func fromGoogle(id uuid.UUID) (UUID, error) {
	result := UUID{id: id}
	if err := result.Validate(); err != nil {
		return UUID{}, err
	}
	return result, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the google/uuid representation used by persistence DTOs.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// Prefix namespaces human-readable codes per entity type.
type Prefix string

const (
	ShipmentPrefix Prefix = "SHP"
	VehiclePrefix  Prefix = "FLT"
	CustomerPrefix Prefix = "CUST"
	LocationPrefix Prefix = "LOC"
)

const (
	codeSuffixLength    = 8
	codeMaxSuffixLength = 24
)

// Code is a human-readable identifier of the form PREFIX-SUFFIX. Lookups by
// logical id use the code, never an internal storage key.
type Code struct {
	prefix Prefix
	suffix string
}

// NewCode generates a fresh code with a random upper-case hex suffix.
func NewCode(prefix Prefix) Code {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return Code{prefix: prefix, suffix: strings.ToUpper(raw[:codeSuffixLength])}
}

// ParseCode accepts codes such as "FLT-002" or "shp-7f3a21c0". The prefix is
// matched case-insensitively and the result is normalized to upper case.
func ParseCode(prefix Prefix, s string) (Code, error) {
	param := strings.ToLower(string(prefix)) + " id"
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Code{}, errs.NewValueIsRequiredError(param)
	}

	head, suffix, found := strings.Cut(s, "-")
	if !found || Prefix(head) != prefix {
		return Code{}, errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%q does not start with %s-", s, prefix))
	}
	if suffix == "" || len(suffix) > codeMaxSuffixLength {
		return Code{}, errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%q has an invalid suffix length", s))
	}
	for _, r := range suffix {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '-' {
			return Code{}, errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%q contains %q", s, r))
		}
	}

	return Code{prefix: prefix, suffix: suffix}, nil
}

// MustParseCode is intended for tests and seed data.
func MustParseCode(prefix Prefix, s string) Code {
	c, err := ParseCode(prefix, s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Code) String() string {
	if c.suffix == "" {
		return ""
	}
	return string(c.prefix) + "-" + c.suffix
}

func (c Code) Prefix() Prefix {
	return c.prefix
}

func (c Code) IsEqual(other Code) bool {
	return c.prefix == other.prefix && c.suffix == other.suffix
}

func (c Code) IsZero() bool {
	return c.suffix == ""
}

func (c Code) Validate() error {
	if c.IsZero() {
		return errs.NewValueIsRequiredError("code must be created via NewCode or ParseCode")
	}
	return nil
}
