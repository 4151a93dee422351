// Package user holds back office accounts. Users are keyed by a storage-native
// UUID and carry one Role. Password hashing happens outside the domain; the
// aggregate only stores the resulting hash and never exposes it in Profile.
package user

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

type Profile struct {
	Username string
	Email    string
	FullName string
	Phone    string
}

type User struct {
	id            kernel.UUID
	profile       Profile
	role          Role
	active        bool
	passwordHash  string
	createdAt     time.Time
	updatedAt     time.Time
	isConstructed bool
}

// NewUser creates an active user with an already hashed password.
func NewUser(id kernel.UUID, profile Profile, role Role, passwordHash string, now time.Time) (*User, error) {
	return RestoreUser(State{
		ID:           id,
		Profile:      profile,
		Role:         role,
		Active:       true,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

type State struct {
	ID           kernel.UUID
	Profile      Profile
	Role         Role
	Active       bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func RestoreUser(state State) (*User, error) {
	u := &User{
		active:        state.Active,
		createdAt:     state.CreatedAt,
		updatedAt:     state.UpdatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(state.ID),
		u.setProfile(state.Profile),
		u.setRole(state.Role),
		u.setPasswordHash(state.PasswordHash),
	); err != nil {
		return nil, err
	}

	return u, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID      { return u.id }
func (u *User) Profile() Profile     { return u.profile }
func (u *User) Username() string     { return u.profile.Username }
func (u *User) Role() Role           { return u.role }
func (u *User) IsActive() bool       { return u.active }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Update replaces profile and role. An empty passwordHash keeps the current one.
func (u *User) Update(profile Profile, role Role, passwordHash string, now time.Time) error {
	next := *u
	var hashErr error
	if passwordHash != "" {
		hashErr = next.setPasswordHash(passwordHash)
	}
	if err := errors.Join(next.setProfile(profile), next.setRole(role), hashErr); err != nil {
		return err
	}

	next.updatedAt = now
	*u = next
	return nil
}

func (u *User) Deactivate(now time.Time) {
	u.active = false
	u.updatedAt = now
}

func (u *User) Activate(now time.Time) {
	u.active = true
	u.updatedAt = now
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setProfile(p Profile) error {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.FullName = strings.TrimSpace(p.FullName)
	p.Phone = strings.TrimSpace(p.Phone)

	var err error
	if n := len(p.Username); n < MinUsernameLength || n > MaxUsernameLength {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("username length", n, MinUsernameLength, MaxUsernameLength))
	}
	if strings.ContainsAny(p.Username, " \t\r\n") {
		err = errors.Join(err, errs.NewValueIsInvalidError("username must not contain whitespace"))
	}
	if p.Email == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("email"))
	} else if _, mErr := mail.ParseAddress(p.Email); mErr != nil {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("email", mErr))
	}
	if p.FullName == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("full name"))
	}
	if err != nil {
		return err
	}

	u.profile = p
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password")
	}
	u.passwordHash = hash
	return nil
}
