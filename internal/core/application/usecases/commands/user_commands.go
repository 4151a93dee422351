package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/application/access"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// MinPasswordLength applies to new passwords only.
const MinPasswordLength = 6

var (
	ErrCreateUserCommandIsNotConstructed = errors.New(
		"CreateUserCommand must be created via NewCreateUserCommand constructor",
	)
	ErrUpdateUserCommandIsNotConstructed = errors.New(
		"UpdateUserCommand must be created via NewUpdateUserCommand constructor",
	)
	ErrDeleteUserCommandIsNotConstructed = errors.New(
		"DeleteUserCommand must be created via NewDeleteUserCommand constructor",
	)
)

type CreateUserParams struct {
	Username string
	Email    string
	FullName string
	Phone    string
	Password string
	Role     string
}

// UpdateUserParams is the explicit patch schema of a user. A nil or blank
// Password keeps the current password.
type UpdateUserParams struct {
	Username *string
	Email    *string
	FullName *string
	Phone    *string
	Password *string
	Role     *string
	Active   *bool
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return errs.NewValueIsOutOfRangeError("password length", len(password), MinPasswordLength, "unbounded")
	}
	return nil
}

type CreateUserCommand struct {
	actor    access.Actor
	profile  user.Profile
	role     user.Role
	password string
	guard    guard.ConstructorGuard
}

func NewCreateUserCommand(actor access.Actor, params CreateUserParams) (CreateUserCommand, error) {
	role, err := user.ParseRole(params.Role)
	if err = errors.Join(err, validatePassword(params.Password)); err != nil {
		return CreateUserCommand{}, err
	}

	return CreateUserCommand{
		actor: actor,
		profile: user.Profile{
			Username: params.Username,
			Email:    params.Email,
			FullName: params.FullName,
			Phone:    params.Phone,
		},
		role:     role,
		password: params.Password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateUserCommand) Profile() user.Profile { return c.profile }
func (c CreateUserCommand) Role() user.Role       { return c.role }

func (c CreateUserCommand) Validate() error {
	return c.guard.Validate(ErrCreateUserCommandIsNotConstructed)
}

type UpdateUserCommand struct {
	actor  access.Actor
	id     kernel.UUID
	params UpdateUserParams
	role   *user.Role
	guard  guard.ConstructorGuard
}

func NewUpdateUserCommand(actor access.Actor, id string, params UpdateUserParams) (UpdateUserCommand, error) {
	userID, err := kernel.UUIDFromString(id)

	var role *user.Role
	if params.Role != nil {
		r, rErr := user.ParseRole(*params.Role)
		err = errors.Join(err, rErr)
		role = &r
	}
	if params.Password != nil && strings.TrimSpace(*params.Password) != "" {
		err = errors.Join(err, validatePassword(*params.Password))
	}

	if err != nil {
		return UpdateUserCommand{}, err
	}

	return UpdateUserCommand{actor: actor, id: userID, params: params, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateUserCommand) ID() kernel.UUID { return c.id }

func (c UpdateUserCommand) Validate() error {
	return c.guard.Validate(ErrUpdateUserCommandIsNotConstructed)
}

func (c UpdateUserCommand) newPassword() string {
	if c.params.Password == nil {
		return ""
	}
	return strings.TrimSpace(*c.params.Password)
}

func (c UpdateUserCommand) apply(profile user.Profile) user.Profile {
	p := c.params
	if p.Username != nil {
		profile.Username = *p.Username
	}
	if p.Email != nil {
		profile.Email = *p.Email
	}
	if p.FullName != nil {
		profile.FullName = *p.FullName
	}
	if p.Phone != nil {
		profile.Phone = *p.Phone
	}
	return profile
}

type DeleteUserCommand struct {
	actor access.Actor
	id    kernel.UUID
	guard guard.ConstructorGuard
}

// NewDeleteUserCommand refuses to delete the actor's own account.
func NewDeleteUserCommand(actor access.Actor, id string) (DeleteUserCommand, error) {
	userID, err := kernel.UUIDFromString(id)
	if err != nil {
		return DeleteUserCommand{}, err
	}
	if userID.IsEqual(actor.UserID) {
		return DeleteUserCommand{}, errs.NewValueIsInvalidError("cannot delete your own account")
	}

	return DeleteUserCommand{actor: actor, id: userID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteUserCommand) ID() kernel.UUID { return c.id }

func (c DeleteUserCommand) Validate() error {
	return c.guard.Validate(ErrDeleteUserCommandIsNotConstructed)
}
