package commands

import (
	"context"
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrBootstrapAdminCommandIsNotConstructed = errors.New(
	"BootstrapAdminCommand must be created via NewBootstrapAdminCommand constructor",
)

// BootstrapAdminCommand describes the administrator account created on an
// empty installation.
type BootstrapAdminCommand struct {
	profile  user.Profile
	password string
	guard    guard.ConstructorGuard
}

func NewBootstrapAdminCommand(profile user.Profile, password string) (BootstrapAdminCommand, error) {
	if err := validatePassword(password); err != nil {
		return BootstrapAdminCommand{}, err
	}
	return BootstrapAdminCommand{profile: profile, password: password, guard: guard.NewConstructorGuard()}, nil
}

func (c BootstrapAdminCommand) Validate() error {
	return c.guard.Validate(ErrBootstrapAdminCommandIsNotConstructed)
}

// BootstrapAdminCommandHandler creates the administrator unless a user with the
// same username exists. It reports whether an account was created.
type BootstrapAdminCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
}

func NewBootstrapAdminCommandHandler(uowFactory UserUoWFactory, hasher ports.PasswordHasher) BootstrapAdminCommandHandler {
	return BootstrapAdminCommandHandler{uowFactory: uowFactory, hasher: hasher}
}

func (h BootstrapAdminCommandHandler) Handle(ctx context.Context, command BootstrapAdminCommand) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()

	_, err := repo.GetByUsername(ctx, command.profile.Username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return false, err
	}

	hash, err := h.hasher.Hash(command.password)
	if err != nil {
		return false, err
	}

	admin, err := user.NewUser(kernel.NewUUID(), command.profile, user.Admin, hash, time.Now().UTC())
	if err != nil {
		return false, err
	}

	if err = repo.Add(ctx, admin); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
