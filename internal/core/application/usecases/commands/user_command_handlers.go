package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/ports"
)

// UserCommandHandler manages user accounts. Passwords are hashed before they
// reach the aggregate; a duplicate username is a conflict from the repository.
type UserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
}

func NewUserCommandHandler(uowFactory UserUoWFactory, hasher ports.PasswordHasher) UserCommandHandler {
	return UserCommandHandler{uowFactory: uowFactory, hasher: hasher}
}

func (h UserCommandHandler) Create(ctx context.Context, command CreateUserCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	hash, err := h.hasher.Hash(command.password)
	if err != nil {
		return kernel.UUID{}, err
	}

	u, err := user.NewUser(kernel.NewUUID(), command.Profile(), command.Role(), hash, time.Now().UTC())
	if err != nil {
		return kernel.UUID{}, err
	}

	err = h.inTx(ctx, func(uow UserUoW) error {
		return uow.UserRepository().Add(ctx, u)
	})
	if err != nil {
		return kernel.UUID{}, err
	}

	return u.ID(), nil
}

func (h UserCommandHandler) Update(ctx context.Context, command UpdateUserCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	var hash string
	if password := command.newPassword(); password != "" {
		var err error
		if hash, err = h.hasher.Hash(password); err != nil {
			return err
		}
	}

	return h.inTx(ctx, func(uow UserUoW) error {
		repo := uow.UserRepository()

		u, err := repo.Get(ctx, command.ID())
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		role := u.Role()
		if command.role != nil {
			role = *command.role
		}

		if err = u.Update(command.apply(u.Profile()), role, hash, now); err != nil {
			return err
		}

		if active := command.params.Active; active != nil {
			if *active {
				u.Activate(now)
			} else {
				u.Deactivate(now)
			}
		}

		return repo.Update(ctx, u)
	})
}

func (h UserCommandHandler) Delete(ctx context.Context, command DeleteUserCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.inTx(ctx, func(uow UserUoW) error {
		return uow.UserRepository().Delete(ctx, command.ID())
	})
}

func (h UserCommandHandler) inTx(ctx context.Context, fn func(uow UserUoW) error) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := fn(uow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
