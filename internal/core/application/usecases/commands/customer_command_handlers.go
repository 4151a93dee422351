package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
)

// CustomerCommandHandler handles customer registration, edits and removal.
type CustomerCommandHandler struct {
	uowFactory CustomerUoWFactory
}

func NewCustomerCommandHandler(uowFactory CustomerUoWFactory) CustomerCommandHandler {
	return CustomerCommandHandler{uowFactory: uowFactory}
}

func (h CustomerCommandHandler) Create(ctx context.Context, command CreateCustomerCommand) (kernel.Code, error) {
	if err := command.Validate(); err != nil {
		return kernel.Code{}, err
	}

	c, err := customer.NewCustomer(kernel.NewCode(kernel.CustomerPrefix), command.Profile(), time.Now().UTC())
	if err != nil {
		return kernel.Code{}, err
	}

	err = h.inTx(ctx, func(uow CustomerUoW) error {
		return uow.CustomerRepository().Add(ctx, c)
	})
	if err != nil {
		return kernel.Code{}, err
	}

	return c.ID(), nil
}

func (h CustomerCommandHandler) Update(ctx context.Context, command UpdateCustomerCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.inTx(ctx, func(uow CustomerUoW) error {
		repo := uow.CustomerRepository()

		c, err := repo.Get(ctx, command.ID())
		if err != nil {
			return err
		}

		if err = c.Update(command.params.apply(c.Profile()), time.Now().UTC()); err != nil {
			return err
		}

		return repo.Update(ctx, c)
	})
}

func (h CustomerCommandHandler) Delete(ctx context.Context, command DeleteCustomerCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.inTx(ctx, func(uow CustomerUoW) error {
		return uow.CustomerRepository().Delete(ctx, command.ID())
	})
}

func (h CustomerCommandHandler) inTx(ctx context.Context, fn func(uow CustomerUoW) error) error {
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
