package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/location"
)

// LocationCommandHandler handles warehouse, hub and branch records.
type LocationCommandHandler struct {
	uowFactory LocationUoWFactory
}

func NewLocationCommandHandler(uowFactory LocationUoWFactory) LocationCommandHandler {
	return LocationCommandHandler{uowFactory: uowFactory}
}

func (h LocationCommandHandler) Create(ctx context.Context, command CreateLocationCommand) (kernel.Code, error) {
	if err := command.Validate(); err != nil {
		return kernel.Code{}, err
	}

	l, err := location.NewLocation(kernel.NewCode(kernel.LocationPrefix), command.Attributes(), time.Now().UTC())
	if err != nil {
		return kernel.Code{}, err
	}

	err = h.inTx(ctx, func(uow LocationUoW) error {
		return uow.LocationRepository().Add(ctx, l)
	})
	if err != nil {
		return kernel.Code{}, err
	}

	return l.ID(), nil
}

func (h LocationCommandHandler) Update(ctx context.Context, command UpdateLocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.inTx(ctx, func(uow LocationUoW) error {
		repo := uow.LocationRepository()

		l, err := repo.Get(ctx, command.ID())
		if err != nil {
			return err
		}

		attrs, err := command.apply(l.Attributes())
		if err != nil {
			return err
		}

		if err = l.Update(attrs, time.Now().UTC()); err != nil {
			return err
		}

		return repo.Update(ctx, l)
	})
}

func (h LocationCommandHandler) Delete(ctx context.Context, command DeleteLocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.inTx(ctx, func(uow LocationUoW) error {
		return uow.LocationRepository().Delete(ctx, command.ID())
	})
}

func (h LocationCommandHandler) inTx(ctx context.Context, fn func(uow LocationUoW) error) error {
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
