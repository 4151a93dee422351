package commands

import (
	"errors"

	"logistics/internal/core/application/access"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var (
	ErrCreateCustomerCommandIsNotConstructed = errors.New(
		"CreateCustomerCommand must be created via NewCreateCustomerCommand constructor",
	)
	ErrUpdateCustomerCommandIsNotConstructed = errors.New(
		"UpdateCustomerCommand must be created via NewUpdateCustomerCommand constructor",
	)
	ErrDeleteCustomerCommandIsNotConstructed = errors.New(
		"DeleteCustomerCommand must be created via NewDeleteCustomerCommand constructor",
	)
)

// UpdateCustomerParams is the explicit patch schema of a customer.
type UpdateCustomerParams struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Company *string
}

func (p UpdateCustomerParams) apply(profile customer.Profile) customer.Profile {
	if p.Name != nil {
		profile.Name = *p.Name
	}
	if p.Email != nil {
		profile.Email = *p.Email
	}
	if p.Phone != nil {
		profile.Phone = *p.Phone
	}
	if p.Address != nil {
		profile.Address = *p.Address
	}
	if p.Company != nil {
		profile.Company = *p.Company
	}
	return profile
}

type CreateCustomerCommand struct {
	actor   access.Actor
	profile customer.Profile
	guard   guard.ConstructorGuard
}

// NewCreateCustomerCommand accepts the profile as is; field rules are enforced
// by customer.NewCustomer.
func NewCreateCustomerCommand(actor access.Actor, profile customer.Profile) CreateCustomerCommand {
	return CreateCustomerCommand{actor: actor, profile: profile, guard: guard.NewConstructorGuard()}
}

func (c CreateCustomerCommand) Profile() customer.Profile { return c.profile }

func (c CreateCustomerCommand) Validate() error {
	return c.guard.Validate(ErrCreateCustomerCommandIsNotConstructed)
}

type UpdateCustomerCommand struct {
	actor  access.Actor
	id     kernel.Code
	params UpdateCustomerParams
	guard  guard.ConstructorGuard
}

func NewUpdateCustomerCommand(actor access.Actor, id string, params UpdateCustomerParams) (UpdateCustomerCommand, error) {
	code, err := kernel.ParseCode(kernel.CustomerPrefix, id)
	if err != nil {
		return UpdateCustomerCommand{}, err
	}
	return UpdateCustomerCommand{actor: actor, id: code, params: params, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateCustomerCommand) ID() kernel.Code { return c.id }

func (c UpdateCustomerCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCustomerCommandIsNotConstructed)
}

type DeleteCustomerCommand struct {
	actor access.Actor
	id    kernel.Code
	guard guard.ConstructorGuard
}

func NewDeleteCustomerCommand(actor access.Actor, id string) (DeleteCustomerCommand, error) {
	code, err := kernel.ParseCode(kernel.CustomerPrefix, id)
	if err != nil {
		return DeleteCustomerCommand{}, err
	}
	return DeleteCustomerCommand{actor: actor, id: code, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteCustomerCommand) ID() kernel.Code { return c.id }

func (c DeleteCustomerCommand) Validate() error {
	return c.guard.Validate(ErrDeleteCustomerCommandIsNotConstructed)
}
