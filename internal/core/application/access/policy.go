// Package access decides whether an authenticated actor may perform an action.
//
// Role permissions are a fixed (role, resource, action) table evaluated by a
// casbin enforcer. Roles are not hierarchical: every pair lists its roles
// explicitly. DRIVER access to a single vehicle or its shipments is further
// scoped by ownership, checked with EnsureVehicleOwnership once the vehicle is
// loaded.
package access

import (
	_ "embed"
	"fmt"

	"logistics/internal/core/domain/model/fleet"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"
)

//go:embed model.conf
var modelConf string

//go:embed policy.csv
var policyCSV string

type Resource string

const (
	Shipments            Resource = "shipments"
	ShipmentStatus       Resource = "shipment_status"
	ShipmentConfirmation Resource = "shipment_confirmation"
	Fleet                Resource = "fleet"
	Customers            Resource = "customers"
	Locations            Resource = "locations"
	Users                Resource = "users"
	Drivers              Resource = "drivers"
	Logs                 Resource = "logs"
	Dashboard            Resource = "dashboard"
)

type Action string

const (
	Read   Action = "read"
	Create Action = "create"
	Update Action = "update"
	Delete Action = "delete"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID    kernel.UUID
	Username  string
	Role      user.Role
	IPAddress string
}

func (a Actor) IsDriver() bool { return a.Role == user.Driver }

// Validate returns an unauthenticated error for an actor without identity.
func (a Actor) Validate() error {
	if a.UserID.IsZero() {
		return errs.NewUnauthenticatedError("missing user identity")
	}
	if err := a.Role.Validate(); err != nil {
		return errs.NewUnauthenticatedErrorWithCause("unknown role", err)
	}
	return nil
}

// Policy evaluates role permissions.
type Policy struct {
	enforcer *casbin.Enforcer
}

// NewPolicy builds the enforcer from the embedded model and policy table.
func NewPolicy() (*Policy, error) {
	m, err := model.NewModelFromString(modelConf)
	if err != nil {
		return nil, fmt.Errorf("failed to load access model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, stringadapter.NewAdapter(policyCSV))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize access enforcer: %w", err)
	}

	return &Policy{enforcer: enforcer}, nil
}

// Authorize returns nil when actor's role may perform action on resource.
func (p *Policy) Authorize(actor Actor, resource Resource, action Action) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	allowed, err := p.enforcer.Enforce(string(actor.Role), string(resource), string(action))
	if err != nil {
		return errs.NewDependencyError("access policy", err)
	}
	if !allowed {
		return errs.NewForbiddenError(fmt.Sprintf("role %s may not %s %s", actor.Role, action, resource))
	}

	return nil
}

// EnsureVehicleOwnership restricts a DRIVER to the vehicle assigned to them.
// Other roles pass. A nil vehicle is never owned.
func EnsureVehicleOwnership(actor Actor, vehicle *fleet.Vehicle) error {
	if !actor.IsDriver() {
		return nil
	}
	if vehicle == nil || !vehicle.IsAssignedTo(actor.UserID) {
		return errs.NewForbiddenError("vehicle is not assigned to the current driver")
	}
	return nil
}
