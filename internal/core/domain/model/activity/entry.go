// Package activity holds the append-only audit trail entry.
package activity

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// Action is the code of an audited operation.
type Action string

const (
	CreateShipment  Action = "CREATE_SHIPMENT"
	UpdateStatus    Action = "UPDATE_STATUS"
	UpdateShipment  Action = "UPDATE_SHIPMENT"
	DeleteShipment  Action = "DELETE_SHIPMENT"
	ConfirmDelivery Action = "CONFIRM_DELIVERY"
	CreateVehicle   Action = "CREATE_VEHICLE"
	UpdateVehicle   Action = "UPDATE_VEHICLE"
	DeleteVehicle   Action = "DELETE_VEHICLE"
	Login           Action = "LOGIN"
	Logout          Action = "LOGOUT"
)

const MaxDetailsLength = 1000

// Entry is immutable once created.
type Entry struct {
	id        kernel.UUID
	userID    kernel.UUID
	action    Action
	details   string
	ipAddress string
	timestamp time.Time
}

func NewEntry(id, userID kernel.UUID, action Action, details, ipAddress string, timestamp time.Time) (*Entry, error) {
	details = strings.TrimSpace(details)
	if len(details) > MaxDetailsLength {
		details = details[:MaxDetailsLength]
	}

	var err error
	if strings.TrimSpace(string(action)) == "" {
		err = errs.NewValueIsRequiredError("action")
	}
	if err = errors.Join(err, id.Validate(), userID.Validate()); err != nil {
		return nil, err
	}

	return &Entry{
		id:        id,
		userID:    userID,
		action:    action,
		details:   details,
		ipAddress: strings.TrimSpace(ipAddress),
		timestamp: timestamp,
	}, nil
}

func (e *Entry) ID() kernel.UUID      { return e.id }
func (e *Entry) UserID() kernel.UUID  { return e.userID }
func (e *Entry) Action() Action       { return e.action }
func (e *Entry) Details() string      { return e.details }
func (e *Entry) IPAddress() string    { return e.ipAddress }
func (e *Entry) Timestamp() time.Time { return e.timestamp }
