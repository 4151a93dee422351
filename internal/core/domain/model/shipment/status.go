package shipment

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
//
// State transitions:
//
//	Pending <──> In Transit ──> Delivered
//	   │             │
//	   └─────────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal: no transition leaves them.
// Pending and In Transit are active: a shipment in one of them holds its vehicle.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	Pending
	InTransit
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		InTransit: "In Transit",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// ParseStatus converts the wire representation ("Pending", "In Transit", ...)
// into a Status. Matching ignores case and surrounding whitespace.
//
// Returns a validation error for any value outside the enumeration.
func ParseStatus(s string) (Status, error) {
	trimmed := strings.TrimSpace(s)
	for status, str := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(str, trimmed) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid shipment status", s))
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, InTransit, Delivered, Cancelled}
}

func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid shipment status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsActive reports whether a shipment in this status still holds its vehicle.
func (s Status) IsActive() bool {
	return s == Pending || s == InTransit
}

// IsTerminal reports whether the status is Delivered or Cancelled.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// TransitionTo validates a move from s to target.
//
// Returns:
//   - (target, nil) when the move is allowed, including a move to the same active status
//   - a validation error when target is not a valid status
//   - a conflict error when s is terminal
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, errs.NewConflictError(fmt.Sprintf("shipment is already %s and cannot move to %s", s, target))
	}
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	return target, nil
}
