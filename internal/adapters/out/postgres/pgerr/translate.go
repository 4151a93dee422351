// Package pgerr maps PostgreSQL driver errors onto the application error taxonomy.
package pgerr

import (
	"errors"
	"fmt"

	"logistics/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	uniqueViolation     = pq.ErrorCode("23505")
	foreignKeyViolation = pq.ErrorCode("23503")
)

// ActiveFleetIndex is the partial unique index allowing one active shipment per vehicle.
const ActiveFleetIndex = "ux_shipments_active_fleet"

var constraintReasons = map[string]string{
	ActiveFleetIndex: "vehicle is already assigned to an active shipment",
}

// Translate classifies err. Unique and foreign key violations become conflict
// errors, anything else becomes a dependency error. subject names the record
// for the conflict message ("vehicle FLT-002").
func Translate(err error, subject string) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			if reason, ok := constraintReasons[pqErr.Constraint]; ok {
				return errs.NewConflictErrorWithCause(reason, err)
			}
			return errs.NewConflictErrorWithCause(fmt.Sprintf("%s already exists", subject), err)
		case foreignKeyViolation:
			return errs.NewConflictErrorWithCause(fmt.Sprintf("%s is referenced by other records", subject), err)
		}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictErrorWithCause(fmt.Sprintf("%s already exists", subject), err)
	}

	return errs.NewDependencyError("postgres", err)
}
