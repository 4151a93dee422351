package services

import (
	"time"

	"logistics/internal/core/domain/model/fleet"
)

// FleetReconciler re-derives vehicle availability from the set of vehicles held
// by active shipments.
//
// Business rules:
//   - On Route without an active shipment becomes Available
//   - Available with an active shipment becomes On Route
//   - Maintenance and Inactive are never changed
type FleetReconciler struct{}

func NewFleetReconciler() FleetReconciler {
	return FleetReconciler{}
}

// Reconcile returns the vehicles whose status changed. held contains the codes
// (as strings) of vehicles referenced by at least one active shipment.
func (r FleetReconciler) Reconcile(vehicles []*fleet.Vehicle, held map[string]struct{}, now time.Time) ([]*fleet.Vehicle, error) {
	changed := make([]*fleet.Vehicle, 0)
	for _, v := range vehicles {
		if err := v.Validate(); err != nil {
			return nil, err
		}

		_, isHeld := held[v.ID().String()]
		if v.Reconcile(isHeld, now) {
			changed = append(changed, v)
		}
	}
	return changed, nil
}
