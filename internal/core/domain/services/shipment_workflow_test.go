package services_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/fleet"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)

func vehicle(t *testing.T, code string, status fleet.Status) *fleet.Vehicle {
	t.Helper()
	v, err := fleet.RestoreVehicle(fleet.State{
		ID: kernel.MustParseCode(kernel.VehiclePrefix, code),
		Spec: fleet.Spec{
			PlateNumber: "B 9" + code[len(code)-3:] + " KL",
			Type:        fleet.Van,
			Capacity:    decimal.NewFromInt(1500),
		},
		Driver: fleet.Driver{Name: "Andi"},
		Status: status,
	})
	require.NoError(t, err)
	return v
}

func details(t *testing.T) shipment.Details {
	t.Helper()
	c, err := shipment.NewCustomer("CV Sinar Abadi", "0812", "Bandung")
	require.NoError(t, err)
	return shipment.Details{Customer: c, Origin: "Jakarta Hub", Destination: "Bandung Branch", Weight: decimal.NewFromInt(40)}
}

func dispatched(t *testing.T, v *fleet.Vehicle, initial shipment.Status) *shipment.Shipment {
	t.Helper()
	workflow := services.NewShipmentWorkflow()
	assignment, err := workflow.Dispatch(v, now)
	require.NoError(t, err)
	s, err := shipment.NewShipment(kernel.NewCode(kernel.ShipmentPrefix), details(t), assignment, initial, now)
	require.NoError(t, err)
	return s
}

func TestShipmentWorkflow_Dispatch(t *testing.T) {
	workflow := services.NewShipmentWorkflow()

	t.Run("puts an Available vehicle On Route and snapshots it", func(t *testing.T) {
		v := vehicle(t, "FLT-002", fleet.Available)

		assignment, err := workflow.Dispatch(v, now)

		require.NoError(t, err)
		assert.Equal(t, fleet.OnRoute, v.Status())
		assert.Equal(t, "FLT-002", assignment.VehicleID().String())
		assert.Equal(t, "B 9002 KL", assignment.PlateNumber())
		assert.Equal(t, "Andi", assignment.Driver())
	})

	t.Run("refuses a vehicle already On Route", func(t *testing.T) {
		v := vehicle(t, "FLT-002", fleet.OnRoute)

		_, err := workflow.Dispatch(v, now)

		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("refuses a vehicle in Maintenance", func(t *testing.T) {
		v := vehicle(t, "FLT-004", fleet.Maintenance)

		_, err := workflow.Dispatch(v, now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, fleet.Maintenance, v.Status())
	})
}

func TestShipmentWorkflow_ChangeStatus(t *testing.T) {
	workflow := services.NewShipmentWorkflow()

	t.Run("delivery releases the vehicle and stamps actual delivery", func(t *testing.T) {
		v := vehicle(t, "FLT-002", fleet.Available)
		s := dispatched(t, v, shipment.Pending)

		change, err := workflow.ChangeStatus(s, shipment.Delivered, v, now.Add(time.Hour))

		require.NoError(t, err)
		assert.True(t, change.ReleasesVehicle)
		assert.Equal(t, fleet.Available, v.Status())
		require.NotNil(t, s.ActualDelivery())
		assert.Equal(t, now.Add(time.Hour), *s.ActualDelivery())
	})

	t.Run("release is idempotent for a manually freed vehicle", func(t *testing.T) {
		v := vehicle(t, "FLT-002", fleet.Available)
		s := dispatched(t, v, shipment.InTransit)
		v.Release(now)

		_, err := workflow.ChangeStatus(s, shipment.Cancelled, v, now)

		require.NoError(t, err)
		assert.Equal(t, fleet.Available, v.Status())
	})

	t.Run("manual Maintenance survives cancellation", func(t *testing.T) {
		v := vehicle(t, "FLT-002", fleet.Available)
		s := dispatched(t, v, shipment.InTransit)
		v.Release(now)
		require.NoError(t, v.SetStatus(fleet.Maintenance, false, now))

		_, err := workflow.ChangeStatus(s, shipment.Cancelled, v, now)

		require.NoError(t, err)
		assert.Equal(t, fleet.Maintenance, v.Status())
	})

	t.Run("cancelled shipment cannot resume and nothing changes", func(t *testing.T) {
		v := vehicle(t, "FLT-002", fleet.Available)
		s := dispatched(t, v, shipment.Pending)
		_, err := workflow.ChangeStatus(s, shipment.Cancelled, v, now)
		require.NoError(t, err)
		require.NoError(t, v.Dispatch(now))

		_, err = workflow.ChangeStatus(s, shipment.InTransit, v, now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, shipment.Cancelled, s.Status())
		assert.Equal(t, fleet.OnRoute, v.Status())
	})

	t.Run("missing vehicle record does not block the transition", func(t *testing.T) {
		v := vehicle(t, "FLT-002", fleet.Available)
		s := dispatched(t, v, shipment.InTransit)

		change, err := workflow.ChangeStatus(s, shipment.Delivered, nil, now)

		require.NoError(t, err)
		assert.True(t, change.ReleasesVehicle)
	})

	t.Run("rejects a vehicle that is not the assigned one", func(t *testing.T) {
		v := vehicle(t, "FLT-002", fleet.Available)
		s := dispatched(t, v, shipment.InTransit)
		other := vehicle(t, "FLT-003", fleet.OnRoute)

		_, err := workflow.ChangeStatus(s, shipment.Delivered, other, now)

		require.ErrorIs(t, err, services.ErrVehicleMismatch)
		assert.Equal(t, shipment.InTransit, s.Status())
		assert.Equal(t, fleet.OnRoute, other.Status())
	})
}

func TestShipmentWorkflow_ConfirmDelivery(t *testing.T) {
	workflow := services.NewShipmentWorkflow()
	v := vehicle(t, "FLT-005", fleet.Available)
	s := dispatched(t, v, shipment.InTransit)

	change, err := workflow.ConfirmDelivery(s, kernel.NewUUID(), "received by security", v, now)

	require.NoError(t, err)
	assert.Equal(t, shipment.Delivered, change.To)
	assert.Equal(t, fleet.Available, v.Status())
	assert.NotNil(t, s.Confirmation())
}

func TestShipmentWorkflow_Remove(t *testing.T) {
	workflow := services.NewShipmentWorkflow()

	t.Run("deleting an In Transit shipment frees its vehicle", func(t *testing.T) {
		v := vehicle(t, "FLT-003", fleet.Available)
		s := dispatched(t, v, shipment.InTransit)

		released, err := workflow.Remove(s, v, now)

		require.NoError(t, err)
		assert.True(t, released)
		assert.Equal(t, fleet.Available, v.Status())
	})

	t.Run("deleting a delivered shipment leaves the vehicle to its next shipment", func(t *testing.T) {
		v := vehicle(t, "FLT-003", fleet.Available)
		s := dispatched(t, v, shipment.InTransit)
		_, err := workflow.ChangeStatus(s, shipment.Delivered, v, now)
		require.NoError(t, err)
		require.NoError(t, v.Dispatch(now))

		released, err := workflow.Remove(s, v, now)

		require.NoError(t, err)
		assert.False(t, released)
		assert.Equal(t, fleet.OnRoute, v.Status())
	})
}
