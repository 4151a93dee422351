package commands_test

import (
	"errors"
	"strings"
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/activity"
	"logistics/internal/core/domain/model/fleet"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createParams(vehicleID string) commands.CreateShipmentParams {
	return commands.CreateShipmentParams{
		CustomerName: "CV Maju Bersama",
		Origin:       "Jakarta Hub",
		Destination:  "Bandung Branch",
		Weight:       decimal.NewFromInt(75),
		VehicleID:    vehicleID,
	}
}

func TestNewCreateShipmentCommand_Validation(t *testing.T) {
	_, err := commands.NewCreateShipmentCommand(staffActor(), commands.CreateShipmentParams{
		Weight: decimal.Zero,
		Status: "Lost",
	})

	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.ErrorContains(t, err, "customer name")
	assert.ErrorContains(t, err, "origin")
	assert.ErrorContains(t, err, "destination")
	assert.ErrorContains(t, err, "weight")
	assert.ErrorContains(t, err, "Lost")
}

func TestCreateShipmentCommand_ZeroValue(t *testing.T) {
	var cmd commands.CreateShipmentCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateShipmentCommandIsNotConstructed)
}

// Creating a shipment on an Available vehicle puts it On Route.
func TestCreateShipmentCommandHandler_DispatchesVehicle(t *testing.T) {
	ctx := t.Context()
	f := newWorkflowFixture(ctx)
	vehicle := testVehicle(t, "FLT-002", fleet.Available, nil)
	actor := staffActor()

	var added *shipment.Shipment
	f.vehicles.On("Get", ctx, vehicle.ID()).Return(vehicle, nil).Once()
	f.vehicles.On("Update", ctx, vehicle).Return(nil).Once()
	f.shipments.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).
		Run(func(args mock.Arguments) { added = args.Get(1).(*shipment.Shipment) }).
		Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.recorder.On("Record", ctx, actor, activity.CreateShipment,
		mock.MatchedBy(func(details string) bool { return strings.HasSuffix(details, "for CV Maju Bersama") })).Once()

	cmd, err := commands.NewCreateShipmentCommand(actor, createParams("FLT-002"))
	require.NoError(t, err)

	id, err := commands.NewCreateShipmentCommandHandler(f.factory, f.recorder).Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, added)
	assert.Equal(t, added.ID(), id)
	assert.Equal(t, kernel.ShipmentPrefix, id.Prefix())
	assert.Equal(t, shipment.Pending, added.Status())
	assert.Equal(t, fleet.OnRoute, vehicle.Status())
	require.NotNil(t, added.Fleet())
	assert.Equal(t, "FLT-002", added.Fleet().VehicleID().String())
	f.assertExpectations(t)
}

func TestCreateShipmentCommandHandler_WithoutVehicle(t *testing.T) {
	ctx := t.Context()
	f := newWorkflowFixture(ctx)

	f.shipments.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.recorder.On("Record", ctx, mock.Anything, activity.CreateShipment, mock.Anything).Once()

	cmd, err := commands.NewCreateShipmentCommand(staffActor(), createParams(""))
	require.NoError(t, err)

	_, err = commands.NewCreateShipmentCommandHandler(f.factory, f.recorder).Handle(ctx, cmd)

	require.NoError(t, err)
	f.vehicles.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestCreateShipmentCommandHandler_VehicleAlreadyOnRoute(t *testing.T) {
	ctx := t.Context()
	f := newWorkflowFixture(ctx)
	vehicle := testVehicle(t, "FLT-002", fleet.OnRoute, nil)

	f.vehicles.On("Get", ctx, vehicle.ID()).Return(vehicle, nil).Once()

	cmd, err := commands.NewCreateShipmentCommand(staffActor(), createParams("FLT-002"))
	require.NoError(t, err)

	_, err = commands.NewCreateShipmentCommandHandler(f.factory, f.recorder).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	f.shipments.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateShipmentCommandHandler_UnknownVehicle(t *testing.T) {
	ctx := t.Context()
	f := newWorkflowFixture(ctx)
	id := kernel.MustParseCode(kernel.VehiclePrefix, "FLT-404")

	f.vehicles.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("vehicle", id.String())).Once()

	cmd, err := commands.NewCreateShipmentCommand(staffActor(), createParams("FLT-404"))
	require.NoError(t, err)

	_, err = commands.NewCreateShipmentCommandHandler(f.factory, f.recorder).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

// Delivering releases the vehicle and stamps actualDelivery.
func TestUpdateShipmentStatusCommandHandler_Delivered(t *testing.T) {
	ctx := t.Context()
	f := newWorkflowFixture(ctx)
	vehicle := testVehicle(t, "FLT-002", fleet.OnRoute, nil)
	s := testShipment(t, vehicle, shipment.InTransit)
	actor := staffActor()

	f.shipments.On("Get", ctx, s.ID()).Return(s, nil).Once()
	f.vehicles.On("Get", ctx, vehicle.ID()).Return(vehicle, nil).Once()
	f.shipments.On("Update", ctx, s).Return(nil).Once()
	f.vehicles.On("Update", ctx, vehicle).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.recorder.On("Record", ctx, actor, activity.UpdateStatus,
		"Updated shipment "+s.ID().String()+" status from In Transit to Delivered").Once()

	cmd, err := commands.NewUpdateShipmentStatusCommand(actor, s.ID().String(), "Delivered")
	require.NoError(t, err)

	err = commands.NewUpdateShipmentStatusCommandHandler(f.factory, f.recorder).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.Delivered, s.Status())
	assert.NotNil(t, s.ActualDelivery())
	assert.Equal(t, fleet.Available, vehicle.Status())
	f.assertExpectations(t)
}

func TestUpdateShipmentStatusCommandHandler_CancelKeepsMaintenance(t *testing.T) {
	ctx := t.Context()
	f := newWorkflowFixture(ctx)
	vehicle := testVehicle(t, "FLT-005", fleet.Maintenance, nil)
	s := testShipment(t, vehicle, shipment.Pending)

	f.shipments.On("Get", ctx, s.ID()).Return(s, nil).Once()
	f.vehicles.On("Get", ctx, vehicle.ID()).Return(vehicle, nil).Once()
	f.shipments.On("Update", ctx, s).Return(nil).Once()
	f.vehicles.On("Update", ctx, vehicle).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.recorder.On("Record", ctx, mock.Anything, activity.UpdateStatus, mock.Anything).Once()

	cmd, err := commands.NewUpdateShipmentStatusCommand(staffActor(), s.ID().String(), "cancelled")
	require.NoError(t, err)

	err = commands.NewUpdateShipmentStatusCommandHandler(f.factory, f.recorder).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.Cancelled, s.Status())
	assert.Equal(t, fleet.Maintenance, vehicle.Status())
	f.assertExpectations(t)
}

func TestUpdateShipmentStatusCommandHandler_DeletedVehicleRecord(t *testing.T) {
	ctx := t.Context()
	f := newWorkflowFixture(ctx)
	gone := testVehicle(t, "FLT-009", fleet.OnRoute, nil)
	s := testShipment(t, gone, shipment.InTransit)

	f.shipments.On("Get", ctx, s.ID()).Return(s, nil).Once()
	f.vehicles.On("Get", ctx, gone.ID()).Return(nil, errs.NewObjectNotFoundError("vehicle", gone.ID().String())).Once()
	f.shipments.On("Update", ctx, s).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.recorder.On("Record", ctx, mock.Anything, activity.UpdateStatus, mock.Anything).Once()

	cmd, err := commands.NewUpdateShipmentStatusCommand(staffActor(), s.ID().String(), "Delivered")
	require.NoError(t, err)

	err = commands.NewUpdateShipmentStatusCommandHandler(f.factory, f.recorder).Handle(ctx, cmd)

	require.NoError(t, err)
	f.vehicles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

// A terminal shipment cannot be resumed and nothing is written.
func TestUpdateShipmentStatusCommandHandler_TerminalConflict(t *testing.T) {
	ctx := t.Context()
	f := newWorkflowFixture(ctx)
	vehicle := testVehicle(t, "FLT-002", fleet.Available, nil)
	s := testShipment(t, vehicle, shipment.Cancelled)

	f.shipments.On("Get", ctx, s.ID()).Return(s, nil).Once()
	f.vehicles.On("Get", ctx, vehicle.ID()).Return(vehicle, nil).Once()

	cmd, err := commands.NewUpdateShipmentStatusCommand(staffActor(), s.ID().String(), "In Transit")
	require.NoError(t, err)

	err = commands.NewUpdateShipmentStatusCommandHandler(f.factory, f.recorder).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, shipment.Cancelled, s.Status())
	assert.Equal(t, fleet.Available, vehicle.Status())
	f.shipments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.vehicles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateShipmentStatusCommandHandler_SameStatusIsNoop(t *testing.T) {
	ctx := t.Context()
	f := newWorkflowFixture(ctx)
	s := testShipment(t, nil, shipment.Pending)

	f.shipments.On("Get", ctx, s.ID()).Return(s, nil).Once()

	cmd, err := commands.NewUpdateShipmentStatusCommand(staffActor(), s.ID().String(), "Pending")
	require.NoError(t, err)

	err = commands.NewUpdateShipmentStatusCommandHandler(f.factory, f.recorder).Handle(ctx, cmd)

	require.NoError(t, err)
	f.shipments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateShipmentStatusCommandHandler_DriverOwnership(t *testing.T) {
	driver := driverActor()

	t.Run("assigned driver may update", func(t *testing.T) {
		ctx := t.Context()
		f := newWorkflowFixture(ctx)
		vehicle := testVehicle(t, "FLT-007", fleet.OnRoute, &driver.UserID)
		s := testShipment(t, vehicle, shipment.Pending)

		f.shipments.On("Get", ctx, s.ID()).Return(s, nil).Once()
		f.vehicles.On("Get", ctx, vehicle.ID()).Return(vehicle, nil).Once()
		f.shipments.On("Update", ctx, s).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()
		f.recorder.On("Record", ctx, driver, activity.UpdateStatus, mock.Anything).Once()

		cmd, err := commands.NewUpdateShipmentStatusCommand(driver, s.ID().String(), "In Transit")
		require.NoError(t, err)

		err = commands.NewUpdateShipmentStatusCommandHandler(f.factory, f.recorder).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, shipment.InTransit, s.Status())
		f.assertExpectations(t)
	})

	t.Run("other driver is forbidden", func(t *testing.T) {
		ctx := t.Context()
		f := newWorkflowFixture(ctx)
		someoneElse := kernel.NewUUID()
		vehicle := testVehicle(t, "FLT-008", fleet.OnRoute, &someoneElse)
		s := testShipment(t, vehicle, shipment.Pending)

		f.shipments.On("Get", ctx, s.ID()).Return(s, nil).Once()
		f.vehicles.On("Get", ctx, vehicle.ID()).Return(vehicle, nil).Once()

		cmd, err := commands.NewUpdateShipmentStatusCommand(driver, s.ID().String(), "In Transit")
		require.NoError(t, err)

		err = commands.NewUpdateShipmentStatusCommandHandler(f.factory, f.recorder).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, shipment.Pending, s.Status())
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

func TestUpdateShipmentStatusCommandHandler_CommitFailure(t *testing.T) {
	ctx := t.Context()
	f := newWorkflowFixture(ctx)
	vehicle := testVehicle(t, "FLT-002", fleet.OnRoute, nil)
	s := testShipment(t, vehicle, shipment.InTransit)

	f.shipments.On("Get", ctx, s.ID()).Return(s, nil).Once()
	f.vehicles.On("Get", ctx, vehicle.ID()).Return(vehicle, nil).Once()
	f.shipments.On("Update", ctx, s).Return(nil).Once()
	f.vehicles.On("Update", ctx, vehicle).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(errors.New("connection lost")).Once()

	cmd, err := commands.NewUpdateShipmentStatusCommand(staffActor(), s.ID().String(), "Delivered")
	require.NoError(t, err)

	err = commands.NewUpdateShipmentStatusCommandHandler(f.factory, f.recorder).Handle(ctx, cmd)

	require.EqualError(t, err, "connection lost")
	f.recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateShipmentCommandHandler_PatchesDetails(t *testing.T) {
	ctx := t.Context()
	f := newWorkflowFixture(ctx)
	s := testShipment(t, nil, shipment.Pending)
	phone := "0899111222"
	destination := "Semarang Branch"

	f.shipments.On("Get", ctx, s.ID()).Return(s, nil).Once()
	f.shipments.On("Update", ctx, s).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.recorder.On("Record", ctx, mock.Anything, activity.UpdateShipment,
		"Updated shipment "+s.ID().String()+" details").Once()

	cmd, err := commands.NewUpdateShipmentCommand(staffActor(), s.ID().String(), commands.UpdateShipmentParams{
		CustomerPhone: &phone,
		Destination:   &destination,
	})
	require.NoError(t, err)

	err = commands.NewUpdateShipmentCommandHandler(f.factory, f.recorder).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "PT Sinar Jaya", s.Customer().Name())
	assert.Equal(t, phone, s.Customer().Phone())
	assert.Equal(t, destination, s.Destination())
	assert.Equal(t, shipment.Pending, s.Status())
	f.assertExpectations(t)
}

func TestNewUpdateShipmentCommand_RejectsBlankFields(t *testing.T) {
	blank := " "
	zero := decimal.Zero

	_, err := commands.NewUpdateShipmentCommand(staffActor(), "SHP-00000001", commands.UpdateShipmentParams{
		CustomerName: &blank,
		Origin:       &blank,
		Weight:       &zero,
	})

	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

// Deleting an In Transit shipment frees its vehicle.
func TestDeleteShipmentCommandHandler_ReleasesVehicle(t *testing.T) {
	ctx := t.Context()
	f := newWorkflowFixture(ctx)
	vehicle := testVehicle(t, "FLT-003", fleet.OnRoute, nil)
	s := testShipment(t, vehicle, shipment.InTransit)
	actor := staffActor()

	f.shipments.On("Get", ctx, s.ID()).Return(s, nil).Once()
	f.vehicles.On("Get", ctx, vehicle.ID()).Return(vehicle, nil).Once()
	f.shipments.On("Delete", ctx, s).Return(nil).Once()
	f.vehicles.On("Update", ctx, vehicle).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.recorder.On("Record", ctx, actor, activity.DeleteShipment, "Deleted shipment "+s.ID().String()).Once()

	cmd, err := commands.NewDeleteShipmentCommand(actor, s.ID().String())
	require.NoError(t, err)

	err = commands.NewDeleteShipmentCommandHandler(f.factory, f.recorder).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, fleet.Available, vehicle.Status())
	f.assertExpectations(t)
}

func TestDeleteShipmentCommandHandler_DeliveredLeavesVehicle(t *testing.T) {
	ctx := t.Context()
	f := newWorkflowFixture(ctx)
	vehicle := testVehicle(t, "FLT-003", fleet.OnRoute, nil)
	s := testShipment(t, vehicle, shipment.Delivered)

	f.shipments.On("Get", ctx, s.ID()).Return(s, nil).Once()
	f.vehicles.On("Get", ctx, vehicle.ID()).Return(vehicle, nil).Once()
	f.shipments.On("Delete", ctx, s).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.recorder.On("Record", ctx, mock.Anything, activity.DeleteShipment, mock.Anything).Once()

	cmd, err := commands.NewDeleteShipmentCommand(staffActor(), s.ID().String())
	require.NoError(t, err)

	err = commands.NewDeleteShipmentCommandHandler(f.factory, f.recorder).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, fleet.OnRoute, vehicle.Status())
	f.vehicles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteShipmentCommandHandler_NotFound(t *testing.T) {
	ctx := t.Context()
	f := newWorkflowFixture(ctx)
	id := kernel.MustParseCode(kernel.ShipmentPrefix, "SHP-MISSING")

	f.shipments.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("shipment", id.String())).Once()

	cmd, err := commands.NewDeleteShipmentCommand(staffActor(), "SHP-MISSING")
	require.NoError(t, err)

	err = commands.NewDeleteShipmentCommandHandler(f.factory, f.recorder).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestConfirmDeliveryCommandHandler(t *testing.T) {
	driver := driverActor()

	t.Run("assigned driver confirms", func(t *testing.T) {
		ctx := t.Context()
		f := newWorkflowFixture(ctx)
		vehicle := testVehicle(t, "FLT-011", fleet.OnRoute, &driver.UserID)
		s := testShipment(t, vehicle, shipment.InTransit)

		f.shipments.On("Get", ctx, s.ID()).Return(s, nil).Once()
		f.vehicles.On("Get", ctx, vehicle.ID()).Return(vehicle, nil).Once()
		f.shipments.On("Update", ctx, s).Return(nil).Once()
		f.vehicles.On("Update", ctx, vehicle).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()
		f.recorder.On("Record", ctx, driver, activity.ConfirmDelivery, mock.Anything).Once()

		cmd, err := commands.NewConfirmDeliveryCommand(driver, s.ID().String(), "left at front desk")
		require.NoError(t, err)

		err = commands.NewConfirmDeliveryCommandHandler(f.factory, f.recorder).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, shipment.Delivered, s.Status())
		require.NotNil(t, s.Confirmation())
		assert.True(t, s.Confirmation().ConfirmedBy.IsEqual(driver.UserID))
		assert.Equal(t, fleet.Available, vehicle.Status())
		f.assertExpectations(t)
	})

	t.Run("pending shipment cannot be confirmed", func(t *testing.T) {
		ctx := t.Context()
		f := newWorkflowFixture(ctx)
		vehicle := testVehicle(t, "FLT-012", fleet.OnRoute, &driver.UserID)
		s := testShipment(t, vehicle, shipment.Pending)

		f.shipments.On("Get", ctx, s.ID()).Return(s, nil).Once()
		f.vehicles.On("Get", ctx, vehicle.ID()).Return(vehicle, nil).Once()

		cmd, err := commands.NewConfirmDeliveryCommand(driver, s.ID().String(), "")
		require.NoError(t, err)

		err = commands.NewConfirmDeliveryCommandHandler(f.factory, f.recorder).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
