// Package services provides domain services that span the Shipment and Vehicle
// aggregates.
//
// The package includes:
//   - ShipmentWorkflow: applies shipment transitions together with their fleet side effects
//   - FleetReconciler: re-derives vehicle availability from active shipments
//
// Both services are stateless. Loading and persisting the aggregates is the job of
// the application layer, which wraps each call in a single unit of work.
package services
