// Package fleet contains the Vehicle aggregate.
//
// A vehicle carries at most one active shipment. Dispatch and Release are the
// only ways into and out of On Route; operators may switch between Available,
// Maintenance and Inactive while no active shipment holds the vehicle.
package fleet
