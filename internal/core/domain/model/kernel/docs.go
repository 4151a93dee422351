// Package kernel provides core domain primitives shared by every aggregate of the
// logistics back office.
//
// The package includes:
//   - UUID: storage-native identifier used for users and activity log entries
//   - Code: human-readable identifier such as SHP-7F3A21C0 or FLT-002, used for
//     shipments, vehicles, customers and locations
//   - GeoPoint: a validated latitude/longitude pair for locations on the map view
//   - DomainEvent: the contract for events raised by aggregates and published after commit
//
// These primitives are immutable value objects. Their zero values are invalid and fail
// Validate, which repositories call before persisting.
package kernel
