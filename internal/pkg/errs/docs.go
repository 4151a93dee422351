// Package errs provides standardized error types for the logistics application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package groups its error types by the HTTP-equivalent class they map to:
//   - validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - not found: ObjectNotFoundError
//   - conflict: ConflictError (illegal state transition, duplicate unique field)
//   - access: UnauthenticatedError, ForbiddenError
//   - infrastructure: DependencyError (store or broker unreachable)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() []error returning the sentinel and the cause, so errors.Is finds both
//
// Transport adapters classify errors with Kind (or IsValidation), which honours the
// outermost class, and never inspect messages.
package errs
