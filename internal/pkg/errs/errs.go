package errs

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrObjectNotFound    = errors.New("object not found")
	ErrConflict          = errors.New("conflict")
	ErrForbidden         = errors.New("forbidden")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrDependency        = errors.New("dependency failure")
)

var sentinels = []error{
	ErrValueIsRequired,
	ErrValueIsInvalid,
	ErrValueIsOutOfRange,
	ErrObjectNotFound,
	ErrConflict,
	ErrForbidden,
	ErrUnauthenticated,
	ErrDependency,
}

// IsValidation reports whether err belongs to the validation class.
func IsValidation(err error) bool {
	switch Kind(err) {
	case ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange:
		return true
	default:
		return false
	}
}

// Kind returns the sentinel of the outermost classified error in err's tree,
// or nil when err is unclassified. A cause never overrides the class of the
// error wrapping it: an UnauthenticatedError caused by an invalid value is
// still ErrUnauthenticated.
func Kind(err error) error {
	for err != nil {
		if reflect.TypeOf(err).Comparable() {
			for _, sentinel := range sentinels {
				if err == sentinel {
					return sentinel
				}
			}
		}

		switch e := err.(type) {
		case *ValueIsRequiredError:
			return ErrValueIsRequired
		case *ValueIsInvalidError:
			return ErrValueIsInvalid
		case *ValueIsOutOfRangeError:
			return ErrValueIsOutOfRange
		case *ObjectNotFoundError:
			return ErrObjectNotFound
		case *ConflictError:
			return ErrConflict
		case *ForbiddenError:
			return ErrForbidden
		case *UnauthenticatedError:
			return ErrUnauthenticated
		case *DependencyError:
			return ErrDependency
		case interface{ Unwrap() []error }:
			for _, inner := range e.Unwrap() {
				if kind := Kind(inner); kind != nil {
					return kind
				}
			}
			return nil
		}

		err = errors.Unwrap(err)
	}
	return nil
}

// chain exposes both the class sentinel and the cause to errors.Is and errors.As.
func chain(sentinel, cause error) []error {
	if cause == nil {
		return []error{sentinel}
	}
	return []error{sentinel, cause}
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// sanitize keeps user supplied values on a single line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() []error {
	return chain(ErrValueIsRequired, e.Cause)
}

// ValueIsInvalidError reports a malformed value or an unknown enum member.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() []error {
	return chain(ErrValueIsInvalid, e.Cause)
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsOutOfRange, e.ParamName, sanitize(e.Value), sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() []error {
	return chain(ErrValueIsOutOfRange, e.Cause)
}

// ObjectNotFoundError reports that an entity id could not be resolved.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %s", ErrObjectNotFound, e.ParamName, sanitize(e.ID)), e.Cause)
}

func (e *ObjectNotFoundError) Unwrap() []error {
	return chain(ErrObjectNotFound, e.Cause)
}

// ConflictError reports an operation that is illegal in the current state,
// such as leaving a terminal status or reusing a unique value.
type ConflictError struct {
	Reason string
	Cause  error
}

func NewConflictError(reason string) *ConflictError {
	return &ConflictError{Reason: reason}
}

func NewConflictErrorWithCause(reason string, cause error) *ConflictError {
	return &ConflictError{Reason: reason, Cause: cause}
}

func (e *ConflictError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrConflict, e.Reason), e.Cause)
}

func (e *ConflictError) Unwrap() []error {
	return chain(ErrConflict, e.Cause)
}

// ForbiddenError reports a role or ownership denial for an authenticated caller.
type ForbiddenError struct {
	Reason string
}

func NewForbiddenError(reason string) *ForbiddenError {
	return &ForbiddenError{Reason: reason}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s", ErrForbidden, e.Reason)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// UnauthenticatedError reports a missing, malformed, expired or revoked identity.
type UnauthenticatedError struct {
	Reason string
	Cause  error
}

func NewUnauthenticatedError(reason string) *UnauthenticatedError {
	return &UnauthenticatedError{Reason: reason}
}

func NewUnauthenticatedErrorWithCause(reason string, cause error) *UnauthenticatedError {
	return &UnauthenticatedError{Reason: reason, Cause: cause}
}

func (e *UnauthenticatedError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrUnauthenticated, e.Reason), e.Cause)
}

func (e *UnauthenticatedError) Unwrap() []error {
	return chain(ErrUnauthenticated, e.Cause)
}

// DependencyError reports a failure of an infrastructure dependency.
// Nothing guarded by the failed call may be assumed committed.
type DependencyError struct {
	Dependency string
	Cause      error
}

func NewDependencyError(dependency string, cause error) *DependencyError {
	return &DependencyError{Dependency: dependency, Cause: cause}
}

func (e *DependencyError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrDependency, e.Dependency), e.Cause)
}

func (e *DependencyError) Unwrap() []error {
	return chain(ErrDependency, e.Cause)
}
