package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("shipment", "SHP-1A2B3C4D")

		assert.Equal(t, "shipment", err.ParamName)
		assert.Equal(t, "SHP-1A2B3C4D", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: shipment SHP-1A2B3C4D", err.Error())
		assert.Equal(t, []error{errs.ErrObjectNotFound}, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("vehicle", "FLT-002", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "object not found: vehicle FLT-002 (cause: record not found)", err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		require.ErrorIs(t, err, cause)
	})
}

func TestCauseStaysInChain(t *testing.T) {
	errMismatch := errors.New("vehicle does not match")
	err := fmt.Errorf("handler: %w", errs.NewValueIsInvalidErrorWithCause("vehicle", errMismatch))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, err, errMismatch)

	var invalid *errs.ValueIsInvalidError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "vehicle", invalid.ParamName)
}

func TestKind(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want error
	}{
		{"typed", errs.NewConflictError("duplicate plate"), errs.ErrConflict},
		{"wrapped", fmt.Errorf("outer: %w", errs.NewForbiddenError("not yours")), errs.ErrForbidden},
		{"bare sentinel", fmt.Errorf("%w: shipment", errs.ErrObjectNotFound), errs.ErrObjectNotFound},
		{
			"outer class wins over a classified cause",
			errs.NewUnauthenticatedErrorWithCause("invalid token subject", errs.NewValueIsInvalidError("uuid")),
			errs.ErrUnauthenticated,
		},
		{
			"first classified member of a join",
			errors.Join(errors.New("plain"), errs.NewValueIsRequiredError("origin"), errs.NewConflictError("x")),
			errs.ErrValueIsRequired,
		},
		{"unclassified", errors.New("plain"), nil},
		{"nil", nil, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, errs.Kind(tc.err))
		})
	}

	assert.False(t, errs.IsValidation(
		errs.NewUnauthenticatedErrorWithCause("unknown role", errs.NewValueIsInvalidError("role"))))
}

func TestValidationErrors(t *testing.T) {
	t.Run("required", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("origin")
		assert.Equal(t, "value is required: origin", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("invalid with cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("status", errors.New("Lost is not a valid status"))
		assert.Equal(t, "value is invalid: status (cause: Lost is not a valid status)", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("out of range", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("latitude", 91.5, -90, 90)
		assert.Equal(t, "value is out of range: latitude is 91.5, min value is -90, max value is 90", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("out of range sanitizes newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("notes", "line one\nline two", 0, 10)
		assert.Contains(t, err.Error(), "line one line two")
		assert.NotContains(t, err.Error(), "\n")
	})

	t.Run("IsValidation groups the validation class", func(t *testing.T) {
		assert.True(t, errs.IsValidation(errs.NewValueIsRequiredError("a")))
		assert.True(t, errs.IsValidation(errs.NewValueIsInvalidError("b")))
		assert.True(t, errs.IsValidation(fmt.Errorf("wrapped: %w", errs.NewValueIsOutOfRangeError("c", 1, 2, 3))))
		assert.False(t, errs.IsValidation(errs.NewConflictError("d")))
		assert.False(t, errs.IsValidation(errors.New("plain")))
	})
}

func TestAccessAndStateErrors(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "conflict",
			err:      errs.NewConflictError("shipment is already Delivered"),
			sentinel: errs.ErrConflict,
			message:  "conflict: shipment is already Delivered",
		},
		{
			name:     "forbidden",
			err:      errs.NewForbiddenError("vehicle is assigned to another driver"),
			sentinel: errs.ErrForbidden,
			message:  "forbidden: vehicle is assigned to another driver",
		},
		{
			name:     "unauthenticated",
			err:      errs.NewUnauthenticatedErrorWithCause("token is invalid", errors.New("expired")),
			sentinel: errs.ErrUnauthenticated,
			message:  "unauthenticated: token is invalid (cause: expired)",
		},
		{
			name:     "dependency",
			err:      errs.NewDependencyError("database", errors.New("connection refused")),
			sentinel: errs.ErrDependency,
			message:  "dependency failure: database (cause: connection refused)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.message, tc.err.Error())
			require.ErrorIs(t, tc.err, tc.sentinel)
			require.ErrorIs(t, fmt.Errorf("outer: %w", tc.err), tc.sentinel)
		})
	}
}

func TestErrorsAsExtractsDetails(t *testing.T) {
	var err error = fmt.Errorf("handler: %w", errs.NewObjectNotFoundError("customer", "CUST-001"))

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "CUST-001", notFound.ID)
}
