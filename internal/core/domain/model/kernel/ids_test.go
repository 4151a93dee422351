package kernel_test

import (
	"strings"
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	t.Run("should create valid uuid", func(t *testing.T) {
		id := kernel.NewUUID()

		require.NoError(t, id.Validate())
		assert.False(t, id.IsZero())
	})

	t.Run("should round trip through string and bytes", func(t *testing.T) {
		id := kernel.NewUUID()

		fromString, err := kernel.UUIDFromString(id.String())
		require.NoError(t, err)
		assert.True(t, id.IsEqual(fromString))

		raw := id.Bytes()
		fromBytes, err := kernel.UUIDFromBytes(raw[:])
		require.NoError(t, err)
		assert.True(t, id.IsEqual(fromBytes))
	})

	t.Run("should reject malformed string", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject nil uuid", func(t *testing.T) {
		_, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var id kernel.UUID

		assert.True(t, id.IsZero())
		require.Error(t, id.Validate())
	})
}

func TestNewCode(t *testing.T) {
	code := kernel.NewCode(kernel.ShipmentPrefix)

	require.NoError(t, code.Validate())
	assert.Equal(t, kernel.ShipmentPrefix, code.Prefix())
	assert.True(t, strings.HasPrefix(code.String(), "SHP-"))
	assert.Len(t, code.String(), len("SHP-")+8)
	assert.Equal(t, strings.ToUpper(code.String()), code.String())

	other := kernel.NewCode(kernel.ShipmentPrefix)
	assert.False(t, code.IsEqual(other))
}

func TestParseCode(t *testing.T) {
	tests := []struct {
		name    string
		prefix  kernel.Prefix
		input   string
		want    string
		wantErr error
	}{
		{name: "seeded vehicle id", prefix: kernel.VehiclePrefix, input: "FLT-002", want: "FLT-002"},
		{name: "lower case is normalized", prefix: kernel.ShipmentPrefix, input: " shp-7f3a21c0 ", want: "SHP-7F3A21C0"},
		{name: "customer prefix", prefix: kernel.CustomerPrefix, input: "CUST-001", want: "CUST-001"},
		{name: "empty", prefix: kernel.VehiclePrefix, input: "  ", wantErr: errs.ErrValueIsRequired},
		{name: "wrong prefix", prefix: kernel.VehiclePrefix, input: "SHP-001", wantErr: errs.ErrValueIsInvalid},
		{name: "no separator", prefix: kernel.VehiclePrefix, input: "FLT002", wantErr: errs.ErrValueIsInvalid},
		{name: "empty suffix", prefix: kernel.LocationPrefix, input: "LOC-", wantErr: errs.ErrValueIsInvalid},
		{name: "illegal character", prefix: kernel.LocationPrefix, input: "LOC-0_1", wantErr: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := kernel.ParseCode(tt.prefix, tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, code.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, code.String())
		})
	}
}

func TestCode_ZeroValue(t *testing.T) {
	var code kernel.Code

	assert.True(t, code.IsZero())
	assert.Empty(t, code.String())
	require.ErrorIs(t, code.Validate(), errs.ErrValueIsRequired)
}

func TestMustParseCode_Panics(t *testing.T) {
	assert.Panics(t, func() { kernel.MustParseCode(kernel.VehiclePrefix, "nope") })
	assert.NotPanics(t, func() { kernel.MustParseCode(kernel.VehiclePrefix, "FLT-001") })
}
