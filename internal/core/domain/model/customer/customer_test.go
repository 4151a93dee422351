package customer_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	now := time.Now()

	t.Run("should trim and lower-case email", func(t *testing.T) {
		c, err := customer.NewCustomer(kernel.NewCode(kernel.CustomerPrefix), customer.Profile{
			Name:    "  PT Maju Jaya ",
			Email:   " Ops@MajuJaya.co.id",
			Company: "Maju Jaya Group",
		}, now)

		require.NoError(t, err)
		assert.Equal(t, "PT Maju Jaya", c.Profile().Name)
		assert.Equal(t, "ops@majujaya.co.id", c.Profile().Email)
	})

	t.Run("should require a name", func(t *testing.T) {
		_, err := customer.NewCustomer(kernel.NewCode(kernel.CustomerPrefix), customer.Profile{}, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject malformed email", func(t *testing.T) {
		_, err := customer.NewCustomer(kernel.NewCode(kernel.CustomerPrefix), customer.Profile{Name: "A", Email: "nope"}, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject another entity prefix", func(t *testing.T) {
		_, err := customer.NewCustomer(kernel.NewCode(kernel.LocationPrefix), customer.Profile{Name: "A"}, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCustomer_Update(t *testing.T) {
	c, err := customer.NewCustomer(kernel.NewCode(kernel.CustomerPrefix), customer.Profile{Name: "A"}, time.Now())
	require.NoError(t, err)

	require.Error(t, c.Update(customer.Profile{Name: ""}, time.Now()))
	assert.Equal(t, "A", c.Profile().Name)

	require.NoError(t, c.Update(customer.Profile{Name: "B", Phone: "021"}, time.Now()))
	assert.Equal(t, "B", c.Profile().Name)
	assert.Equal(t, "021", c.Profile().Phone)
}
