package auth

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testUser(t *testing.T) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), user.Profile{
		Username: "fajar",
		Email:    "fajar@logistic.com",
		FullName: "Fajar Nugroho",
	}, user.Driver, "hash", time.Now())
	require.NoError(t, err)
	return u
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc, err := NewJWTService("s3cret", time.Hour)
	require.NoError(t, err)
	u := testUser(t)

	token, issued, err := svc.Issue(u)
	require.NoError(t, err)

	claims, err := svc.Verify(token)

	require.NoError(t, err)
	assert.Equal(t, issued.TokenID, claims.TokenID)
	assert.NotEmpty(t, claims.TokenID)
	assert.Equal(t, u.ID().String(), claims.UserID)
	assert.Equal(t, "fajar", claims.Username)
	assert.Equal(t, user.Driver, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestJWTService_DefaultTTL(t *testing.T) {
	svc, err := NewJWTService("s3cret", 0)
	require.NoError(t, err)

	_, claims, err := svc.Issue(testUser(t))

	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestJWTService_Rejects(t *testing.T) {
	svc, err := NewJWTService("s3cret", time.Hour)
	require.NoError(t, err)
	token, _, err := svc.Issue(testUser(t))
	require.NoError(t, err)

	t.Run("malformed", func(t *testing.T) {
		_, err := svc.Verify("not-a-token")
		require.ErrorIs(t, err, errs.ErrUnauthenticated)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewJWTService("another", time.Hour)
		require.NoError(t, err)

		_, err = other.Verify(token)
		require.ErrorIs(t, err, errs.ErrUnauthenticated)
	})

	t.Run("expired", func(t *testing.T) {
		later := *svc
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

		_, err := later.Verify(token)
		require.ErrorIs(t, err, errs.ErrUnauthenticated)
	})

	t.Run("other algorithm", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": "x", "jti": "y", "exp": time.Now().Add(time.Hour).Unix(), "role": "ADMIN",
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Verify(unsigned)
		require.ErrorIs(t, err, errs.ErrUnauthenticated)
	})
}

func TestNewJWTService_EmptySecret(t *testing.T) {
	_, err := NewJWTService("", time.Hour)

	require.ErrorIs(t, err, ErrEmptySecret)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("admin123")
	require.NoError(t, err)

	assert.NotEqual(t, "admin123", hash)
	require.NoError(t, h.Compare(hash, "admin123"))
	require.Error(t, h.Compare(hash, "admin124"))
}
