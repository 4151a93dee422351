package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/user"
)

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns an error when password does not match hash.
	Compare(hash, password string) error
}

// Claims is the verified content of a bearer token.
type Claims struct {
	TokenID   string
	UserID    string
	Username  string
	Role      user.Role
	ExpiresAt time.Time
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	Issue(u *user.User) (token string, claims Claims, err error)
	// Verify returns an unauthenticated error for malformed, expired or
	// wrongly signed tokens.
	Verify(token string) (Claims, error)
}

// TokenRevocations keeps the ids of logged-out tokens until they expire.
type TokenRevocations interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
