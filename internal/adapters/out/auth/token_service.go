// Package auth issues and verifies bearer tokens and hashes passwords.
package auth

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the lifetime of an issued token.
const DefaultTokenTTL = 24 * time.Hour

var ErrEmptySecret = errors.New("jwt secret must not be empty")

type tokenClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService implements ports.TokenService with HS256 tokens. The subject is
// the user id and the jti identifies the token for revocation.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTService(secret string, ttl time.Duration) (*JWTService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (s *JWTService) Issue(u *user.User) (string, ports.Claims, error) {
	if err := u.Validate(); err != nil {
		return "", ports.Claims{}, err
	}

	now := s.now().UTC()
	claims := tokenClaims{
		Username: u.Username(),
		Role:     string(u.Role()),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", ports.Claims{}, err
	}

	return signed, toPortClaims(claims), nil
}

func (s *JWTService) Verify(token string) (ports.Claims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return ports.Claims{}, errs.NewUnauthenticatedErrorWithCause("invalid or expired token", err)
	}
	if !parsed.Valid || claims.ID == "" || claims.Subject == "" {
		return ports.Claims{}, errs.NewUnauthenticatedError("invalid or expired token")
	}

	role, err := user.ParseRole(claims.Role)
	if err != nil {
		return ports.Claims{}, errs.NewUnauthenticatedErrorWithCause("invalid or expired token", err)
	}
	result := toPortClaims(claims)
	result.Role = role
	return result, nil
}

func toPortClaims(c tokenClaims) ports.Claims {
	return ports.Claims{
		TokenID:   c.ID,
		UserID:    c.Subject,
		Username:  c.Username,
		Role:      user.Role(c.Role),
		ExpiresAt: c.ExpiresAt.Time,
	}
}
