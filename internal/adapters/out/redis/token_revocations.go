// Package redis keeps revoked bearer token ids until the tokens expire.
package redis

import (
	"context"
	"errors"
	"time"

	"logistics/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "revoked_token:"

type TokenRevocations struct {
	client *redis.Client
	now    func() time.Time
}

func NewTokenRevocations(client *redis.Client) (*TokenRevocations, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	return &TokenRevocations{client: client, now: time.Now}, nil
}

// Connect opens a client and pings it.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.NewDependencyError("redis", err)
	}
	return client, nil
}

// Revoke stores tokenID until expiresAt. Already expired tokens are ignored.
func (r *TokenRevocations) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return errs.NewValueIsRequiredError("tokenID")
	}

	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}

	if err := r.client.Set(ctx, keyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return errs.NewDependencyError("redis", err)
	}
	return nil
}

func (r *TokenRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.client.Get(ctx, keyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errs.NewDependencyError("redis", err)
	}
	return true, nil
}
