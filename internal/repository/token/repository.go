package token

import (
	"context"
	"time"
)

// Token is an opaque bearer credential bound to an account.
type Token struct {
	Token     string
	AccountID string
	Kind      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (t Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

type Repository interface {
	Create(ctx context.Context, token Token) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
	// PurgeExpired removes an account's tokens that expired before now and
	// reports how many were removed.
	PurgeExpired(ctx context.Context, accountID string, now time.Time) (int64, error)
}
