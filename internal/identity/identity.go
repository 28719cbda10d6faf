// Package identity carries the authenticated user through a request context.
package identity

import (
	"context"

	"storefront/internal/domain"
)

type ctxKey struct{}

// Provider resolves the current user.
type Provider interface {
	CurrentUser(ctx context.Context) (domain.Identity, error)
}

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// ContextProvider reads the identity placed by WithIdentity.
type ContextProvider struct{}

func (ContextProvider) CurrentUser(ctx context.Context) (domain.Identity, error) {
	id, ok := ctx.Value(ctxKey{}).(domain.Identity)
	if !ok || id.ID == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}

// RequireSeller resolves the current user and checks the seller role.
func RequireSeller(ctx context.Context, p Provider) (domain.Identity, error) {
	id, err := p.CurrentUser(ctx)
	if err != nil {
		return domain.Identity{}, err
	}
	if !id.IsSeller() {
		return domain.Identity{}, domain.ErrForbidden
	}
	return id, nil
}
