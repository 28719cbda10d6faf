package identity

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
)

func TestContextProvider(t *testing.T) {
	p := ContextProvider{}
	if _, err := p.CurrentUser(context.Background()); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}

	ctx := WithIdentity(context.Background(), domain.Identity{ID: "u1", Role: domain.RoleBuyer})
	id, err := p.CurrentUser(ctx)
	if err != nil || id.ID != "u1" {
		t.Fatalf("unexpected identity %+v %v", id, err)
	}
}

func TestRequireSeller(t *testing.T) {
	p := ContextProvider{}
	buyer := WithIdentity(context.Background(), domain.Identity{ID: "u1", Role: domain.RoleBuyer})
	if _, err := RequireSeller(buyer, p); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	seller := WithIdentity(context.Background(), domain.Identity{ID: "u2", Role: domain.RoleSeller, BusinessName: "acme"})
	id, err := RequireSeller(seller, p)
	if err != nil || id.BusinessName != "acme" {
		t.Fatalf("unexpected result %+v %v", id, err)
	}
}
