package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain"
	tokenrepo "storefront/internal/repository/token"
)

// memoryRepo is a lightweight in-memory account repository for tests.
type memoryRepo struct {
	byEmail map[string]domain.Account
}

type memoryTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byEmail: make(map[string]domain.Account)}
}

func newMemoryTokenRepo() *memoryTokenRepo {
	return &memoryTokenRepo{tokens: make(map[string]tokenrepo.Token)}
}

func (r *memoryTokenRepo) Create(_ context.Context, token tokenrepo.Token) error {
	if _, exists := r.tokens[token.Token]; exists {
		return domain.ErrAlreadyExists
	}
	r.tokens[token.Token] = token
	return nil
}

func (r *memoryTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := r.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := t
	return &clone, nil
}

func (r *memoryTokenRepo) Delete(_ context.Context, token string) error {
	if _, ok := r.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tokens, token)
	return nil
}

func (r *memoryTokenRepo) PurgeExpired(_ context.Context, accountID string, now time.Time) (int64, error) {
	var n int64
	for k, t := range r.tokens {
		if t.AccountID == accountID && t.Expired(now) {
			delete(r.tokens, k)
			n++
		}
	}
	return n, nil
}

func (r *memoryRepo) Create(_ context.Context, a domain.Account) (*domain.Account, error) {
	if _, exists := r.byEmail[a.Email]; exists {
		return nil, domain.ErrAlreadyExists
	}
	clone := a
	if clone.ID == "" {
		clone.ID = "acct-" + a.Email
	}
	r.byEmail[clone.Email] = clone
	return &clone, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	if a, ok := r.byEmail[email]; ok {
		clone := a
		return &clone, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	for _, a := range r.byEmail {
		if a.ID == id {
			clone := a
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func TestSignupAndLogin_TrimsPassword(t *testing.T) {
	svc := New(newMemoryRepo(), newMemoryTokenRepo())
	ctx := context.Background()

	acct, err := svc.Signup(ctx, SignupInput{Email: "User@Example.com", Password: " Abcdefg1 "})
	if err != nil {
		t.Fatalf("signup returned error: %v", err)
	}
	if acct.Email != "user@example.com" || acct.Role != domain.RoleBuyer {
		t.Fatalf("unexpected account %+v", acct)
	}

	_, token, err := svc.Login(ctx, "user@example.com", "Abcdefg1")
	if err != nil {
		t.Fatalf("login failed with trimmed password: %v", err)
	}
	if token == "" {
		t.Fatalf("expected access token")
	}
}

func TestSignup_SellerNeedsBusiness(t *testing.T) {
	svc := New(newMemoryRepo(), newMemoryTokenRepo())
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Email: "s@example.com", Password: "Abcdefg1", Role: "seller"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	acct, err := svc.Signup(ctx, SignupInput{Email: "s@example.com", Password: "Abcdefg1", Role: "Seller", BusinessName: " Acme "})
	if err != nil {
		t.Fatalf("signup seller: %v", err)
	}
	if acct.BusinessName != "acme" || !acct.Identity().IsSeller() {
		t.Fatalf("unexpected seller %+v", acct)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc := New(newMemoryRepo(), newMemoryTokenRepo())
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupInput{Email: "a@example.com", Password: "Abcdefg1"}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := svc.Signup(ctx, SignupInput{Email: "a@example.com", Password: "Abcdefg1"}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestValidatePassword_FailsOnWeakValues(t *testing.T) {
	cases := []struct {
		name string
		pass string
	}{
		{"too short", "Abc1"},
		{"no upper", "abcdefg1"},
		{"no lower", "ABCDEFG1"},
		{"no digit", "Abcdefgh"},
	}
	for _, tc := range cases {
		if err := validatePassword(tc.pass, 8); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected validation error for case %s, got %v", tc.name, err)
		}
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := New(newMemoryRepo(), newMemoryTokenRepo())
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupInput{Email: "user@example.com", Password: "Abcdefg1"}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, _, err := svc.Login(ctx, "user@example.com", "wrongpass"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "missing@example.com", "Abcdefg1"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for missing user, got %v", err)
	}
}

func TestLookupByToken(t *testing.T) {
	tokens := newMemoryTokenRepo()
	svc := New(newMemoryRepo(), tokens)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupInput{Email: "s@example.com", Password: "Abcdefg1", Role: "seller", BusinessName: "acme"}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	_, token, err := svc.Login(ctx, "s@example.com", "Abcdefg1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	acct, err := svc.LookupByToken(ctx, token)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if acct.BusinessName != "acme" {
		t.Fatalf("unexpected account %+v", acct)
	}
	if _, err := svc.LookupByToken(ctx, "bogus"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	svc.tokens.now = func() time.Time { return time.Now().Add(49 * time.Hour) }
	if _, err := svc.LookupByToken(ctx, token); err != ErrInvalidToken {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
	if _, ok := tokens.tokens[token]; ok {
		t.Fatalf("expected expired token to be deleted")
	}
}

func TestLogin_PurgesExpiredTokens(t *testing.T) {
	tokens := newMemoryTokenRepo()
	svc := New(newMemoryRepo(), tokens)
	ctx := context.Background()

	acct, err := svc.Signup(ctx, SignupInput{Email: "b@example.com", Password: "Abcdefg1"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	tokens.tokens["stale"] = tokenrepo.Token{Token: "stale", AccountID: acct.ID, Kind: "access", ExpiresAt: time.Now().Add(-time.Hour)}

	if _, _, err := svc.Login(ctx, "b@example.com", "Abcdefg1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, ok := tokens.tokens["stale"]; ok {
		t.Fatalf("expected stale token to be purged")
	}
	if len(tokens.tokens) != 1 {
		t.Fatalf("expected only the fresh token, got %d", len(tokens.tokens))
	}
}
