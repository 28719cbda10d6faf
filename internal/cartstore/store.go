// Package cartstore keeps each browsing session's pending cart in an
// injected Storage slot.
package cartstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"storefront/internal/domain"
)

// Outcome tells the caller which confirmation to show after an add.
type Outcome int

const (
	Added Outcome = iota
	Incremented
)

// Message is the user-visible confirmation for an add.
func (o Outcome) Message(name string) string {
	if o == Incremented {
		return fmt.Sprintf("%s quantity increased by 1", name)
	}
	return fmt.Sprintf("%s added to cart", name)
}

// Store owns the carts of all sessions. Mutations of one session run one at
// a time.
type Store struct {
	storage Storage
	logger  *log.Logger
	locks   sync.Map // session -> *sync.Mutex
}

func New(storage Storage, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{storage: storage, logger: logger}
}

func slotKey(session string) string {
	return "cart:" + session
}

// Load returns the persisted cart, or an empty cart when none exists or the
// stored value cannot be parsed.
func (s *Store) Load(ctx context.Context, session string) (domain.Cart, error) {
	if strings.TrimSpace(session) == "" {
		return domain.Cart{}, domain.Invalid("cart session required")
	}
	raw, ok, err := s.storage.Get(ctx, slotKey(session))
	if err != nil {
		return domain.Cart{}, err
	}
	if !ok || len(raw) == 0 {
		return domain.Cart{}, nil
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		s.logger.Printf("cart store: session=%s malformed cart discarded: %v", session, err)
		return domain.Cart{}, nil
	}
	return domain.Cart{Lines: sanitize(lines)}, nil
}

// AddOrIncrement adds p or bumps its quantity, then persists the cart.
func (s *Store) AddOrIncrement(ctx context.Context, session string, p domain.Product) (domain.Cart, Outcome, error) {
	if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Name) == "" {
		return domain.Cart{}, Added, domain.Invalid("product id and name required")
	}
	if p.Price.IsNegative() {
		return domain.Cart{}, Added, domain.Invalid("price must not be negative")
	}
	unlock := s.lock(session)
	defer unlock()

	cart, err := s.Load(ctx, session)
	if err != nil {
		return domain.Cart{}, Added, err
	}
	outcome := Added
	if cart.Add(p) {
		outcome = Incremented
	}
	if err := s.save(ctx, session, cart); err != nil {
		return domain.Cart{}, Added, err
	}
	return cart, outcome, nil
}

// Remove deletes the line with id. A missing id leaves the cart unchanged.
func (s *Store) Remove(ctx context.Context, session, id string) (domain.Cart, error) {
	unlock := s.lock(session)
	defer unlock()

	cart, err := s.Load(ctx, session)
	if err != nil {
		return domain.Cart{}, err
	}
	if !cart.Remove(id) {
		return cart, nil
	}
	if err := s.save(ctx, session, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// Clear empties the session's cart.
func (s *Store) Clear(ctx context.Context, session string) error {
	unlock := s.lock(session)
	defer unlock()
	return s.storage.Clear(ctx, slotKey(session))
}

// Consume removes a submitted snapshot from the session's cart. Anything added
// after the snapshot was taken stays in the cart.
func (s *Store) Consume(ctx context.Context, session string, lines []domain.CartLine) error {
	unlock := s.lock(session)
	defer unlock()

	cart, err := s.Load(ctx, session)
	if err != nil {
		return err
	}
	cart.Deduct(lines)
	if cart.IsEmpty() {
		return s.storage.Clear(ctx, slotKey(session))
	}
	return s.save(ctx, session, cart)
}

func (s *Store) save(ctx context.Context, session string, cart domain.Cart) error {
	lines := cart.Lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	return s.storage.Set(ctx, slotKey(session), data)
}

func (s *Store) lock(session string) func() {
	v, _ := s.locks.LoadOrStore(session, &sync.Mutex{})
	m := v.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// sanitize drops lines that could not have been produced by Add and merges
// duplicate ids so the one-line-per-id invariant holds after a load.
func sanitize(lines []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, l := range lines {
		if l.ID == "" || l.Quantity <= 0 || l.Price.IsNegative() {
			continue
		}
		if i, ok := index[l.ID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.ID] = len(out)
		out = append(out, l)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
