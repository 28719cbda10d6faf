// Package order turns a session's cart into a durable order and lets sellers
// revise orders afterwards.
package order

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
	"storefront/internal/domain"
	"storefront/internal/identity"
	orderrepo "storefront/internal/repository/order"
)

// Carts is the part of the cart store the workflow needs. Consume removes
// exactly the submitted lines and keeps anything added since.
type Carts interface {
	Load(ctx context.Context, session string) (domain.Cart, error)
	Consume(ctx context.Context, session string, lines []domain.CartLine) error
}

type Options struct {
	Policy  domain.StatusPolicy
	Scope   domain.OrderScope
	Timeout time.Duration
	Logger  *log.Logger
}

type Service struct {
	orders   orderrepo.Repository
	carts    Carts
	identity identity.Provider
	policy   domain.StatusPolicy
	scope    domain.OrderScope
	timeout  time.Duration
	logger   *log.Logger

	submits singleflight.Group
	revises singleflight.Group
}

func New(orders orderrepo.Repository, carts Carts, ids identity.Provider, opts Options) *Service {
	if opts.Policy == nil {
		opts.Policy = domain.OpenStatusPolicy{}
	}
	if opts.Scope == "" {
		opts.Scope = domain.OrderScopeAll
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		orders:   orders,
		carts:    carts,
		identity: ids,
		policy:   opts.Policy,
		scope:    opts.Scope,
		timeout:  opts.Timeout,
		logger:   opts.Logger,
	}
}

// Submit places the session's cart as a pending order for the current user
// and returns the new order id. Only the submitted lines leave the cart, and
// only after the insert succeeded; on any failure the cart is left as it was.
// Concurrent submits of one session share a single insert, which keeps
// running when one of the waiting callers goes away.
func (s *Service) Submit(ctx context.Context, session string) (string, error) {
	buyer, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	flight := context.WithoutCancel(ctx)
	ch := s.submits.DoChan(session+"|"+buyer.ID, func() (any, error) {
		return s.submit(flight, session, buyer)
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			s.logger.Printf("order service: session=%s duplicate submit collapsed", session)
		}
		return res.Val.(string), nil
	}
}

func (s *Service) submit(ctx context.Context, session string, buyer domain.Identity) (string, error) {
	loadCtx, cancel := s.storeContext(ctx)
	cart, err := s.carts.Load(loadCtx, session)
	cancel()
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return "", err
		}
		return "", domain.StoreFailure("load cart", err)
	}
	if cart.IsEmpty() {
		return "", domain.Invalid("cart is empty")
	}

	snapshot := cart.Snapshot()
	storeCtx, cancel := s.storeContext(ctx)
	created, err := s.orders.Create(storeCtx, orderrepo.NewOrder{
		UserID: buyer.ID,
		Items:  snapshot,
		Total:  cart.Total(),
		Status: domain.OrderStatusPending,
	})
	cancel()
	if err != nil {
		s.logger.Printf("order service: submit session=%s user_id=%s error=%v", session, buyer.ID, err)
		return "", domain.StoreFailure("insert order", err)
	}

	clearCtx, cancel := s.storeContext(ctx)
	err = s.carts.Consume(clearCtx, session, snapshot)
	cancel()
	if err != nil {
		s.logger.Printf("order service: order=%s placed but cart session=%s not cleared: %v", created.ID, session, err)
	}
	s.logger.Printf("order service: placed order=%s user_id=%s total=%s", created.ID, buyer.ID, created.Total)
	return created.ID, nil
}

// LineEdit changes the name and/or quantity of one existing line.
type LineEdit struct {
	ID       string  `json:"id"`
	Name     *string `json:"name,omitempty"`
	Quantity *int    `json:"quantity,omitempty"`
}

// Patch is a seller's revision. Nil fields keep their stored value. Total is
// written as given and is never derived from the edited items.
type Patch struct {
	Items  []LineEdit       `json:"items,omitempty"`
	Status *string          `json:"status,omitempty"`
	Total  *decimal.Decimal `json:"total,omitempty"`
}

// Revise applies patch to the order and writes items, total and status in a
// single update. Concurrent identical revisions of one order share a single
// update; differing revisions are last-write-wins.
func (s *Service) Revise(ctx context.Context, orderID string, patch Patch) (*domain.Order, error) {
	seller, err := identity.RequireSeller(ctx, s.identity)
	if err != nil {
		return nil, err
	}
	key, err := json.Marshal(patch)
	if err != nil {
		return nil, err
	}
	flight := context.WithoutCancel(ctx)
	ch := s.revises.DoChan(orderID+"|"+seller.ID+"|"+string(key), func() (any, error) {
		return s.revise(flight, seller, orderID, patch)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.Order), nil
	}
}

func (s *Service) revise(ctx context.Context, seller domain.Identity, orderID string, patch Patch) (*domain.Order, error) {
	current, err := s.fetch(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !s.scope.Allows(seller, *current) {
		return nil, domain.ErrNotFound
	}

	revised, err := applyPatch(*current, patch, s.policy)
	if err != nil {
		return nil, err
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()
	err = s.orders.Update(storeCtx, orderID, orderrepo.Revision{
		Items:  revised.Items,
		Total:  revised.Total,
		Status: revised.Status,
	})
	if err != nil {
		s.logger.Printf("order service: revise order=%s seller=%s error=%v", orderID, seller.ID, err)
		return nil, domain.StoreFailure("update order", err)
	}
	s.logger.Printf("order service: revised order=%s seller=%s status=%s total=%s", orderID, seller.ID, revised.Status, revised.Total)
	return &revised, nil
}

// Get returns an order to its buyer, or to a seller whose scope covers it.
func (s *Service) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	viewer, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	o, err := s.fetch(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != viewer.ID && !s.scope.Allows(viewer, *o) {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (s *Service) fetch(ctx context.Context, orderID string) (*domain.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, domain.ErrNotFound
	}
	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()
	o, err := s.orders.GetByID(storeCtx, orderID)
	if err != nil {
		return nil, domain.StoreFailure("fetch order", err)
	}
	return o, nil
}

func (s *Service) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func applyPatch(o domain.Order, patch Patch, policy domain.StatusPolicy) (domain.Order, error) {
	items := make([]domain.CartLine, len(o.Items))
	copy(items, o.Items)
	index := make(map[string]int, len(items))
	for i, line := range items {
		index[line.ID] = i
	}

	for _, edit := range patch.Items {
		i, ok := index[edit.ID]
		if !ok {
			return domain.Order{}, domain.Invalid("order has no line %q", edit.ID)
		}
		if edit.Name != nil {
			name := strings.TrimSpace(*edit.Name)
			if name == "" {
				return domain.Order{}, domain.Invalid("line name is required")
			}
			items[i].Name = name
		}
		if edit.Quantity != nil {
			if *edit.Quantity < 1 {
				return domain.Order{}, domain.Invalid("quantity must be at least 1")
			}
			items[i].Quantity = *edit.Quantity
		}
	}

	if patch.Status != nil {
		next, err := domain.ParseOrderStatus(*patch.Status)
		if err != nil {
			return domain.Order{}, err
		}
		if err := policy.Allow(o.Status, next); err != nil {
			return domain.Order{}, err
		}
		o.Status = next
	}
	if patch.Total != nil {
		if patch.Total.IsNegative() {
			return domain.Order{}, domain.Invalid("total must not be negative")
		}
		if !patch.Total.Equal(patch.Total.Round(domain.AmountScale)) {
			return domain.Order{}, domain.Invalid("total must have at most %d decimal places", domain.AmountScale)
		}
		if patch.Total.GreaterThanOrEqual(domain.MaxAmount) {
			return domain.Order{}, domain.Invalid("total must be below %s", domain.MaxAmount)
		}
		o.Total = *patch.Total
	}
	o.Items = items
	return o, nil
}
