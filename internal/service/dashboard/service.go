// Package dashboard backs the seller dashboard: recent orders and the
// logistics partners.
package dashboard

import (
	"context"
	"time"

	"storefront/internal/domain"
	logisticsrepo "storefront/internal/repository/logistics"
	orderrepo "storefront/internal/repository/order"
)

const pageSize = 5

// OrdersPage is one page of the seller's order list, newest first.
type OrdersPage struct {
	Orders  []domain.Order `json:"orders"`
	Page    int            `json:"page"`
	HasNext bool           `json:"hasNext"`
}

type Service struct {
	orders    orderrepo.Repository
	logistics logisticsrepo.Repository
	scope     domain.OrderScope
	timeout   time.Duration
}

func New(orders orderrepo.Repository, logistics logisticsrepo.Repository, scope domain.OrderScope, timeout time.Duration) *Service {
	if scope == "" {
		scope = domain.OrderScopeAll
	}
	return &Service{orders: orders, logistics: logistics, scope: scope, timeout: timeout}
}

// Orders returns rows (page-1)*5 through page*5-1 of the orders visible to
// the seller.
func (s *Service) Orders(ctx context.Context, seller domain.Identity, page int) (OrdersPage, error) {
	if !seller.IsSeller() {
		return OrdersPage{}, domain.ErrForbidden
	}
	if page < 1 {
		page = 1
	}
	out := OrdersPage{Orders: []domain.Order{}, Page: page}
	business, ok := s.scope.BusinessFilter(seller)
	if !ok {
		return out, nil
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()
	// one extra row tells whether a next page exists
	list, err := s.orders.List(ctx, orderrepo.ListFilter{
		BusinessName: business,
		Offset:       (page - 1) * pageSize,
		Limit:        pageSize + 1,
	})
	if err != nil {
		return OrdersPage{}, domain.StoreFailure("list orders", err)
	}
	if len(list) > pageSize {
		out.HasNext = true
		list = list[:pageSize]
	}
	out.Orders = append(out.Orders, list...)
	return out, nil
}

func (s *Service) Logistics(ctx context.Context, seller domain.Identity) ([]domain.Logistics, error) {
	if !seller.IsSeller() {
		return nil, domain.ErrForbidden
	}
	ctx, cancel := s.storeContext(ctx)
	defer cancel()
	list, err := s.logistics.List(ctx)
	if err != nil {
		return nil, domain.StoreFailure("list logistics", err)
	}
	if list == nil {
		list = []domain.Logistics{}
	}
	return list, nil
}

func (s *Service) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
