package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

// ParseOrderStatus accepts the three known statuses, case-insensitively.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered:
		return st, nil
	default:
		return "", Invalid("unknown order status %q", s)
	}
}

func (s OrderStatus) rank() int {
	switch s {
	case OrderStatusPending:
		return 0
	case OrderStatusShipped:
		return 1
	case OrderStatusDelivered:
		return 2
	}
	return -1
}

// StatusPolicy decides whether a status transition is allowed.
type StatusPolicy interface {
	Allow(from, to OrderStatus) error
}

// OpenStatusPolicy allows any transition between known statuses.
type OpenStatusPolicy struct{}

func (OpenStatusPolicy) Allow(_, to OrderStatus) error {
	if to.rank() < 0 {
		return Invalid("unknown order status %q", to)
	}
	return nil
}

// ForwardStatusPolicy allows pending → shipped → delivered and no-op
// transitions only.
type ForwardStatusPolicy struct{}

func (ForwardStatusPolicy) Allow(from, to OrderStatus) error {
	if to.rank() < 0 {
		return Invalid("unknown order status %q", to)
	}
	if to.rank() < from.rank() {
		return Invalid("order status cannot move from %s back to %s", from, to)
	}
	return nil
}

// StatusPolicyByName maps a configuration value to a policy.
func StatusPolicyByName(name string) (StatusPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "open":
		return OpenStatusPolicy{}, nil
	case "forward":
		return ForwardStatusPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown status policy %q", name)
	}
}

// Stored amounts are numeric(12,2): two decimal places, below 10^10.
const AmountScale = 2

var MaxAmount = decimal.New(1, 10)

// Order is the durable record created from a submitted cart.
type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Items     []CartLine      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ItemsTotal recomputes Σ price × quantity over the stored items. The
// stored Total is authoritative and is never replaced by this value.
func (o Order) ItemsTotal() decimal.Decimal {
	return Cart{Lines: o.Items}.Total()
}
