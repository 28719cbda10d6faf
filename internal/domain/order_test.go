package domain

import (
	"errors"
	"testing"
)

func TestParseOrderStatus(t *testing.T) {
	st, err := ParseOrderStatus(" Shipped ")
	if err != nil || st != OrderStatusShipped {
		t.Fatalf("expected shipped, got %q %v", st, err)
	}
	if _, err := ParseOrderStatus("lost"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOpenStatusPolicyAllowsAnyTransition(t *testing.T) {
	p := OpenStatusPolicy{}
	if err := p.Allow(OrderStatusDelivered, OrderStatusPending); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestForwardStatusPolicy(t *testing.T) {
	p := ForwardStatusPolicy{}
	cases := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{OrderStatusPending, OrderStatusShipped, true},
		{OrderStatusPending, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusShipped, true},
		{OrderStatusDelivered, OrderStatusShipped, false},
		{OrderStatusShipped, OrderStatusPending, false},
		{OrderStatusPending, OrderStatus("lost"), false},
	}
	for _, tc := range cases {
		err := p.Allow(tc.from, tc.to)
		if tc.ok && err != nil {
			t.Fatalf("%s -> %s: unexpected error %v", tc.from, tc.to, err)
		}
		if !tc.ok && !errors.Is(err, ErrValidation) {
			t.Fatalf("%s -> %s: expected validation error, got %v", tc.from, tc.to, err)
		}
	}
}

func TestStoreFailureClassification(t *testing.T) {
	cause := errors.New("connection reset")
	err := StoreFailure("insert order", cause)
	if !errors.Is(err, ErrStoreFailure) || !errors.Is(err, cause) {
		t.Fatalf("expected store failure wrapping cause, got %v", err)
	}
	if StoreFailure("get order", ErrNotFound) != ErrNotFound {
		t.Fatalf("not found must pass through unchanged")
	}
	if !errors.Is(StoreFailure("create product", ErrAlreadyExists), ErrAlreadyExists) {
		t.Fatalf("conflicts must pass through")
	}
	if StoreFailure("noop", nil) != nil {
		t.Fatalf("nil must stay nil")
	}
}
