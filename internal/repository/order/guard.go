package order

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/sony/gobreaker/v2"
	"storefront/internal/domain"
)

// BreakerSettings tunes the circuit breaker in front of the order table.
type BreakerSettings struct {
	MaxFailures int
	OpenFor     time.Duration
}

type guardedRepo struct {
	next Repository
	cb   *gobreaker.CircuitBreaker[any]
}

// NewGuarded wraps next with a circuit breaker. After MaxFailures
// consecutive store failures calls fail fast with a store failure until
// OpenFor has elapsed. Not-found results and caller cancellations are not
// failures.
func NewGuarded(next Repository, s BreakerSettings, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if s.MaxFailures <= 0 {
		s.MaxFailures = 5
	}
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "customer_orders",
		MaxRequests: 1,
		Timeout:     s.OpenFor,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= uint32(s.MaxFailures)
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, domain.ErrNotFound) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Printf("order repo: breaker %s %s -> %s", name, from, to)
		},
	})
	return &guardedRepo{next: next, cb: cb}
}

func (g *guardedRepo) Create(ctx context.Context, in NewOrder) (*domain.Order, error) {
	res, err := g.cb.Execute(func() (any, error) {
		return g.next.Create(ctx, in)
	})
	if err != nil {
		return nil, domain.StoreFailure("insert order", err)
	}
	return res.(*domain.Order), nil
}

func (g *guardedRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	res, err := g.cb.Execute(func() (any, error) {
		return g.next.GetByID(ctx, id)
	})
	if err != nil {
		return nil, domain.StoreFailure("fetch order", err)
	}
	return res.(*domain.Order), nil
}

func (g *guardedRepo) Update(ctx context.Context, id string, rev Revision) error {
	_, err := g.cb.Execute(func() (any, error) {
		return nil, g.next.Update(ctx, id, rev)
	})
	return domain.StoreFailure("update order", err)
}

func (g *guardedRepo) List(ctx context.Context, f ListFilter) ([]domain.Order, error) {
	res, err := g.cb.Execute(func() (any, error) {
		return g.next.List(ctx, f)
	})
	if err != nil {
		return nil, domain.StoreFailure("list orders", err)
	}
	return res.([]domain.Order), nil
}
