package db

import (
	"testing"
	"time"
)

const testDSN = "postgres://u:p@localhost:5432/storefront?sslmode=disable"

func TestPoolConfig_Defaults(t *testing.T) {
	cfg, err := poolConfig(testDSN, PoolOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxConnIdleTime != 5*time.Minute || cfg.MaxConnLifetime != 30*time.Minute {
		t.Fatalf("unexpected defaults idle=%s life=%s", cfg.MaxConnIdleTime, cfg.MaxConnLifetime)
	}
}

func TestPoolConfig_Overrides(t *testing.T) {
	cfg, err := poolConfig(testDSN, PoolOptions{MaxConns: 7, MaxConnLifetime: time.Minute})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxConns != 7 {
		t.Fatalf("expected 7 max conns, got %d", cfg.MaxConns)
	}
	if cfg.MaxConnLifetime != time.Minute {
		t.Fatalf("expected lifetime override, got %s", cfg.MaxConnLifetime)
	}
}

func TestPoolConfig_BadDSN(t *testing.T) {
	if _, err := poolConfig("postgres://%zz", PoolOptions{}); err == nil {
		t.Fatalf("expected parse error")
	}
}
