package postgres

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("postgres://localhost/deep")

	if cfg.URL != "postgres://localhost/deep" {
		t.Errorf("unexpected URL %s", cfg.URL)
	}
	if cfg.MaxOpenConns != 25 || cfg.MaxIdleConns != 5 {
		t.Errorf("unexpected pool sizes %d/%d", cfg.MaxOpenConns, cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime != 5*time.Minute {
		t.Errorf("unexpected lifetime %v", cfg.ConnMaxLifetime)
	}
}

func TestSchema_DefinesKVStore(t *testing.T) {
	if !strings.Contains(schema, "CREATE TABLE IF NOT EXISTS kv_store") {
		t.Error("schema must create kv_store idempotently")
	}
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := Connect(ctx, DefaultConfig("postgres://deep@127.0.0.1:1/deep?sslmode=disable&connect_timeout=1"))
	if err == nil {
		t.Fatal("expected connection error")
	}
}
