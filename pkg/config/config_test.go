package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Periods != "7days,30days" {
		t.Errorf("expected default Periods, got %s", cfg.Periods)
	}
	if cfg.OrdersTable != "orders" {
		t.Errorf("expected default OrdersTable 'orders', got %s", cfg.OrdersTable)
	}
	if cfg.QueryTimeout != 30*time.Second {
		t.Errorf("expected default QueryTimeout 30s, got %s", cfg.QueryTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default LogLevel 'info', got %s", cfg.LogLevel)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("METRICS_DSN", "mariadb://u:p@localhost:3306/shop")
	t.Setenv("METRICS_OUTPUT", "yaml")
	t.Setenv("METRICS_QUERY_TIMEOUT", "5s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.DSN != "mariadb://u:p@localhost:3306/shop" {
		t.Errorf("expected DSN to be set, got %s", cfg.DSN)
	}
	if cfg.Output != "yaml" {
		t.Errorf("expected Output 'yaml', got %s", cfg.Output)
	}
	if cfg.QueryTimeout != 5*time.Second {
		t.Errorf("expected QueryTimeout 5s, got %s", cfg.QueryTimeout)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("METRICS_EVENTS_TABLE=tracking_events\nLOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// the environment wins over the file
	t.Setenv("LOG_LEVEL", "warn")
	t.Cleanup(func() { os.Unsetenv("METRICS_EVENTS_TABLE") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.EventsTable != "tracking_events" {
		t.Errorf("expected EventsTable from .env, got %s", cfg.EventsTable)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected LogLevel 'warn', got %s", cfg.LogLevel)
	}
}

func TestLoad_MissingDotEnv(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing .env should be ignored, got %v", err)
	}
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("METRICS_QUERY_TIMEOUT", "soon")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid duration, got nil")
	}
}
