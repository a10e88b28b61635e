package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCreatesTemplateAndDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Feed.BaseURL != "https://gamma-api.polymarket.com" {
		t.Errorf("BaseURL = %q", cfg.Feed.BaseURL)
	}
	if cfg.Feed.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.Feed.Timeout)
	}
	if cfg.Ledger.InitialBalance != 1000.0 {
		t.Errorf("InitialBalance = %v, want 1000", cfg.Ledger.InitialBalance)
	}
	if cfg.Ledger.DBPath != filepath.Join(dir, "trades.db") {
		t.Errorf("DBPath = %q", cfg.Ledger.DBPath)
	}

	// First load writes a template config for the user to edit.
	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Errorf("Expected config.toml template: %v", err)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[feed]
base_url = "http://localhost:9999"
timeout = "3s"

[ledger]
db_path = "/tmp/custom.db"
initial_balance = 500.0
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Feed.BaseURL != "http://localhost:9999" {
		t.Errorf("BaseURL = %q", cfg.Feed.BaseURL)
	}
	if cfg.Feed.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v", cfg.Feed.Timeout)
	}
	if cfg.Ledger.DBPath != "/tmp/custom.db" {
		t.Errorf("DBPath = %q", cfg.Ledger.DBPath)
	}
	if cfg.Ledger.InitialBalance != 500.0 {
		t.Errorf("InitialBalance = %v", cfg.Ledger.InitialBalance)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("POLYMARKET_GAMMA_URL", "http://127.0.0.1:8080")
	t.Setenv("POLYMARKET_DB", "/tmp/env.db")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Feed.BaseURL != "http://127.0.0.1:8080" {
		t.Errorf("BaseURL = %q", cfg.Feed.BaseURL)
	}
	if cfg.Ledger.DBPath != "/tmp/env.db" {
		t.Errorf("DBPath = %q", cfg.Ledger.DBPath)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty base url", func(c *Config) { c.Feed.BaseURL = "" }, true},
		{"zero timeout", func(c *Config) { c.Feed.Timeout = 0 }, true},
		{"negative balance", func(c *Config) { c.Ledger.InitialBalance = -1 }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{
				Feed:   FeedConfig{BaseURL: "https://gamma-api.polymarket.com", Timeout: 15 * time.Second},
				Ledger: LedgerConfig{DBPath: "/tmp/x.db", InitialBalance: 1000},
				Log:    LogConfig{Level: "warn"},
			}
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
