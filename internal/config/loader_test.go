package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	file := []byte("addr: \":9999\"\nlog_level: warn\n")
	if err := os.WriteFile(path, file, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	// Environment beats file beats defaults.
	t.Setenv("LINGUAMEET_LOG_LEVEL", "debug")

	logger := zerolog.Nop()
	cfg, used, err := Load(&logger, path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if used != path {
		t.Fatalf("resolved path %q, want %q", used, path)
	}

	if cfg.Addr != ":9999" {
		t.Errorf("file value not applied: addr %q", cfg.Addr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("env did not override file: log_level %q", cfg.LogLevel)
	}

	// Keys absent from file and environment keep their defaults.
	def := Default()
	if cfg.ShutdownTimeout != def.ShutdownTimeout {
		t.Errorf("shutdown_timeout %v, want default %v", cfg.ShutdownTimeout, def.ShutdownTimeout)
	}
	if cfg.Upstreams["auth"] != def.Upstreams["auth"] {
		t.Errorf("upstreams lost defaults: %v", cfg.Upstreams)
	}
}

func TestLoadWritesDefaultConfigOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	logger := zerolog.Nop()
	cfg, _, err := Load(&logger, path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if _, statErr := os.Stat(path); statErr != nil {
		t.Fatalf("default config not written: %v", statErr)
	}

	def := Default()
	if cfg.Addr != def.Addr || cfg.LogLevel != def.LogLevel {
		t.Fatalf("first-run config differs from defaults: %+v", cfg)
	}

	// The written file must round-trip on the next load.
	cfg2, _, err := Load(&logger, path)
	if err != nil {
		t.Fatalf("reload written config: %v", err)
	}
	if cfg2.Addr != def.Addr || cfg2.ReadHeaderTimeout != def.ReadHeaderTimeout {
		t.Fatalf("written config did not round-trip: %+v", cfg2)
	}
	if len(cfg2.Upstreams) != len(def.Upstreams) {
		t.Fatalf("upstreams did not round-trip: %v", cfg2.Upstreams)
	}
}
