package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/sandeepkv93/todocal/internal/model"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", DefaultConfigFileName)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultView != "calendar" || cfg.DefaultFilter != "all" || cfg.Backend != BackendMemory {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("load must not create the file, stat err=%v", err)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	data := `
default_view = "list"
default_tab = "week"
start_month = "2025-06"
backend = "sqlite"
seed = true
seed_value = 42

[keys]
add = "n"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultView != "list" || cfg.DefaultTab != "week" || cfg.Backend != BackendSQLite {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if !cfg.Seed || cfg.SeedValue != 42 {
		t.Fatalf("seed values not applied: %+v", cfg)
	}
	if cfg.Cursor() != (model.Month{Year: 2025, Month: time.June}) {
		t.Fatalf("unexpected cursor: %v", cfg.Cursor())
	}
	if cfg.Keys.Add != "n" || cfg.Keys.Quit != "q,ctrl+c" {
		t.Fatalf("keys should merge with defaults: %+v", cfg.Keys)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	if err := os.WriteFile(path, []byte(`default_view = "list"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TODOCAL_DEFAULT_VIEW", "calendar")
	t.Setenv("TODOCAL_SEED", "yes")
	t.Setenv("TODOCAL_SEED_VALUE", "7")
	t.Setenv("TODOCAL_ROLLOVER_BUFFER", "16")
	t.Setenv("TODOCAL_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultView != "calendar" || !cfg.Seed || cfg.SeedValue != 7 || cfg.RolloverBuffer != 16 || cfg.LogLevel != "debug" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("TODOCAL_SEED", "maybe")
	t.Setenv("TODOCAL_ROLLOVER_BUFFER", "-3")
	t.Setenv("TODOCAL_SEED_VALUE", "abc")
	cfg := FromEnv(Default())
	if cfg.Seed || cfg.RolloverBuffer != 4 || cfg.SeedValue != 1 {
		t.Fatalf("garbage env values should be ignored: %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []string{
		`default_view = "grid"`,
		`default_tab = "month"`,
		`backend = "postgres"`,
		`start_month = "June"`,
		`log_level = "loud"`,
		`rollover_buffer = 0`,
		`default_view = `,
	}
	for _, data := range cases {
		path := filepath.Join(t.TempDir(), DefaultConfigFileName)
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("expected error for %q", data)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load encoded config: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("round trip changed config: %+v", cfg)
	}
}

func TestDefaultPathHonoursEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.toml")
	if got := DefaultPath(); got != "/tmp/custom.toml" {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestKeys(t *testing.T) {
	cases := map[string][]string{
		"q,ctrl+c":     {"q", "ctrl+c"},
		" ,x":          {" ", "x"},
		",":            {","},
		"ctrl+left, [": {"ctrl+left", "["},
		"":             {},
	}
	for raw, want := range cases {
		if got := Keys(raw); !slices.Equal(got, want) {
			t.Fatalf("Keys(%q) = %q, want %q", raw, got, want)
		}
	}
}
