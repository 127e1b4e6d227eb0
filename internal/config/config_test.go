package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/mareas/internal/model"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig("/opt/mareas")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.State.Path != filepath.Join("/opt/mareas", "config.json") {
		t.Fatalf("unexpected state path: %q", cfg.State.Path)
	}
	if cfg.Catalog.Backend != BackendDBF || cfg.Catalog.Codepage != "cp1252" {
		t.Fatalf("unexpected catalog defaults: %+v", cfg.Catalog)
	}
	if cfg.DisplayMode() != model.DisplayCommonFirst {
		t.Fatalf("unexpected display mode: %q", cfg.DisplayMode())
	}
}

func TestLoadOverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mareas.yaml")
	body := "catalog:\n  backend: sqlite\n  database: /data/cat.db\nui:\n  species_display: scientific_first\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, DefaultConfig("/base"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Catalog.Backend != BackendSQLite || cfg.Catalog.Database != "/data/cat.db" {
		t.Fatalf("yaml not applied: %+v", cfg.Catalog)
	}
	if cfg.Catalog.Codepage != "cp1252" {
		t.Fatalf("untouched default lost: %q", cfg.Catalog.Codepage)
	}
	if cfg.DisplayMode() != model.DisplayScientificFirst {
		t.Fatalf("unexpected display mode: %q", cfg.DisplayMode())
	}
}

func TestLoadMissingFileKeepsBase(t *testing.T) {
	base := DefaultConfig("/base")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), base)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != base {
		t.Fatalf("expected base config, got %+v", cfg)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("catalog: [oops"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path, DefaultConfig("/base")); err == nil {
		t.Fatal("expected yaml error")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MAREAS_CATALOG_BACKEND", "SQLite")
	t.Setenv("MAREAS_CATALOG_DIR", "/legacy")
	t.Setenv("MAREAS_CATALOG_DB", "/tmp/c.db")
	t.Setenv("MAREAS_CODEPAGE", "cp850")
	t.Setenv("MAREAS_STATE_FILE", "/tmp/state.json")
	t.Setenv("MAREAS_LOG_FILE", "/tmp/m.log")
	t.Setenv("MAREAS_LOG_LEVEL", "DEBUG")
	t.Setenv("MAREAS_SPECIES_DISPLAY", "scientific_first")

	cfg := FromEnv(DefaultConfig("/base"))
	want := Config{
		Catalog: CatalogConfig{Backend: BackendSQLite, Dir: "/legacy", Database: "/tmp/c.db", Codepage: "cp850"},
		State:   StateConfig{Path: "/tmp/state.json"},
		Log:     LogConfig{Path: "/tmp/m.log", Level: "debug"},
		UI:      UIConfig{SpeciesDisplay: "scientific_first"},
	}
	if cfg != want {
		t.Fatalf("env overrides mismatch:\n got %+v\nwant %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestFromEnvIgnoresBlankValues(t *testing.T) {
	t.Setenv("MAREAS_STATE_FILE", "   ")
	base := DefaultConfig("/base")
	if got := FromEnv(base); got != base {
		t.Fatalf("blank env should not override, got %+v", got)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"backend":      func(c *Config) { c.Catalog.Backend = "oracle" },
		"dir":          func(c *Config) { c.Catalog.Dir = "" },
		"database":     func(c *Config) { c.Catalog.Backend = BackendSQLite; c.Catalog.Database = " " },
		"log level":    func(c *Config) { c.Log.Level = "loud" },
		"display mode": func(c *Config) { c.UI.SpeciesDisplay = "latin" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig("/base")
			mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}
