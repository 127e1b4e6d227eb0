// Package config resolves runtime settings from defaults, an optional YAML
// file and MAREAS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/mareas/internal/model"
)

const (
	BackendDBF    = "dbf"
	BackendSQLite = "sqlite"
)

var ErrInvalid = errors.New("config: invalid")

type CatalogConfig struct {
	Backend  string `yaml:"backend"`
	Dir      string `yaml:"dir"`
	Database string `yaml:"database"`
	Codepage string `yaml:"codepage"`
}

type StateConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

type UIConfig struct {
	SpeciesDisplay string `yaml:"species_display"`
}

type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	State   StateConfig   `yaml:"state"`
	Log     LogConfig     `yaml:"log"`
	UI      UIConfig      `yaml:"ui"`
}

// DefaultConfig places every file under baseDir, the directory the tool
// runs from.
func DefaultConfig(baseDir string) Config {
	return Config{
		Catalog: CatalogConfig{
			Backend:  BackendDBF,
			Dir:      filepath.Join(baseDir, "bases"),
			Database: filepath.Join(baseDir, "catalog.db"),
			Codepage: "cp1252",
		},
		State: StateConfig{Path: filepath.Join(baseDir, "config.json")},
		Log: LogConfig{
			Path:  filepath.Join(baseDir, "mareas.log"),
			Level: "info",
		},
		UI: UIConfig{SpeciesDisplay: string(model.DisplayCommonFirst)},
	}
}

// Load overlays the YAML file at path on base. A missing file leaves base
// unchanged; an empty path skips the file tier.
func Load(path string, base Config) (Config, error) {
	cfg := base
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnv("MAREAS_CATALOG_BACKEND"); ok {
		cfg.Catalog.Backend = strings.ToLower(v)
	}
	if v, ok := getEnv("MAREAS_CATALOG_DIR"); ok {
		cfg.Catalog.Dir = v
	}
	if v, ok := getEnv("MAREAS_CATALOG_DB"); ok {
		cfg.Catalog.Database = v
	}
	if v, ok := getEnv("MAREAS_CODEPAGE"); ok {
		cfg.Catalog.Codepage = v
	}
	if v, ok := getEnv("MAREAS_STATE_FILE"); ok {
		cfg.State.Path = v
	}
	if v, ok := getEnv("MAREAS_LOG_FILE"); ok {
		cfg.Log.Path = v
	}
	if v, ok := getEnv("MAREAS_LOG_LEVEL"); ok {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v, ok := getEnv("MAREAS_SPECIES_DISPLAY"); ok {
		cfg.UI.SpeciesDisplay = strings.ToLower(v)
	}
	return cfg
}

func (c Config) Validate() error {
	switch c.Catalog.Backend {
	case BackendDBF, BackendSQLite:
	default:
		return fmt.Errorf("%w: catalog.backend %q (want %s or %s)", ErrInvalid, c.Catalog.Backend, BackendDBF, BackendSQLite)
	}
	if c.Catalog.Backend == BackendDBF && strings.TrimSpace(c.Catalog.Dir) == "" {
		return fmt.Errorf("%w: catalog.dir is required for the %s backend", ErrInvalid, BackendDBF)
	}
	if c.Catalog.Backend == BackendSQLite && strings.TrimSpace(c.Catalog.Database) == "" {
		return fmt.Errorf("%w: catalog.database is required for the %s backend", ErrInvalid, BackendSQLite)
	}
	if _, err := log.ParseLevel(c.Log.Level); c.Log.Level != "" && err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	if _, err := model.ParseDisplayMode(c.UI.SpeciesDisplay); err != nil {
		return fmt.Errorf("%w: ui.species_display %q", ErrInvalid, c.UI.SpeciesDisplay)
	}
	return nil
}

// DisplayMode returns the configured species order, defaulting to common
// name first.
func (c Config) DisplayMode() model.DisplayMode {
	mode, err := model.ParseDisplayMode(c.UI.SpeciesDisplay)
	if err != nil {
		return model.DisplayCommonFirst
	}
	return mode
}

func getEnv(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}
