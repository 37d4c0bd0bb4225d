// Package config loads parcelview settings from a TOML file.
//
// Every field has a default, so a missing file is not an error:
//
//	[viewport]
//	budget = 180.0
//	min_scale = 0.08
//	max_scale = 0.4
//	floor_mm = 1.0
//
//	[reference]
//	gap_cm = 5.0
//
//	[compression]
//	soft = 0.8
//	plush = 0.6
//
//	[engine]
//	url = "http://localhost:8080"
//	timeout_seconds = 10
//
//	[server]
//	addr = ":8090"
//
// The file lives at $XDG_CONFIG_HOME/parcelview/config.toml, falling back to
// ~/.config/parcelview/config.toml. See [Path].
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/parcelview/pkg/catalog"
	"github.com/matzehuels/parcelview/pkg/errors"
	"github.com/matzehuels/parcelview/pkg/parcel"
	"github.com/matzehuels/parcelview/pkg/reference"
	"github.com/matzehuels/parcelview/pkg/scene"
	"github.com/matzehuels/parcelview/pkg/viewport"
)

const appName = "parcelview"

// Config is the application configuration.
type Config struct {
	Viewport    ViewportConfig  `toml:"viewport"`
	Reference   ReferenceConfig `toml:"reference"`
	Compression parcel.Policy   `toml:"compression"`
	Engine      EngineConfig    `toml:"engine"`
	Server      ServerConfig    `toml:"server"`
	Catalog     CatalogConfig   `toml:"catalog"`
}

// ViewportConfig controls the render scale.
type ViewportConfig struct {
	Budget   float64 `toml:"budget"`
	MinScale float64 `toml:"min_scale"`
	MaxScale float64 `toml:"max_scale"`
	FloorMm  float64 `toml:"floor_mm"`
}

// ReferenceConfig controls the comparison object.
type ReferenceConfig struct {
	GapCm    float64 `toml:"gap_cm"`
	Disabled bool    `toml:"disabled"`
}

// EngineConfig points at the external packing engine. An empty URL means
// previews fall back to the local estimate.
type EngineConfig struct {
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr                   string `toml:"addr"`
	ReadTimeoutSeconds     int    `toml:"read_timeout_seconds"`
	ShutdownTimeoutSeconds int    `toml:"shutdown_timeout_seconds"`
}

// CatalogConfig selects the item catalog. An empty path uses the built-in one.
type CatalogConfig struct {
	Path string `toml:"path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Viewport: ViewportConfig{
			Budget:   viewport.DefaultBudget,
			MinScale: viewport.DefaultMin,
			MaxScale: viewport.DefaultMax,
			FloorMm:  viewport.DefaultFloor,
		},
		Reference:   ReferenceConfig{GapCm: reference.DefaultGapCm},
		Compression: parcel.DefaultPolicy(),
		Engine:      EngineConfig{TimeoutSeconds: 10},
		Server: ServerConfig{
			Addr:                   ":8090",
			ReadTimeoutSeconds:     15,
			ShutdownTimeoutSeconds: 10,
		},
	}
}

// Load reads configuration from path on top of the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	v := c.Viewport
	if v.Budget <= 0 || v.MinScale <= 0 || v.MaxScale <= 0 || v.FloorMm <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "viewport values must be positive")
	}
	if v.MinScale > v.MaxScale {
		return errors.New(errors.ErrCodeInvalidConfig, "viewport min_scale %v exceeds max_scale %v", v.MinScale, v.MaxScale)
	}
	if c.Reference.GapCm <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "reference gap_cm must be positive, got %v", c.Reference.GapCm)
	}
	for name, f := range map[string]float64{"soft": c.Compression.Soft, "plush": c.Compression.Plush} {
		if f <= 0 || f > 1 {
			return errors.New(errors.ErrCodeInvalidConfig, "compression %s must be in (0, 1], got %v", name, f)
		}
	}
	if c.Engine.URL != "" {
		if err := errors.ValidateURL(c.Engine.URL); err != nil {
			return err
		}
	}
	if c.Engine.TimeoutSeconds < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "engine timeout_seconds cannot be negative")
	}
	return nil
}

// Scaler returns the configured viewport scaler.
func (c *Config) Scaler() viewport.Scaler {
	return viewport.Scaler{
		Budget: c.Viewport.Budget,
		Min:    c.Viewport.MinScale,
		Max:    c.Viewport.MaxScale,
		Floor:  c.Viewport.FloorMm,
	}
}

// SceneOptions returns scene options built from the configuration.
func (c *Config) SceneOptions() scene.Options {
	return scene.Options{
		Scaler: c.Scaler(),
		GapCm:  c.Reference.GapCm,
		NoRef:  c.Reference.Disabled,
	}
}

// EngineTimeout returns the engine request timeout.
func (c *Config) EngineTimeout() time.Duration {
	return time.Duration(c.Engine.TimeoutSeconds) * time.Second
}

// LoadCatalog returns the configured catalog, or the built-in one.
func (c *Config) LoadCatalog() (*catalog.Catalog, error) {
	if c.Catalog.Path == "" {
		return catalog.Default()
	}
	return catalog.Load(c.Catalog.Path)
}

// Path returns the default configuration file location.
func Path() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
