package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/parcelview/pkg/errors"
	"github.com/matzehuels/parcelview/pkg/parcel"
	"github.com/matzehuels/parcelview/pkg/viewport"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if got := Default().Scaler(); got != viewport.Default() {
		t.Errorf("Scaler() = %+v, want %+v", got, viewport.Default())
	}
	if got := Default().Compression; got != parcel.DefaultPolicy() {
		t.Errorf("Compression = %+v, want %+v", got, parcel.DefaultPolicy())
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Addr != Default().Server.Addr {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[viewport]
budget = 240.0

[compression]
soft = 0.9

[engine]
url = "http://localhost:8080"
timeout_seconds = 3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Viewport.Budget != 240 {
		t.Errorf("Viewport.Budget = %v, want 240", cfg.Viewport.Budget)
	}
	if cfg.Viewport.MaxScale != viewport.DefaultMax {
		t.Errorf("Viewport.MaxScale = %v, want default %v", cfg.Viewport.MaxScale, viewport.DefaultMax)
	}
	if cfg.Compression.Soft != 0.9 || cfg.Compression.Plush != parcel.DefaultPlushFactor {
		t.Errorf("Compression = %+v, want soft 0.9 and default plush", cfg.Compression)
	}
	if cfg.EngineTimeout() != 3*time.Second {
		t.Errorf("EngineTimeout() = %v, want 3s", cfg.EngineTimeout())
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[viewport\nbudget = 1"},
		{"negative gap", "[reference]\ngap_cm = -1.0"},
		{"zero gap", "[reference]\ngap_cm = 0.0"},
		{"swapped clamp", "[viewport]\nmin_scale = 1.0\nmax_scale = 0.5"},
		{"compression above one", "[compression]\nplush = 1.5"},
		{"bad engine url", "[engine]\nurl = \"ftp://example.com\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() succeeded, want error")
			}
		})
	}
}

func TestSaveRoundTripsThroughLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Reference.GapCm = 8
	cfg.Reference.Disabled = true
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	opts := got.SceneOptions()
	if opts.GapCm != 8 || !opts.NoRef {
		t.Errorf("SceneOptions() = %+v, want gap 8 and no reference", opts)
	}
}

func TestLoadCatalog(t *testing.T) {
	cfg := Default()
	c, err := cfg.LoadCatalog()
	if err != nil || c.Len() == 0 {
		t.Fatalf("LoadCatalog() = %v, %v", c, err)
	}

	cfg.Catalog.Path = filepath.Join(t.TempDir(), "missing.toml")
	if _, err := cfg.LoadCatalog(); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadCatalog(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")
	got, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/custom-config", appName, "config.toml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestPathHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	got, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".config", appName, "config.toml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}
