package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/parcelview/pkg/buildinfo"
	"github.com/matzehuels/parcelview/pkg/catalog"
	"github.com/matzehuels/parcelview/pkg/config"
	"github.com/matzehuels/parcelview/pkg/engine"
	"github.com/matzehuels/parcelview/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "parcelview"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string // --config; empty uses config.Path()
	engineURL  string // --engine; overrides the config file
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Parcelview previews how a cart packs into a parcel",
		Long:         `Parcelview estimates the parcel a cart of items needs, draws it next to a familiar reference object, and serves the same previews over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/parcelview/config.toml)")
	root.PersistentFlags().StringVar(&c.engineURL, "engine", "", "packing engine base URL (overrides config)")

	// Register all subcommands
	root.AddCommand(c.estimateCommand())
	root.AddCommand(c.sceneCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.manualCommand())
	root.AddCommand(c.tiersCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.cartCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Runner Factory
// =============================================================================

// loadConfig loads the configuration once per process. Flags win over the file.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg := config.Default()
	path := c.configPath
	if path == "" {
		if p, err := config.Path(); err == nil {
			path = p
		} else {
			c.Logger.Debug("no config path, using defaults", "err", err)
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if c.engineURL != "" {
		cfg.Engine.URL = c.engineURL
	}
	c.Logger.Debug("loaded config", "path", path, "engine", cfg.Engine.URL)
	c.cfg = cfg
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use. The engine is attached
// only when a URL is configured.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	opts := pipeline.DefaultOptions()
	opts.Policy = cfg.Compression
	opts.Scene = cfg.SceneOptions()

	var packer pipeline.Packer
	if cfg.Engine.URL != "" {
		client, err := engine.NewClient(cfg.Engine.URL, cfg.EngineTimeout(), engine.WithLogger(c.Logger))
		if err != nil {
			return nil, err
		}
		packer = client
	}
	return pipeline.NewRunner(packer, c.Logger, opts), nil
}

// newCatalog loads the configured catalog.
func (c *CLI) newCatalog() (*catalog.Catalog, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return cfg.LoadCatalog()
}

// resolveCartFile reads a cart file and resolves it against the catalog.
func (c *CLI) resolveCartFile(ctx context.Context, path string) ([]catalog.Line, error) {
	cat, err := c.newCatalog()
	if err != nil {
		return nil, err
	}
	reqs, err := importCart(path)
	if err != nil {
		return nil, err
	}
	loggerFromContext(ctx).Debugf("Loaded cart %s: %d lines", path, len(reqs))
	return cat.Resolve(reqs)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
