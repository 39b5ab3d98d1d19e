// Package cli implements the dotkit command-line interface.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dotkit/internal/config"
	"github.com/matzehuels/dotkit/pkg/buildinfo"
	"github.com/matzehuels/dotkit/pkg/cache"
	"github.com/matzehuels/dotkit/pkg/engine"
	"github.com/matzehuels/dotkit/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "dotkit"

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

	// Config is loaded before any subcommand runs.
	Config *config.Config

	configPath string

	// newBackend and rasterize are swapped out in tests.
	newBackend func(name string) (engine.Backend, error)
	rasterize  engine.Rasterizer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:     newLogger(w, level),
		Config:     config.Default(),
		newBackend: engine.NewBackend,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "dotkit renders Graphviz diagrams at the size you ask for",
		Long: `dotkit renders DOT sources through Graphviz and corrects the output so it
honours the requested pixel size, resolution and font scaling.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/dotkit/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.formatsCommand())
	root.AddCommand(c.optionsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.exampleCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Renderer Factory
// =============================================================================

// newRenderer creates a renderer for CLI use. The returned function
// releases the backend and the cache.
func (c *CLI) newRenderer(ctx context.Context, backendName string, noCache bool) (*engine.Renderer, func(), error) {
	if backendName == "" {
		backendName = c.Config.Render.Backend
	}
	backend, err := c.newBackend(backendName)
	if err != nil {
		return nil, nil, err
	}

	store := c.openCache(ctx, noCache)
	r := engine.NewRenderer(backend, store, nil, c.Logger)
	if c.Config.Cache.TTL > 0 {
		r.TTL = c.Config.Cache.TTL
	}
	if c.rasterize != nil {
		r.Rasterize = c.rasterize
	}

	cleanup := func() {
		if err := backend.Close(); err != nil {
			c.Logger.Debug("close backend", "err", err)
		}
		if err := store.Close(); err != nil {
			c.Logger.Debug("close cache", "err", err)
		}
	}
	return r, cleanup, nil
}

// openCache opens the configured cache. A cache that cannot be opened is
// not fatal: rendering continues uncached.
func (c *CLI) openCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	store, err := cache.Open(ctx, c.Config.CacheConfig(c.Logger))
	if err != nil {
		c.Logger.Warn("cache unavailable, rendering uncached", "backend", c.Config.Cache.Backend, "err", err)
		return cache.NewNullCache()
	}
	return store
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format list. Empty means def.
// Duplicates are dropped.
func parseFormats(s string, def engine.Format) ([]engine.Format, error) {
	if strings.TrimSpace(s) == "" {
		return []engine.Format{def}, nil
	}
	var formats []engine.Format
	seen := map[engine.Format]bool{}
	for _, part := range strings.Split(s, ",") {
		f, err := engine.ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no format given")
	}
	return formats, nil
}
