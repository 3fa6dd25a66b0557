// Package cli implements the planwright command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/planwright/planwright/internal/config"
	"github.com/planwright/planwright/pkg/buildinfo"
	"github.com/planwright/planwright/pkg/cache"
	"github.com/planwright/planwright/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "planwright"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands: the logger and the loaded
// configuration file.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and default
// configuration. The configuration file is loaded in the root command's
// PersistentPreRunE so that --config takes effect.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Planwright validates and renders 2D floor plans",
		Long:         `Planwright is a geometric placement engine for 2D floor plans: it validates furniture placement and door clearance, renders plans to SVG/PNG/PDF, and serves the same engine over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				p, err := configPath()
				if err != nil {
					return err
				}
				path = p
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to config file (default: "+filepath.Join("~", ".config", appName, "config.toml")+")")

	// Register all subcommands
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.doorsCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/planwright/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configPath returns the config file path using XDG standard
// (~/.config/planwright/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions starts from the configured defaults so flags only
// need to override what the user sets explicitly.
func (c *CLI) pipelineOptions() pipeline.Options {
	opts := c.Config.PipelineOptions()
	opts.Logger = c.Logger
	return opts
}

// applyConfig overlays the loaded configuration onto opts for every
// flag the user left untouched. Flags bind their defaults before the
// config file is read, so without this the file's engine and render
// settings would never take effect.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *pipeline.Options) {
	cfg := c.Config.PipelineOptions()
	opts.SnapThreshold = cfg.SnapThreshold

	overlay := map[string]func(){
		"grid":          func() { opts.GridSize = cfg.GridSize },
		"search-step":   func() { opts.SearchStep = cfg.SearchStep },
		"search-radius": func() { opts.SearchRadius = cfg.SearchRadius },
		"scale":         func() { opts.Scale = cfg.Scale },
		"show-grid":     func() { opts.ShowGrid = cfg.ShowGrid },
		"swings":        func() { opts.ShowSwings = cfg.ShowSwings },
		"labels":        func() { opts.ShowLabels = cfg.ShowLabels },
	}
	for name, apply := range overlay {
		if f := cmd.Flags().Lookup(name); f != nil && !f.Changed {
			apply()
		}
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
