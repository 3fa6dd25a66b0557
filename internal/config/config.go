// Package config loads the planwright configuration file. The file is
// TOML, found at the path given on the command line or at the default
// XDG location, and every field is optional: missing values fall back
// to the same defaults the flags use.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/planwright/planwright/pkg/pipeline"
	"github.com/planwright/planwright/pkg/render/planview"
)

// Config is the full configuration document.
type Config struct {
	Server ServerConfig `toml:"server"`
	Mongo  MongoConfig  `toml:"mongo"`
	Redis  RedisConfig  `toml:"redis"`
	Engine EngineConfig `toml:"engine"`
	Render RenderConfig `toml:"render"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	// Addr is the listen address, host:port.
	Addr string `toml:"addr"`
}

// MongoConfig configures the plan store. An empty URI selects the
// in-memory store.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// RedisConfig configures the presence session store. An empty Addr
// selects the in-memory store.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// EngineConfig carries the geometric engine parameters.
type EngineConfig struct {
	GridSize      float64 `toml:"grid_size"`
	SnapThreshold float64 `toml:"snap_threshold"`
	SearchStep    float64 `toml:"search_step"`
	SearchRadius  float64 `toml:"search_radius"`
}

// RenderConfig carries the plan-view render parameters.
type RenderConfig struct {
	Scale      float64 `toml:"scale"`
	ShowGrid   bool    `toml:"show_grid"`
	ShowSwings bool    `toml:"show_swings"`
	ShowLabels bool    `toml:"show_labels"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Mongo:  MongoConfig{Database: "planwright"},
		Engine: EngineConfig{
			GridSize:      pipeline.DefaultGridSize,
			SnapThreshold: pipeline.DefaultSnapThreshold,
			SearchStep:    pipeline.DefaultSearchStep,
			SearchRadius:  pipeline.DefaultSearchRadius,
		},
		Render: RenderConfig{
			Scale:      planview.DefaultScale,
			ShowSwings: true,
			ShowLabels: true,
		},
	}
}

// Load reads the configuration file at path, layering it over the
// defaults. A missing file is not an error: the defaults are returned
// as-is, so running without a config file always works.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyFallbacks()
	return cfg, nil
}

// applyFallbacks restores defaults for fields the file zeroed or left
// out. Boolean render toggles are taken as written.
func (c *Config) applyFallbacks() {
	d := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = d.Mongo.Database
	}
	if c.Engine.GridSize <= 0 {
		c.Engine.GridSize = d.Engine.GridSize
	}
	if c.Engine.SnapThreshold <= 0 {
		c.Engine.SnapThreshold = d.Engine.SnapThreshold
	}
	if c.Engine.SearchStep <= 0 {
		c.Engine.SearchStep = d.Engine.SearchStep
	}
	if c.Engine.SearchRadius <= 0 {
		c.Engine.SearchRadius = d.Engine.SearchRadius
	}
	if c.Render.Scale <= 0 {
		c.Render.Scale = d.Render.Scale
	}
}

// Write encodes the configuration as TOML at path, creating parent
// directories as needed. Used by the config init command.
func Write(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// PipelineOptions converts the config into pipeline options. Formats
// and plan source are the caller's to fill in.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		GridSize:      c.Engine.GridSize,
		SnapThreshold: c.Engine.SnapThreshold,
		SearchStep:    c.Engine.SearchStep,
		SearchRadius:  c.Engine.SearchRadius,
		Scale:         c.Render.Scale,
		ShowGrid:      c.Render.ShowGrid,
		ShowSwings:    c.Render.ShowSwings,
		ShowLabels:    c.Render.ShowLabels,
	}
}
