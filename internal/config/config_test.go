package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadOverridesAndFallbacks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planwright.toml")
	content := `
[server]
addr = ":9090"

[mongo]
uri = "mongodb://localhost:27017"

[engine]
grid_size = 1.0

[render]
show_grid = true
show_swings = false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" || cfg.Mongo.Database != "planwright" {
		t.Errorf("mongo = %+v", cfg.Mongo)
	}
	if cfg.Engine.GridSize != 1.0 {
		t.Errorf("grid_size = %v", cfg.Engine.GridSize)
	}
	// Unset engine fields fall back to defaults.
	if cfg.Engine.SearchRadius != Default().Engine.SearchRadius {
		t.Errorf("search_radius = %v", cfg.Engine.SearchRadius)
	}
	// Boolean toggles are taken as written, not defaulted back.
	if !cfg.Render.ShowGrid || cfg.Render.ShowSwings {
		t.Errorf("render toggles = %+v", cfg.Render)
	}
	if cfg.Render.Scale != Default().Render.Scale {
		t.Errorf("scale = %v", cfg.Render.Scale)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[server\naddr=1"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed TOML should error")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "planwright.toml")
	want := Default()
	want.Server.Addr = ":7070"

	if err := Write(want, path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg := Default()
	cfg.Engine.GridSize = 2.0
	cfg.Render.ShowGrid = true

	opts := cfg.PipelineOptions()
	if opts.GridSize != 2.0 || !opts.ShowGrid || !opts.ShowSwings {
		t.Errorf("opts = %+v", opts)
	}
}
