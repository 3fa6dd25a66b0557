// Package pipeline provides the core inspection pipeline for Planwright.
//
// This package implements the complete load → inspect → render pipeline
// that can be used by CLI, API, and TUI components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and validate a plan document from a file or raw JSON
//  2. Inspect: Run every placement check, door geometry, and
//     connectivity lint, producing a Report
//  3. Render: Generate output in various formats (SVG, PNG, PDF, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    PlanPath: "house.json",
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/planwright/planwright/pkg/cache"
	"github.com/planwright/planwright/pkg/collide"
	"github.com/planwright/planwright/pkg/door"
	"github.com/planwright/planwright/pkg/geo"
	"github.com/planwright/planwright/pkg/plan"
	"github.com/planwright/planwright/pkg/render/planview"
	"github.com/planwright/planwright/pkg/snap"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and TUI
// =============================================================================

const (
	// DefaultGridSize is the placement grid in inches.
	DefaultGridSize = collide.DefaultSearchGrid

	// DefaultSnapThreshold is the snap capture distance in inches.
	DefaultSnapThreshold = snap.DefaultThreshold

	// DefaultSearchStep is the ring spacing of the nearest-valid search.
	DefaultSearchStep = collide.DefaultSearchStep

	// DefaultSearchRadius bounds the nearest-valid search.
	DefaultSearchRadius = collide.DefaultSearchRadius

	// DefaultScale is the render scale in pixels per inch.
	DefaultScale = planview.DefaultScale

	// DefaultRasterScale is the resolution multiplier for PNG export.
	// 2.0 produces a 2x image suitable for high-DPI displays.
	DefaultRasterScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the inspection pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of PlanPath and PlanJSON must be set.
	PlanPath string `json:"plan_path,omitempty"`
	PlanJSON []byte `json:"plan_json,omitempty"`

	// Engine options.
	GridSize      float64 `json:"grid_size,omitempty"`
	SnapThreshold float64 `json:"snap_threshold,omitempty"`
	SearchStep    float64 `json:"search_step,omitempty"`
	SearchRadius  float64 `json:"search_radius,omitempty"`

	// Render options.
	Formats    []string `json:"formats,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	ShowGrid   bool     `json:"show_grid,omitempty"`
	ShowSwings bool     `json:"show_swings,omitempty"`
	ShowLabels bool     `json:"show_labels,omitempty"`

	// Refresh bypasses the cache for reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetEngineDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading a plan.
func (o *Options) ValidateForLoad() error {
	if o.PlanPath == "" && len(o.PlanJSON) == 0 {
		return fmt.Errorf("plan_path or plan_json is required")
	}
	if o.PlanPath != "" && len(o.PlanJSON) != 0 {
		return fmt.Errorf("plan_path and plan_json are mutually exclusive")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetEngineDefaults applies the engine parameter defaults.
func (o *Options) SetEngineDefaults() {
	if o.GridSize <= 0 {
		o.GridSize = DefaultGridSize
	}
	if o.SnapThreshold <= 0 {
		o.SnapThreshold = DefaultSnapThreshold
	}
	if o.SearchStep <= 0 {
		o.SearchStep = DefaultSearchStep
	}
	if o.SearchRadius <= 0 {
		o.SearchRadius = DefaultSearchRadius
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// SearchOptions returns the collide search options these pipeline
// options describe.
func (o *Options) SearchOptions() collide.SearchOptions {
	return collide.SearchOptions{
		Step:      o.SearchStep,
		MaxRadius: o.SearchRadius,
		Grid:      o.GridSize,
	}
}

// ReportKeyOpts returns cache key options for the inspect stage.
func (o *Options) ReportKeyOpts() cache.ReportKeyOpts {
	return cache.ReportKeyOpts{
		GridSize:      o.GridSize,
		SnapThreshold: o.SnapThreshold,
		SearchStep:    o.SearchStep,
		SearchRadius:  o.SearchRadius,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered artifact.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Scale:      o.Scale,
		ShowGrid:   o.ShowGrid,
		ShowSwings: o.ShowSwings,
		ShowLabels: o.ShowLabels,
	}
}

// RenderOptions returns the plan-view render options.
func (o *Options) RenderOptions() planview.Options {
	return planview.Options{
		Scale:      o.Scale,
		ShowGrid:   o.ShowGrid,
		ShowSwings: o.ShowSwings,
		ShowLabels: o.ShowLabels,
	}
}

// =============================================================================
// Report - Inspect Stage Output
// =============================================================================

// FurnitureVerdict is the placement verdict for one furniture item,
// plus the nearest valid position when the current one is invalid and
// the search found an alternative.
type FurnitureVerdict struct {
	RoomID      string              `json:"room_id"`
	RoomName    string              `json:"room_name,omitempty"`
	FurnitureID string              `json:"furniture_id"`
	Name        string              `json:"name,omitempty"`
	OK          bool                `json:"ok"`
	Violations  []collide.Violation `json:"violations,omitempty"`
	Suggestion  *geo.Point          `json:"suggestion,omitempty"`
}

// DoorStatus reports whether a door's geometry resolves on its wall.
type DoorStatus struct {
	RoomID   string         `json:"room_id"`
	DoorID   string         `json:"door_id"`
	Wall     int            `json:"wall"`
	OK       bool           `json:"ok"`
	Geometry *door.Geometry `json:"geometry,omitempty"`
}

// Report is the complete inspection result for one plan snapshot. It
// derives deterministically from the plan and the engine parameters,
// which is what makes it safely cacheable.
type Report struct {
	PlanID      string             `json:"plan_id"`
	PlanName    string             `json:"plan_name,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
	Furniture   []FurnitureVerdict `json:"furniture,omitempty"`
	Doors       []DoorStatus       `json:"doors,omitempty"`

	// Unreachable lists rooms with no door path to the exterior.
	Unreachable []string `json:"unreachable,omitempty"`
}

// ViolationCount returns the total number of placement violations.
func (r *Report) ViolationCount() int {
	n := 0
	for _, v := range r.Furniture {
		n += len(v.Violations)
	}
	return n
}

// OK reports whether the plan passed every check: no placement
// violations, no broken doors, and every room reachable.
func (r *Report) OK() bool {
	if r.ViolationCount() > 0 || len(r.Unreachable) > 0 {
		return false
	}
	for _, d := range r.Doors {
		if !d.OK {
			return false
		}
	}
	return true
}

// MarshalReport serializes a report for caching and API responses.
func MarshalReport(r *Report) ([]byte, error) {
	return json.Marshal(r)
}

// UnmarshalReport deserializes a cached report.
func UnmarshalReport(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// =============================================================================
// Result - Pipeline Output
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Plan is the loaded document.
	Plan *plan.Plan

	// PlanHash is the content hash of the serialized plan.
	PlanHash string

	// Report is the inspection report.
	Report *Report

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RoomCount      int
	FurnitureCount int
	DoorCount      int
	LoadTime       time.Duration
	InspectTime    time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ReportHit bool // Whether the inspection report came from cache
	RenderHit bool // Whether all artifacts came from cache
}
