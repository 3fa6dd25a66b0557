package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/planwright/planwright/pkg/cache"
	"github.com/planwright/planwright/pkg/collide"
	"github.com/planwright/planwright/pkg/door"
	"github.com/planwright/planwright/pkg/observability"
	"github.com/planwright/planwright/pkg/plan"
	"github.com/planwright/planwright/pkg/render"
	"github.com/planwright/planwright/pkg/render/adjacency"
	"github.com/planwright/planwright/pkg/render/planview"
	"github.com/planwright/planwright/pkg/roomgraph"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → inspect → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	p, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Plan = p
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.RoomCount = len(p.Rooms)
	for i := range p.Rooms {
		result.Stats.FurnitureCount += len(p.Rooms[i].Furniture)
		result.Stats.DoorCount += len(p.Rooms[i].Doors)
	}

	// Content hash keys every downstream stage.
	if data, err := plan.Marshal(p); err == nil {
		result.PlanHash = cache.Hash(data)
	}

	r.Logger.Info("loaded plan",
		"rooms", result.Stats.RoomCount,
		"furniture", result.Stats.FurnitureCount,
		"doors", result.Stats.DoorCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Inspect
	inspectStart := time.Now()
	report, reportHit, err := r.InspectWithCacheInfo(ctx, p, result.PlanHash, opts)
	if err != nil {
		return nil, fmt.Errorf("inspect: %w", err)
	}
	result.Report = report
	result.Stats.InspectTime = time.Since(inspectStart)
	result.CacheInfo.ReportHit = reportHit

	r.Logger.Info("inspected plan",
		"violations", report.ViolationCount(),
		"unreachable", len(report.Unreachable),
		"duration", result.Stats.InspectTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, p, report, result.PlanHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the plan from the configured source and validates it.
func (r *Runner) Load(ctx context.Context, opts Options) (*plan.Plan, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	source := opts.PlanPath
	if source == "" {
		source = "inline"
	}
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, source)

	var p *plan.Plan
	var err error
	if opts.PlanPath != "" {
		p, err = plan.ReadFile(opts.PlanPath)
	} else {
		p, err = plan.Decode(bytes.NewReader(opts.PlanJSON))
	}
	if err == nil {
		err = p.Validate()
	}

	rooms := 0
	if p != nil {
		rooms = len(p.Rooms)
	}
	observability.Pipeline().OnLoadComplete(ctx, source, rooms, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// InspectWithCacheInfo runs the inspect stage with caching and returns
// cache hit info. planHash keys the cache entry; pass the hash of the
// exact plan being inspected.
func (r *Runner) InspectWithCacheInfo(ctx context.Context, p *plan.Plan, planHash string, opts Options) (*Report, bool, error) {
	opts.SetEngineDefaults()
	cacheKey := r.Keyer.ReportKey(planHash, opts.ReportKeyOpts())

	if !opts.Refresh && planHash != "" {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := UnmarshalReport(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "report")
				return cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "report")
	}

	report := Inspect(ctx, p, opts)

	if planHash != "" {
		if data, err := MarshalReport(report); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLReport)
			observability.Cache().OnCacheSet(ctx, "report", len(data))
		}
	}
	return report, false, nil
}

// Inspect runs every check on the plan: placement validity and a
// nearest-valid suggestion per furniture item, geometry resolution per
// door, and exterior reachability per room.
func Inspect(ctx context.Context, p *plan.Plan, opts Options) *Report {
	opts.SetEngineDefaults()
	start := time.Now()
	observability.Pipeline().OnInspectStart(ctx, p.ID)

	report := &Report{
		PlanID:      p.ID,
		PlanName:    p.Name,
		GeneratedAt: time.Now().UTC(),
	}

	for i := range p.Rooms {
		room := &p.Rooms[i]
		for _, f := range room.Furniture {
			checkStart := time.Now()
			verdict := collide.Check(f, room, room.Others(f.ID), collide.Options{})
			observability.Engine().OnCheck(ctx, room.ID, verdict.OK, time.Since(checkStart))

			fv := FurnitureVerdict{
				RoomID:      room.ID,
				RoomName:    room.Name,
				FurnitureID: f.ID,
				Name:        f.Name,
				OK:          verdict.OK,
				Violations:  verdict.Violations,
			}
			if !verdict.OK {
				if pos, ok := collide.NearestValid(f, room, room.Others(f.ID), opts.SearchOptions()); ok {
					fv.Suggestion = &pos
				}
			}
			report.Furniture = append(report.Furniture, fv)
		}

		for _, d := range room.Doors {
			ds := DoorStatus{RoomID: room.ID, DoorID: d.ID, Wall: d.Wall}
			if g, ok := door.ComputeForRoom(room, d); ok {
				ds.OK = true
				ds.Geometry = &g
			}
			report.Doors = append(report.Doors, ds)
		}
	}

	report.Unreachable = roomgraph.Build(p).Unreachable()

	observability.Pipeline().OnInspectComplete(ctx, p.ID, report.ViolationCount(), time.Since(start), nil)
	return report
}

// RenderWithCacheInfo generates artifacts with caching and returns
// cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p *plan.Plan, report *Report, planHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache.
	allCached := true
	artifacts := make(map[string][]byte)
	if !opts.Refresh && planHash != "" {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	rendered, err := renderFormats(p, report, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if planHash != "" {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// renderFormats produces every requested artifact. The SVG is rendered
// once and reused for the raster conversions.
func renderFormats(p *plan.Plan, report *Report, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)

	var svg []byte
	needSVG := func() []byte {
		if svg == nil {
			svg = planview.Render(p, opts.RenderOptions())
		}
		return svg
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = needSVG()
		case FormatPNG:
			data, err := render.ToPNG(needSVG(), DefaultRasterScale)
			if err != nil {
				return nil, fmt.Errorf("png: %w", err)
			}
			artifacts[format] = data
		case FormatPDF:
			data, err := render.ToPDF(needSVG())
			if err != nil {
				return nil, fmt.Errorf("pdf: %w", err)
			}
			artifacts[format] = data
		case FormatDOT:
			artifacts[format] = []byte(adjacency.ToDOT(roomgraph.Build(p)))
		case FormatJSON:
			data, err := MarshalReport(report)
			if err != nil {
				return nil, fmt.Errorf("json: %w", err)
			}
			artifacts[format] = data
		}
	}
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
