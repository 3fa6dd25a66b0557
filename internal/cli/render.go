package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planwright/planwright/pkg/pipeline"
)

// renderCommand creates the render command for drawing plans.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := c.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "render [plan.json]",
		Short: "Render a floor plan to SVG, PNG, or PDF",
		Long: `Render a floor plan to SVG, PNG, or PDF.

The render command runs the full pipeline: it loads and validates the
plan, inspects it, and draws the plan view with room outlines, placed
furniture, door openings with swing arcs, and dimension labels. The
"dot" format emits the room adjacency graph instead, and "json" the
inspection report.

Artifacts are cached locally keyed on the plan content and render
options, so unchanged plans render instantly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			c.applyConfig(cmd, &opts)
			opts.Logger = c.Logger
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache and recompute")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "render scale in pixels per inch")
	cmd.Flags().BoolVar(&opts.ShowGrid, "show-grid", opts.ShowGrid, "draw the background grid")
	cmd.Flags().BoolVar(&opts.ShowSwings, "swings", opts.ShowSwings, "draw door swing arcs")
	cmd.Flags().BoolVar(&opts.ShowLabels, "labels", opts.ShowLabels, "draw room names and dimensions")

	return cmd
}

// runRender executes the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	opts.PlanPath = input

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering plan...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if !result.Report.OK() {
		printWarning("plan has %d violation(s); run 'planwright validate %s' for details", result.Report.ViolationCount(), input)
	}

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		path := artifactPath(output, input, format, len(opts.Formats))
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(result.Stats.RoomCount, result.Stats.FurnitureCount, result.Stats.DoorCount, result.CacheInfo.RenderHit)

	return nil
}

// artifactPath derives the output file path for one format. With a
// single format the output flag is used verbatim; with several, each
// format gets its own extension on the shared base.
func artifactPath(output, input, format string, formatCount int) string {
	if output != "" && formatCount == 1 {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath derives the base output path from the output and input file
// paths, stripping any known format extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifact writes one artifact, creating parent directories.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
