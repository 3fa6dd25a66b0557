package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planwright/planwright/pkg/cache"
	"github.com/planwright/planwright/pkg/collide"
	"github.com/planwright/planwright/pkg/pipeline"
	"github.com/planwright/planwright/pkg/plan"
)

// validateCommand creates the validate command for inspecting a plan.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		noCache bool
		asJSON  bool
	)
	opts := c.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "validate [plan.json]",
		Short: "Check furniture placement, doors, and connectivity",
		Long: `Check furniture placement, doors, and connectivity.

The validate command loads a plan file and runs every engine check:
boundary containment, pairwise overlap, and door swing clearance for
each furniture item, geometry resolution for each door, and exterior
reachability for each room. Invalid placements come with the nearest
valid position when one exists within the search radius.

Reports are cached locally keyed on the plan content; edit the plan or
pass --refresh to recompute. The command exits non-zero when any check
fails, so it can gate CI.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			opts.Logger = c.Logger
			return c.runValidate(cmd.Context(), args[0], opts, noCache, asJSON)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache and recompute")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write the report as JSON to stdout")

	cmd.Flags().Float64Var(&opts.GridSize, "grid", opts.GridSize, "placement grid in inches")
	cmd.Flags().Float64Var(&opts.SearchStep, "search-step", opts.SearchStep, "ring spacing of the nearest-valid search")
	cmd.Flags().Float64Var(&opts.SearchRadius, "search-radius", opts.SearchRadius, "maximum nearest-valid search radius")

	return cmd
}

// runValidate loads the plan, inspects it, and prints the verdicts.
func (c *CLI) runValidate(ctx context.Context, input string, opts pipeline.Options, noCache, asJSON bool) error {
	opts.PlanPath = input

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	p, err := runner.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load plan %s: %w", input, err)
	}

	hash := ""
	if data, err := plan.Marshal(p); err == nil {
		hash = cache.Hash(data)
	}

	spinner := newSpinnerWithContext(ctx, "Inspecting plan...")
	spinner.Start()
	report, cacheHit, err := runner.InspectWithCacheInfo(ctx, p, hash, opts)
	if err != nil {
		spinner.StopWithError("Inspection failed")
		return fmt.Errorf("inspect: %w", err)
	}
	spinner.Stop()

	if asJSON {
		data, err := pipeline.MarshalReport(report)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
	} else {
		printReport(p, report, cacheHit)
	}

	if !report.OK() {
		return fmt.Errorf("plan has %d violation(s)", report.ViolationCount()+brokenDoors(report)+len(report.Unreachable))
	}
	return nil
}

// printReport renders the inspection report as styled terminal output.
func printReport(p *plan.Plan, report *pipeline.Report, cacheHit bool) {
	fmt.Println(StyleTitle.Render(p.Name))
	printNewline()

	for _, fv := range report.Furniture {
		label := fmt.Sprintf("%s in %s", fv.Name, fv.RoomName)
		if fv.OK {
			printSuccess("%s", label)
			continue
		}
		printError("%s %s", label, StyleError.Render(describeViolations(fv.Violations)))
		if fv.Suggestion != nil {
			printDetail("nearest valid position: (%.1f, %.1f)", fv.Suggestion.X, fv.Suggestion.Y)
		} else {
			printDetail("no valid position within search radius")
		}
	}

	for _, ds := range report.Doors {
		room := p.Room(ds.RoomID)
		roomName := ds.RoomID
		if room != nil {
			roomName = room.Name
		}
		if ds.OK {
			printSuccess("door on wall %d of %s", ds.Wall, roomName)
		} else {
			printError("door on wall %d of %s %s", ds.Wall, roomName, StyleError.Render("(wall does not exist)"))
		}
	}

	for _, id := range report.Unreachable {
		room := p.Room(id)
		name := id
		if room != nil {
			name = room.Name
		}
		printWarning("%s has no door path to the exterior", name)
	}

	printNewline()
	furniture, doors := 0, 0
	for i := range p.Rooms {
		furniture += len(p.Rooms[i].Furniture)
		doors += len(p.Rooms[i].Doors)
	}
	printStats(len(p.Rooms), furniture, doors, cacheHit)
}

// describeViolations formats a violation list as a parenthesized summary.
func describeViolations(violations []collide.Violation) string {
	parts := make([]string, 0, len(violations))
	for _, v := range violations {
		switch v.Kind {
		case collide.KindOutOfBounds:
			parts = append(parts, "out of bounds")
		case collide.KindOverlap:
			parts = append(parts, "overlaps "+v.EntityID)
		case collide.KindDoorSwing:
			parts = append(parts, fmt.Sprintf("blocks door on wall %d", v.Wall))
		default:
			parts = append(parts, string(v.Kind))
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// brokenDoors counts doors whose geometry did not resolve.
func brokenDoors(report *pipeline.Report) int {
	n := 0
	for _, d := range report.Doors {
		if !d.OK {
			n++
		}
	}
	return n
}
