package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planwright/planwright/pkg/door"
	"github.com/planwright/planwright/pkg/plan"
	"github.com/planwright/planwright/pkg/render/planview"
)

// doorsCommand creates the doors debug command. It dumps the derived
// geometry of every door so wall indexing and swing problems can be
// inspected without rendering.
func (c *CLI) doorsCommand() *cobra.Command {
	var roomFilter string

	cmd := &cobra.Command{
		Use:   "doors [plan.json]",
		Short: "Dump derived door geometry (debug tool)",
		Long: `Dump derived door geometry (debug tool).

For every door the command prints the resolved wall segment, the leaf
endpoints, the hinge and swing arc, and the SVG sweep direction. Doors
whose wall index no longer resolves are flagged instead of dropped,
which makes this the quickest way to find dangling wall references.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDoors(args[0], roomFilter)
		},
	}

	cmd.Flags().StringVar(&roomFilter, "room", "", "only show doors of this room (ID or name)")

	return cmd
}

// runDoors loads the plan and prints geometry for every matching door.
func (c *CLI) runDoors(input, roomFilter string) error {
	p, err := plan.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load plan %s: %w", input, err)
	}
	if err := p.Validate(); err != nil {
		return err
	}

	shown := 0
	for i := range p.Rooms {
		room := &p.Rooms[i]
		if roomFilter != "" && room.ID != roomFilter && room.Name != roomFilter {
			continue
		}
		if len(room.Doors) == 0 {
			continue
		}

		fmt.Println(StyleTitle.Render(room.Name))
		for _, d := range room.Doors {
			shown++
			printDoor(room, d)
		}
		printNewline()
	}

	if shown == 0 {
		if roomFilter != "" {
			printInfo("no doors matching room %q", roomFilter)
		} else {
			printInfo("plan has no doors")
		}
	}
	return nil
}

// printDoor prints one door's derived geometry as key-value lines.
func printDoor(room *plan.Room, d plan.Door) {
	g, ok := door.ComputeForRoom(room, d)
	if !ok {
		printError("door %s: wall %d does not resolve", d.ID, d.Wall)
		return
	}

	printSuccess("door %s", d.ID)
	printKeyValue("wall", fmt.Sprintf("%d", d.Wall))
	printKeyValue("width", planview.FormatLength(d.Width))
	printKeyValue("center", fmt.Sprintf("%.3f of wall length", d.Position))
	printKeyValue("opening", fmt.Sprintf("(%.1f, %.1f) → (%.1f, %.1f)", g.Start.X, g.Start.Y, g.End.X, g.End.Y))
	printKeyValue("hinge", fmt.Sprintf("%s at (%.1f, %.1f)", d.Hinge, g.Hinge.X, g.Hinge.Y))
	printKeyValue("swing", fmt.Sprintf("%s to (%.1f, %.1f)", d.Swing, g.SwingEnd.X, g.SwingEnd.Y))
	printKeyValue("sweep", fmt.Sprintf("%d", g.Sweep))
}
