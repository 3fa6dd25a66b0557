package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planwright/planwright/pkg/plan"
	"github.com/planwright/planwright/pkg/render/adjacency"
	"github.com/planwright/planwright/pkg/roomgraph"
)

// graphCommand creates the graph command for room connectivity output.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "graph [plan.json]",
		Short: "Emit the room adjacency graph",
		Long: `Emit the room adjacency graph.

Rooms are nodes and every resolvable door is an edge; doors on an
exterior wall connect to a synthetic exterior node. The default output
is Graphviz DOT on stdout; svg, png, and pdf lay the graph out with
neato and write it to a file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0], format, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot (default), svg, png, pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout for dot, <input>.<format> otherwise)")

	return cmd
}

// runGraph builds the adjacency graph and writes it in the requested format.
func (c *CLI) runGraph(ctx context.Context, input, format, output string) error {
	p, err := plan.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load plan %s: %w", input, err)
	}
	if err := p.Validate(); err != nil {
		return err
	}

	g := roomgraph.Build(p)
	dot := adjacency.ToDOT(g)

	if format == "dot" && output == "" {
		fmt.Print(dot)
		return nil
	}

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = adjacency.RenderSVG(dot)
	case "png":
		data, err = adjacency.RenderPNG(dot, 2.0)
	case "pdf":
		data, err = adjacency.RenderPDF(dot)
	default:
		return fmt.Errorf("invalid format: %q (must be 'dot', 'svg', 'png', or 'pdf')", format)
	}
	if err != nil {
		return fmt.Errorf("render graph: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	path := output
	if path == "" {
		path = basePath("", input) + "." + format
	}
	if err := writeArtifact(path, data); err != nil {
		return err
	}

	printSuccess("Graph complete")
	printFile(path)
	printDetail("%d rooms, %d connections", len(g.Nodes()), len(g.Edges()))
	return nil
}
