package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/planwright/planwright/pkg/geo"
	"github.com/planwright/planwright/pkg/pipeline"
	"github.com/planwright/planwright/pkg/plan"
	"github.com/planwright/planwright/pkg/render/planview"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// tuiCommand creates the tui command for interactive plan browsing.
func (c *CLI) tuiCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui [plan.json]",
		Short: "Browse a plan interactively",
		Long: `Browse a plan interactively.

The browser lists every room with its area, contents, and inspection
status. Selecting a room shows its furniture verdicts and door
geometry. The report is computed once at startup; re-run after editing
the plan file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(cmd.Context(), args[0])
		},
	}
	return cmd
}

// runTUI loads and inspects the plan, then runs the browser.
func (c *CLI) runTUI(ctx context.Context, input string) error {
	p, err := plan.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load plan %s: %w", input, err)
	}
	if err := p.Validate(); err != nil {
		return err
	}

	opts := c.pipelineOptions()
	report := pipeline.Inspect(ctx, p, opts)

	model := NewPlanModel(p, report)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// PlanModel - Interactive room browser
// =============================================================================

// PlanModel is the bubbletea model for browsing a plan's rooms.
type PlanModel struct {
	Plan   *plan.Plan
	Report *pipeline.Report

	Cursor int
	Detail bool
	Height int
	Offset int
}

// NewPlanModel creates a new plan browser model.
func NewPlanModel(p *plan.Plan, report *pipeline.Report) PlanModel {
	return PlanModel{
		Plan:   p,
		Report: report,
		Height: 15,
	}
}

func (m PlanModel) Init() tea.Cmd {
	return nil
}

func (m PlanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Detail {
				m.Detail = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if !m.Detail && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if !m.Detail && m.Cursor < len(m.Plan.Rooms)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Plan.Rooms) > 0 {
				m.Detail = true
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PlanModel) View() string {
	if m.Detail {
		return m.detailView()
	}
	return m.listView()
}

// listView renders the room table.
func (m PlanModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Plan.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ detail  q quit"))
	b.WriteString("\n\n")

	if len(m.Plan.Rooms) == 0 {
		b.WriteString(listDimStyle.Render("  plan has no rooms"))
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.Plan.Rooms) {
		end = len(m.Plan.Rooms)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := &m.Plan.Rooms[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		status := iconSuccess
		if !m.roomOK(r.ID) {
			status = iconError
		}

		area := fmt.Sprintf("%.0f sq ft", r.Area()/144)
		rows = append(rows, []string{
			cursor, r.Name, area,
			fmt.Sprintf("%d", len(r.Furniture)),
			fmt.Sprintf("%d", len(r.Doors)),
			status,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Room", "Area", "Furniture", "Doors", "OK").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx >= len(m.Plan.Rooms) {
				return lipgloss.NewStyle()
			}
			ok := m.roomOK(m.Plan.Rooms[actualIdx].ID)
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if isCurrent {
				base = base.Bold(true)
			}
			if col == 5 {
				if ok {
					return base.Foreground(colorGreen)
				}
				return base.Foreground(colorRed)
			}
			if isCurrent {
				return base.Foreground(colorCyan)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Plan.Rooms))))

	return b.String()
}

// detailView renders the selected room's furniture and doors.
func (m PlanModel) detailView() string {
	r := &m.Plan.Rooms[m.Cursor]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(r.Name))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%.0f sq ft", r.Area()/144)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	if len(r.Furniture) == 0 {
		b.WriteString(listDimStyle.Render("  no furniture") + "\n")
	}
	for _, fv := range m.Report.Furniture {
		if fv.RoomID != r.ID {
			continue
		}
		pos := position(r, fv.FurnitureID)
		line := fmt.Sprintf("  %s at (%.1f, %.1f)", fv.Name, pos.X, pos.Y)
		if fv.OK {
			b.WriteString(StyleSuccess.Render(iconSuccess) + line)
		} else {
			b.WriteString(StyleError.Render(iconError) + line)
			if fv.Suggestion != nil {
				b.WriteString(listDimStyle.Render(fmt.Sprintf("  → try (%.1f, %.1f)", fv.Suggestion.X, fv.Suggestion.Y)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if len(r.Doors) == 0 {
		b.WriteString(listDimStyle.Render("  no doors") + "\n")
	}
	for _, ds := range m.Report.Doors {
		if ds.RoomID != r.ID {
			continue
		}
		d := doorByID(r, ds.DoorID)
		width := ""
		if d != nil {
			width = planview.FormatLength(d.Width)
		}
		line := fmt.Sprintf("  %s door on wall %d", width, ds.Wall)
		if ds.OK {
			b.WriteString(StyleSuccess.Render(iconSuccess) + line)
		} else {
			b.WriteString(StyleError.Render(iconError) + line + StyleError.Render("  (wall does not exist)"))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// roomOK reports whether every check in the room passed.
func (m PlanModel) roomOK(roomID string) bool {
	for _, fv := range m.Report.Furniture {
		if fv.RoomID == roomID && !fv.OK {
			return false
		}
	}
	for _, ds := range m.Report.Doors {
		if ds.RoomID == roomID && !ds.OK {
			return false
		}
	}
	for _, id := range m.Report.Unreachable {
		if id == roomID {
			return false
		}
	}
	return true
}

// =============================================================================
// Helpers
// =============================================================================

func position(r *plan.Room, furnitureID string) geo.Point {
	if f := r.FurnitureByID(furnitureID); f != nil {
		return f.Position
	}
	return geo.Point{}
}

func doorByID(r *plan.Room, id string) *plan.Door {
	for i := range r.Doors {
		if r.Doors[i].ID == id {
			return &r.Doors[i]
		}
	}
	return nil
}
