package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abatilo/taskboard/internal/task"
)

const (
	// ColumnWidth is the default inner width of a board column.
	ColumnWidth = 34

	timeLayout = "15:04:05"
)

// ColumnOptions controls how a single column is drawn.
type ColumnOptions struct {
	Width    int
	Color    string
	Accent   string
	Selected int  // index of the highlighted card, -1 for none
	Focused  bool // column has keyboard focus
}

// RenderColumn draws a status column: a coloured header with the task count,
// then one card per task, or a placeholder when the column is empty.
func RenderColumn(status task.Status, tasks []task.Task, opts ColumnOptions) string {
	width := opts.Width
	if width <= 0 {
		width = ColumnWidth
	}
	inner := width - 2

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color(opts.Color)).
		Width(inner).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("%s (%d)", status.Title(), len(tasks)))

	parts := []string{header, ""}
	if len(tasks) == 0 {
		parts = append(parts, lipgloss.NewStyle().
			Faint(true).
			Width(inner-2).
			Align(lipgloss.Center).
			Border(lipgloss.NormalBorder()).
			Render(EmptyColumn))
	}
	for i, t := range tasks {
		parts = append(parts, RenderCard(t, inner, i == opts.Selected, opts.Accent))
	}

	borderColor := lipgloss.Color("240")
	if opts.Focused {
		borderColor = lipgloss.Color(opts.Color)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// RenderCard draws one task card of the given outer width.
func RenderCard(t task.Task, width int, selected bool, accent string) string {
	description := t.Description
	if description == "" {
		description = EmptyDescription
	}

	body := strings.Join([]string{
		lipgloss.NewStyle().Bold(true).Render(t.Title),
		lipgloss.NewStyle().Faint(true).Render(description),
		lipgloss.NewStyle().Faint(true).Render(
			fmt.Sprintf("Created: %s  %s", t.CreatedAt.Format(timeLayout), task.ShortID(t.ID))),
	}, "\n")

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("245")).
		Padding(0, 1).
		Width(width - 2)
	if selected {
		style = style.Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color(accent))
	}
	return style.Render(body)
}
