package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/abatilo/taskboard/internal/output"
	"github.com/abatilo/taskboard/internal/task"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Padding(0, 1)
	formStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
)

// View renders the current mode.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeLoading:
		return fmt.Sprintf("\n  %s Loading board...\n", m.spinner.View())
	case modeAdd:
		return m.viewForm()
	case modeDetail:
		return m.viewDetail()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Foreground(lipgloss.Color(m.theme.Accent)).Render("Kanban Task Board"))
	b.WriteString("\n")
	b.WriteString(m.viewBoard())
	b.WriteString("\n")

	if m.mode == modeConfirmDelete {
		if t, ok := m.selected(); ok {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Delete %q? (y/N)", t.Title)))
			b.WriteString("\n")
		}
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) viewBoard() string {
	width := output.ColumnWidth
	if m.width > 0 {
		if w := m.width / len(task.Statuses); w < width && w >= 20 {
			width = w
		}
	}

	cols := make([]string, 0, len(task.Statuses))
	for i, st := range task.Statuses {
		selected := -1
		if i == m.col {
			selected = m.rows[i]
		}
		cols = append(cols, output.RenderColumn(st, m.board.Column(st), output.ColumnOptions{
			Width:    width,
			Color:    m.theme.ColorFor(st),
			Accent:   m.theme.Accent,
			Selected: selected,
			Focused:  i == m.col,
		}))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) viewForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Create New Task"))
	b.WriteString("\n\n")
	b.WriteString("Task Title\n")
	b.WriteString(m.title.View())
	b.WriteString("\n\n")
	b.WriteString("Description (Optional)\n")
	b.WriteString(m.desc.View())
	if m.formErr != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.formErr))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.formKeys))
	return formStyle.Render(b.String())
}

func (m Model) viewDetail() string {
	t, ok := m.selected()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Foreground(lipgloss.Color(m.theme.ColorFor(t.Status))).Render(t.Title))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("%s  created %s  %s",
		t.Status.Title(), t.CreatedAt.Format("2006-01-02 15:04"), t.ID)))
	b.WriteString("\n")
	b.WriteString(m.detailBody)
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("esc back"))
	return b.String()
}

// renderMarkdown renders a description with glamour, falling back to the
// raw text when the renderer fails.
func (m Model) renderMarkdown(description string) string {
	if strings.TrimSpace(description) == "" {
		return statusStyle.Render(output.EmptyDescription)
	}
	wrap := 80
	if m.width > 0 && m.width < wrap {
		wrap = m.width
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.markdown),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return description
	}
	out, err := r.Render(description)
	if err != nil {
		return description
	}
	return out
}
