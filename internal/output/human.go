package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abatilo/taskboard/internal/board"
	"github.com/abatilo/taskboard/internal/config"
	"github.com/abatilo/taskboard/internal/task"
)

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct {
	theme config.Theme
}

// NewHumanFormatter creates a new HumanFormatter.
func NewHumanFormatter(theme config.Theme) *HumanFormatter {
	return &HumanFormatter{theme: theme}
}

// FormatBoard renders the three columns side by side.
func (f *HumanFormatter) FormatBoard(s board.State) string {
	cols := make([]string, 0, len(task.Statuses))
	for _, st := range task.Statuses {
		cols = append(cols, RenderColumn(st, s[st], ColumnOptions{
			Width:    ColumnWidth,
			Color:    f.theme.ColorFor(st),
			Accent:   f.theme.Accent,
			Selected: -1,
		}))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...) + "\n"
}

// FormatTask formats a single task for display.
func (f *HumanFormatter) FormatTask(t task.Task) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[%s] %s\n", task.ShortID(t.ID), t.Title)
	fmt.Fprintf(&sb, "  Status:  %s\n", t.Status.Title())
	fmt.Fprintf(&sb, "  Created: %s\n", t.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&sb, "  ID:      %s\n", t.ID)

	sb.WriteString("\n")
	if t.Description != "" {
		sb.WriteString(t.Description)
	} else {
		sb.WriteString(EmptyDescription)
	}
	sb.WriteString("\n")

	return sb.String()
}

// FormatTaskList formats a list of tasks for display.
func (f *HumanFormatter) FormatTaskList(tasks []task.Task) string {
	if len(tasks) == 0 {
		return "No tasks found.\n"
	}

	var sb strings.Builder
	for _, t := range tasks {
		fmt.Fprintf(&sb, "%s [%s] %s\n", f.statusIcon(t.Status), task.ShortID(t.ID), t.Title)
	}
	return sb.String()
}

func (f *HumanFormatter) statusIcon(s task.Status) string {
	switch s {
	case task.StatusTodo:
		return "[ ]"
	case task.StatusInProgress:
		return "[*]"
	case task.StatusDone:
		return "[X]"
	default:
		return "[?]"
	}
}

// FormatError formats an error for display.
func (f *HumanFormatter) FormatError(err error) string {
	return fmt.Sprintf("Error: %s\n", err.Error())
}

// FormatMessage formats a simple message.
func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}
