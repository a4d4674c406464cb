package task

import (
	"strings"
	"time"

	boarderrors "github.com/abatilo/taskboard/internal/errors"
)

// MinTitleLength is the shortest title accepted after trimming.
const MinTitleLength = 3

// Status represents the column a task lives in.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Statuses lists every status in column order.
//
//nolint:gochecknoglobals // Fixed column order shared by all renderers
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// Title returns the column heading for a status.
func (s Status) Title() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// Order returns the column index of a status (-1 if unknown).
func (s Status) Order() int {
	for i, st := range Statuses {
		if st == s {
			return i
		}
	}
	return -1
}

// Task represents a card on the board.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      Status
	CreatedAt   time.Time
}

// IsValidStatus checks if a status string is valid.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// ParseStatus accepts a canonical status or a friendly alias, case-insensitive.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("_", "-", " ", "-").Replace(normalized)
	switch normalized {
	case "todo", "to-do":
		return StatusTodo, nil
	case "in-progress", "inprogress", "progress", "doing":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	default:
		return "", boarderrors.InvalidStatusError{Value: s}
	}
}

// ValidateInput trims a title and description and enforces the title length rule.
func ValidateInput(title, description string) (string, string, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if len([]rune(title)) < MinTitleLength {
		return "", "", boarderrors.TitleTooShortError{Min: MinTitleLength}
	}
	return title, description, nil
}
