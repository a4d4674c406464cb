package board

import (
	"time"

	"github.com/abatilo/taskboard/internal/task"
)

// Seed returns the starter board shown when nothing is stored yet.
func Seed(now time.Time) State {
	s := NewState()
	s[task.StatusTodo] = []task.Task{{
		ID:          "1",
		Title:       "Refine Commit Plan",
		Description: "Ensure history looks professional.",
		Status:      task.StatusTodo,
		CreatedAt:   now.Add(-time.Hour),
	}}
	s[task.StatusInProgress] = []task.Task{{
		ID:          "2",
		Title:       "Review TypeScript Types",
		Description: "Confirm strong typing across all interfaces.",
		Status:      task.StatusInProgress,
		CreatedAt:   now.Add(-30 * time.Minute),
	}}
	s[task.StatusDone] = []task.Task{{
		ID:          "3",
		Title:       "Vite Project Initialization",
		Description: "Base setup completed successfully.",
		Status:      task.StatusDone,
		CreatedAt:   now.Add(-2 * time.Hour),
	}}
	return s
}
