package board

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/abatilo/taskboard/internal/task"
)

// State maps each status to its tasks, newest first.
type State map[task.Status][]task.Task

// NewState returns a state with every column present and empty.
func NewState() State {
	s := make(State, len(task.Statuses))
	for _, st := range task.Statuses {
		s[st] = []task.Task{}
	}
	return s
}

// Clone returns a deep copy with every column present.
func (s State) Clone() State {
	out := NewState()
	for _, st := range task.Statuses {
		out[st] = append(out[st], s[st]...)
	}
	return out
}

// Len returns the number of tasks across all columns.
func (s State) Len() int {
	n := 0
	for _, st := range task.Statuses {
		n += len(s[st])
	}
	return n
}

// locate returns the column and index holding id, or ok=false.
func (s State) locate(id string) (task.Status, int, bool) {
	for _, st := range task.Statuses {
		for i, t := range s[st] {
			if t.ID == id {
				return st, i, true
			}
		}
	}
	return "", -1, false
}

// wireTask is the stored JSON shape of a task; createdAt is Unix milliseconds.
type wireTask struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      task.Status `json:"status"`
	CreatedAt   int64       `json:"createdAt"`
}

// Encode serializes the state to the stored JSON document.
func Encode(s State) ([]byte, error) {
	doc := make(map[task.Status][]wireTask, len(task.Statuses))
	for _, st := range task.Statuses {
		col := make([]wireTask, 0, len(s[st]))
		for _, t := range s[st] {
			col = append(col, wireTask{
				ID:          t.ID,
				Title:       t.Title,
				Description: t.Description,
				Status:      st,
				CreatedAt:   t.CreatedAt.UnixMilli(),
			})
		}
		doc[st] = col
	}
	return json.Marshal(doc)
}

// Decode parses a stored JSON document and repairs it so the board invariants hold:
// unknown columns are dropped, missing columns are added, each task's status is
// set to the column holding it, and a task id seen twice keeps its first position.
func Decode(data []byte, logger *slog.Logger) (State, error) {
	var doc map[task.Status][]wireTask
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	for st := range doc {
		if !task.IsValidStatus(st) {
			logger.Warn("dropping unknown column from stored board", "column", st, "tasks", len(doc[st]))
		}
	}

	s := NewState()
	seen := make(map[string]bool)
	for _, st := range task.Statuses {
		for _, w := range doc[st] {
			if w.ID == "" || seen[w.ID] {
				logger.Warn("dropping task with empty or duplicate id", "id", w.ID, "column", st)
				continue
			}
			seen[w.ID] = true
			s[st] = append(s[st], task.Task{
				ID:          w.ID,
				Title:       w.Title,
				Description: w.Description,
				Status:      st,
				CreatedAt:   time.UnixMilli(w.CreatedAt),
			})
		}
	}
	return s, nil
}
