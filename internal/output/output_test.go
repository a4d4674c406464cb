//nolint:testpackage // Tests require internal access for thorough testing
package output

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abatilo/taskboard/internal/board"
	"github.com/abatilo/taskboard/internal/config"
	"github.com/abatilo/taskboard/internal/task"
)

func sampleState() board.State {
	created := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	s := board.NewState()
	s[task.StatusTodo] = []task.Task{
		{ID: "aaaaaaaa-1111", Title: "Write tests", Description: "Cover the board", Status: task.StatusTodo, CreatedAt: created},
		{ID: "bbbbbbbb-2222", Title: "Ship it", Status: task.StatusTodo, CreatedAt: created},
	}
	s[task.StatusDone] = []task.Task{
		{ID: "cccccccc-3333", Title: "Set up repo", Status: task.StatusDone, CreatedAt: created},
	}
	return s
}

func TestHumanFormatBoard(t *testing.T) {
	f := NewHumanFormatter(config.DefaultTheme())
	out := f.FormatBoard(sampleState())

	for _, want := range []string{
		"To Do (2)",
		"In Progress (0)",
		"Done (1)",
		"Write tests",
		"Cover the board",
		EmptyDescription,
		EmptyColumn,
		"aaaaaaaa",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("board output missing %q:\n%s", want, out)
		}
	}

	// Columns are laid out left to right
	first := strings.Split(out, "\n")[1]
	todo := strings.Index(first, "To Do")
	progress := strings.Index(first, "In Progress")
	done := strings.Index(first, "Done")
	if todo < 0 || progress < todo || done < progress {
		t.Errorf("column headers out of order in %q", first)
	}
}

func TestHumanFormatTask(t *testing.T) {
	f := NewHumanFormatter(config.DefaultTheme())
	created := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	out := f.FormatTask(task.Task{ID: "aaaaaaaa-1111", Title: "Write tests", Status: task.StatusInProgress, CreatedAt: created})
	for _, want := range []string{
		"[aaaaaaaa] Write tests",
		"Status:  In Progress",
		"Created: " + created.Format("2006-01-02 15:04"),
		EmptyDescription,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("task output missing %q:\n%s", want, out)
		}
	}
}

func TestHumanFormatTaskList(t *testing.T) {
	f := NewHumanFormatter(config.DefaultTheme())

	if got := f.FormatTaskList(nil); got != "No tasks found.\n" {
		t.Errorf("empty list = %q", got)
	}

	s := sampleState()
	got := f.FormatTaskList(append(s[task.StatusTodo], s[task.StatusDone]...))
	want := "[ ] [aaaaaaaa] Write tests\n[ ] [bbbbbbbb] Ship it\n[X] [cccccccc] Set up repo\n"
	if got != want {
		t.Errorf("FormatTaskList =\n%s\nwant\n%s", got, want)
	}
}

func TestHumanFormatErrorAndMessage(t *testing.T) {
	f := NewHumanFormatter(config.DefaultTheme())
	if got := f.FormatError(errors.New("boom")); got != "Error: boom\n" {
		t.Errorf("FormatError = %q", got)
	}
	if got := f.FormatMessage("done"); got != "done\n" {
		t.Errorf("FormatMessage = %q", got)
	}
}

func TestJSONFormatBoard(t *testing.T) {
	f := NewJSONFormatter()
	out := f.FormatBoard(sampleState())

	var doc map[string][]map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("board JSON invalid: %v\n%s", err, out)
	}
	if len(doc["TODO"]) != 2 || len(doc["IN_PROGRESS"]) != 0 || len(doc["DONE"]) != 1 {
		t.Errorf("unexpected column sizes: %v", doc)
	}
	if doc["TODO"][0]["createdAt"] != float64(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC).UnixMilli()) {
		t.Errorf("createdAt = %v", doc["TODO"][0]["createdAt"])
	}
}

func TestJSONFormatErrorAndMessage(t *testing.T) {
	f := NewJSONFormatter()

	var e errorJSON
	if err := json.Unmarshal([]byte(f.FormatError(errors.New("boom"))), &e); err != nil || e.Error != "boom" {
		t.Errorf("FormatError decoded = %+v, %v", e, err)
	}

	var m messageJSON
	if err := json.Unmarshal([]byte(f.FormatMessage("hi")), &m); err != nil || m.Message != "hi" {
		t.Errorf("FormatMessage decoded = %+v, %v", m, err)
	}
}
