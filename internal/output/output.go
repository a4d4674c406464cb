package output

import (
	"github.com/abatilo/taskboard/internal/board"
	"github.com/abatilo/taskboard/internal/task"
)

// Formatter defines the interface for output formatting.
type Formatter interface {
	FormatBoard(s board.State) string
	FormatTask(t task.Task) string
	FormatTaskList(tasks []task.Task) string
	FormatError(err error) string
	FormatMessage(msg string) string
}

// EmptyDescription is shown for a task without a description.
const EmptyDescription = "No description provided."

// EmptyColumn is shown for a column without tasks.
const EmptyColumn = "No tasks here."
