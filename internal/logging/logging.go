// Package logging sets up the process-wide slog logger.
package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

const logFileName = "taskboard.log"

// Init writes logs to <rootDir>/logs/taskboard.log in text format and installs
// the logger as the slog default. The returned closer releases the file.
func Init(rootDir string, level slog.Level) (*slog.Logger, io.Closer, error) {
	logDir := filepath.Join(rootDir, "logs")
	//nolint:gosec // G301: 0755 is appropriate for a user log directory
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, nil, err
	}

	//nolint:gosec // G302: 0644 is appropriate for user-readable logs
	file, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	logger := New(file, level)
	slog.SetDefault(logger)

	// Redirect standard log package output to the same file
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags)

	return logger, file, nil
}

// New returns a text logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return New(io.Discard, slog.LevelError)
}
