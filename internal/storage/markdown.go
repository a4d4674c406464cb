package storage

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	boarderrors "github.com/abatilo/taskboard/internal/errors"
	"github.com/abatilo/taskboard/internal/task"
)

const (
	frontmatterDelimiter = "---"
	markdownExt          = ".md"
)

// taskFrontmatter is the YAML-serializable portion of a task.
type taskFrontmatter struct {
	ID        string      `yaml:"id"`
	Title     string      `yaml:"title"`
	Status    task.Status `yaml:"status"`
	CreatedAt string      `yaml:"created_at"`
}

// ParseMarkdown parses a markdown document with YAML frontmatter into a Task.
func ParseMarkdown(content []byte) (*task.Task, error) {
	lines := strings.Split(string(content), "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != frontmatterDelimiter {
		return nil, &parseError{"missing YAML frontmatter"}
	}

	var frontmatterEnd int
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterDelimiter {
			frontmatterEnd = i
			break
		}
	}
	if frontmatterEnd == 0 {
		return nil, &parseError{"unclosed YAML frontmatter"}
	}

	yamlContent := strings.Join(lines[1:frontmatterEnd], "\n")
	var fm taskFrontmatter
	if err := yaml.Unmarshal([]byte(yamlContent), &fm); err != nil {
		return nil, &parseError{"invalid YAML: " + err.Error()}
	}

	if fm.ID == "" {
		return nil, &parseError{"missing id"}
	}
	if !task.IsValidStatus(fm.Status) {
		return nil, &parseError{fmt.Sprintf("invalid status %q", fm.Status)}
	}

	createdAt, err := parseTime(fm.CreatedAt)
	if err != nil {
		return nil, &parseError{"invalid created_at: " + err.Error()}
	}

	// Description is everything after the frontmatter
	var description string
	if frontmatterEnd+1 < len(lines) {
		description = strings.Join(lines[frontmatterEnd+1:], "\n")
	}

	title, description, err := task.ValidateInput(fm.Title, description)
	if err != nil {
		return nil, &parseError{err.Error()}
	}

	return &task.Task{
		ID:          fm.ID,
		Title:       title,
		Status:      fm.Status,
		CreatedAt:   createdAt,
		Description: description,
	}, nil
}

// SerializeMarkdown converts a Task to markdown with YAML frontmatter.
func SerializeMarkdown(t *task.Task) ([]byte, error) {
	fm := taskFrontmatter{
		ID:        t.ID,
		Title:     t.Title,
		Status:    t.Status,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}

	var buf bytes.Buffer
	buf.WriteString(frontmatterDelimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	buf.WriteString(frontmatterDelimiter + "\n")

	if t.Description != "" {
		buf.WriteString("\n")
		buf.WriteString(t.Description)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportMarkdown writes each task to <dir>/<id>.md and returns the number written.
// Ids are sanitized like storage keys so every file lands directly in dir.
func ExportMarkdown(dir string, tasks []task.Task) (int, error) {
	//nolint:gosec // G301: 0755 is appropriate for user-visible exports
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	for i := range tasks {
		content, err := SerializeMarkdown(&tasks[i])
		if err != nil {
			return i, fmt.Errorf("serialize %s: %w", tasks[i].ID, err)
		}
		path := filepath.Join(dir, SanitizeKey(tasks[i].ID)+markdownExt)
		//nolint:gosec // G306: 0644 is appropriate for user-readable exports
		if err = os.WriteFile(path, content, 0o644); err != nil {
			return i, err
		}
	}
	return len(tasks), nil
}

// ImportMarkdown reads every *.md task in dir, oldest first.
// Malformed files are skipped and logged.
func ImportMarkdown(dir string) ([]task.Task, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var tasks []task.Task
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), markdownExt) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		t, err := ParseMarkdown(content)
		if err != nil {
			slog.Warn("skipping task file",
				"error", boarderrors.MalformedTaskError{Path: path, Reason: err.Error()})
			continue
		}
		tasks = append(tasks, *t)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// parseError represents a parsing error.
type parseError struct {
	msg string
}

func (e *parseError) Error() string {
	return e.msg
}

// parseTime tries to parse a time string in common formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &parseError{"unrecognized time format"}
}
