//nolint:revive // Package name intentionally matches stdlib for domain clarity
package errors

import (
	"fmt"
	"strings"
)

// TaskNotFoundError indicates no task on the board matches the reference.
type TaskNotFoundError struct {
	ID string
}

func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.ID)
}

// AmbiguousIDError indicates an ID prefix matches more than one task.
type AmbiguousIDError struct {
	Ref     string
	Matches []string
}

func (e AmbiguousIDError) Error() string {
	return fmt.Sprintf("id %q is ambiguous: matches %s", e.Ref, strings.Join(e.Matches, ", "))
}

// InvalidStatusError indicates a status value outside the three board columns.
type InvalidStatusError struct {
	Value string
}

func (e InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status: %s (valid: todo, in-progress, done)", e.Value)
}

// TitleTooShortError indicates a task title below the minimum length.
type TitleTooShortError struct {
	Min int
}

func (e TitleTooShortError) Error() string {
	return fmt.Sprintf("Title must be at least %d characters long.", e.Min)
}

// UnknownBackendError indicates a storage backend name that is not supported.
type UnknownBackendError struct {
	Name string
}

func (e UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown storage backend: %s (valid: file, sqlite, memory)", e.Name)
}

// SaveError indicates the board changed in memory but could not be persisted.
type SaveError struct {
	Err error
}

func (e SaveError) Error() string {
	return fmt.Sprintf("board changed but was not saved: %v", e.Err)
}

func (e SaveError) Unwrap() error {
	return e.Err
}

// MalformedTaskError indicates an exported task document that cannot be read.
type MalformedTaskError struct {
	Path   string
	Reason string
}

func (e MalformedTaskError) Error() string {
	return fmt.Sprintf("malformed task file %s: %s", e.Path, e.Reason)
}

// ConfigExistsError indicates config init would overwrite an existing file.
type ConfigExistsError struct {
	Path string
}

func (e ConfigExistsError) Error() string {
	return fmt.Sprintf("config file already exists: %s (use --force to overwrite)", e.Path)
}
