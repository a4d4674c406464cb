// Package board holds the task board state and keeps it persisted.
package board

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	boarderrors "github.com/abatilo/taskboard/internal/errors"
	"github.com/abatilo/taskboard/internal/storage"
	"github.com/abatilo/taskboard/internal/task"
)

// DefaultStorageKey is the key the whole board is stored under.
const DefaultStorageKey = "kanban_task_board"

// Board owns the partitioned task collection. Every task lives in exactly
// one column, and each column is ordered newest first.
type Board struct {
	mu sync.Mutex

	store     storage.Storage
	key       string
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
	seed      bool
	loadDelay time.Duration

	state  State
	loaded bool
}

// Option configures a Board.
type Option func(*Board)

// WithKey sets the storage key.
func WithKey(key string) Option {
	return func(b *Board) {
		if key != "" {
			b.key = key
		}
	}
}

// WithLogger sets the logger used for load and save failures.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Board) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.now = now
	}
}

// WithIDGenerator overrides task ID generation.
func WithIDGenerator(newID func() string) Option {
	return func(b *Board) {
		b.newID = newID
	}
}

// WithSeed controls whether an empty store starts with the seed board.
func WithSeed(enabled bool) Option {
	return func(b *Board) {
		b.seed = enabled
	}
}

// WithLoadDelay adds latency before the initial load.
func WithLoadDelay(d time.Duration) Option {
	return func(b *Board) {
		b.loadDelay = d
	}
}

// New creates a Board backed by store. Call Load before reading it.
func New(store storage.Storage, opts ...Option) *Board {
	b := &Board{
		store:  store,
		key:    DefaultStorageKey,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		newID:  task.NewID,
		seed:   true,
		state:  NewState(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Key returns the storage key.
func (b *Board) Key() string {
	return b.key
}

// Load reads the stored board. A missing or unreadable document falls back to
// the seed board; those failures are logged rather than returned. Only context
// cancellation during the load delay is reported.
func (b *Board) Load(ctx context.Context) error {
	if b.loadDelay > 0 {
		timer := time.NewTimer(b.loadDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	state, persist := b.read(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.state = state
	b.loaded = true
	if persist {
		if err := b.saveLocked(ctx); err != nil {
			b.logger.Error("failed to save board after load", "key", b.key, "error", err)
		}
	}
	return nil
}

// read returns the stored state and whether it should be written back.
// A storage failure keeps whatever is stored untouched.
func (b *Board) read(ctx context.Context) (State, bool) {
	data, ok, err := b.store.GetItem(ctx, b.key)
	if err != nil {
		b.logger.Error("failed to read board, using default state", "key", b.key, "error", err)
		return b.fallback(), false
	}
	if !ok {
		b.logger.Info("no stored board, using default state", "key", b.key)
		return b.fallback(), true
	}

	state, err := Decode([]byte(data), b.logger)
	if err != nil {
		b.logger.Error("stored board is corrupt, using default state", "key", b.key, "error", err)
		return b.fallback(), true
	}
	return state, true
}

func (b *Board) fallback() State {
	if b.seed {
		return Seed(b.now())
	}
	return NewState()
}

// Loaded reports whether the initial load has completed.
func (b *Board) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

// State returns a copy of the whole board.
func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Clone()
}

// Column returns a copy of the tasks in one column, newest first.
func (b *Board) Column(status task.Status) []task.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.state[status])
}

// Counts returns the number of tasks per column.
func (b *Board) Counts() map[task.Status]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	counts := make(map[task.Status]int, len(task.Statuses))
	for _, st := range task.Statuses {
		counts[st] = len(b.state[st])
	}
	return counts
}

// Len returns the number of tasks on the board.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Len()
}

// Tasks returns every task in column order.
func (b *Board) Tasks() []task.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]task.Task, 0, b.state.Len())
	for _, st := range task.Statuses {
		out = append(out, b.state[st]...)
	}
	return out
}

// Find resolves a full ID or a unique ID prefix.
func (b *Board) Find(ref string) (task.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.findLocked(ref)
}

func (b *Board) findLocked(ref string) (task.Task, error) {
	if st, i, ok := b.state.locate(ref); ok {
		return b.state[st][i], nil
	}

	var matches []task.Task
	for _, st := range task.Statuses {
		for _, t := range b.state[st] {
			if task.MatchesRef(t.ID, ref) {
				matches = append(matches, t)
			}
		}
	}

	switch len(matches) {
	case 0:
		return task.Task{}, boarderrors.TaskNotFoundError{ID: ref}
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		return task.Task{}, boarderrors.AmbiguousIDError{Ref: ref, Matches: ids}
	}
}

// Add creates a task in the To Do column.
func (b *Board) Add(ctx context.Context, title, description string) (task.Task, error) {
	title, description, err := task.ValidateInput(title, description)
	if err != nil {
		return task.Task{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	t := task.Task{
		ID:          b.newID(),
		Title:       title,
		Description: description,
		Status:      task.StatusTodo,
		CreatedAt:   b.now(),
	}
	b.state[task.StatusTodo] = slices.Insert(b.state[task.StatusTodo], 0, t)

	return t, b.persistLocked(ctx)
}

// Move takes a task out of its column and puts it at the head of the target
// column. Moving to the current column brings it to the head.
func (b *Board) Move(ctx context.Context, ref string, to task.Status) (task.Task, error) {
	if !task.IsValidStatus(to) {
		return task.Task{}, boarderrors.InvalidStatusError{Value: string(to)}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	found, err := b.findLocked(ref)
	if err != nil {
		return task.Task{}, err
	}

	from, i, _ := b.state.locate(found.ID)
	b.state[from] = slices.Delete(b.state[from], i, i+1)

	found.Status = to
	b.state[to] = slices.Insert(b.state[to], 0, found)

	return found, b.persistLocked(ctx)
}

// Delete removes a task from whichever column holds it.
func (b *Board) Delete(ctx context.Context, ref string) (task.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	found, err := b.findLocked(ref)
	if err != nil {
		return task.Task{}, err
	}

	st, i, _ := b.state.locate(found.ID)
	b.state[st] = slices.Delete(b.state[st], i, i+1)

	return found, b.persistLocked(ctx)
}

// Reset replaces the board with the seed board, or an empty one.
func (b *Board) Reset(ctx context.Context, empty bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if empty {
		b.state = NewState()
	} else {
		b.state = Seed(b.now())
	}
	return b.persistLocked(ctx)
}

// Import places tasks at the head of their columns in the given order, so the
// last one ends up first. Tasks whose ID is already on the board, or whose
// title fails validation, are skipped.
func (b *Board) Import(ctx context.Context, tasks []task.Task) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	added := 0
	for _, t := range tasks {
		if !task.IsValidStatus(t.Status) || t.ID == "" {
			continue
		}
		if _, _, exists := b.state.locate(t.ID); exists {
			continue
		}
		title, description, err := task.ValidateInput(t.Title, t.Description)
		if err != nil {
			continue
		}
		t.Title, t.Description = title, description
		b.state[t.Status] = slices.Insert(b.state[t.Status], 0, t)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, b.persistLocked(ctx)
}

// persistLocked writes the board if the initial load has happened. A failed
// write leaves the in-memory change in place and returns SaveError.
func (b *Board) persistLocked(ctx context.Context) error {
	if !b.loaded {
		return nil
	}
	if err := b.saveLocked(ctx); err != nil {
		b.logger.Error("error saving board", "key", b.key, "error", err)
		return boarderrors.SaveError{Err: err}
	}
	return nil
}

func (b *Board) saveLocked(ctx context.Context) error {
	data, err := Encode(b.state)
	if err != nil {
		return err
	}
	return b.store.SetItem(ctx, b.key, string(data))
}
