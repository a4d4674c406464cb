//nolint:testpackage // Tests require internal access for thorough testing
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/abatilo/taskboard/internal/config"
	boarderrors "github.com/abatilo/taskboard/internal/errors"
	"github.com/abatilo/taskboard/internal/storage"
	"github.com/abatilo/taskboard/internal/task"
)

func newFlagCmd() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&backendFlag, "backend", storage.BackendFile, "")
	cmd.Flags().StringVar(&dataDirFlag, "data-dir", "", "")
	return cmd
}

func TestLoadConfigFlagsOverride(t *testing.T) {
	configPath = filepath.Join(t.TempDir(), "config.yaml")
	t.Cleanup(func() { configPath = "" })
	t.Setenv("TASKBOARD_BACKEND", storage.BackendSQLite)

	cmd := newFlagCmd()
	got, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if got.Backend != storage.BackendSQLite {
		t.Errorf("Backend = %q, want env value", got.Backend)
	}

	if err = cmd.Flags().Set("backend", storage.BackendMemory); err != nil {
		t.Fatal(err)
	}
	if err = cmd.Flags().Set("data-dir", "/tmp/boards"); err != nil {
		t.Fatal(err)
	}
	got, err = loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if got.Backend != storage.BackendMemory {
		t.Errorf("Backend = %q, want flag value", got.Backend)
	}
	if got.DataDir != "/tmp/boards" {
		t.Errorf("DataDir = %q", got.DataDir)
	}
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	configPath = filepath.Join(t.TempDir(), "config.yaml")
	t.Cleanup(func() { configPath = "" })

	cmd := newFlagCmd()
	if err := cmd.Flags().Set("backend", "postgres"); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(cmd); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestOpenAppFileBackend(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		log.SetOutput(os.Stderr)
	})

	seed := false
	c := config.Default()
	c.Seed = &seed
	c.DataDir = filepath.Join(home, "board")

	ctx := context.Background()
	a, err := openApp(ctx, c)
	if err != nil {
		t.Fatalf("openApp failed: %v", err)
	}
	if err = a.board.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err = a.board.Add(ctx, "Persisted task", ""); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	a.Close()

	if _, err = os.Stat(filepath.Join(home, storage.RootDirName, "logs", "taskboard.log")); err != nil {
		t.Errorf("log file not created: %v", err)
	}

	// A fresh app sees the saved board
	a, err = openApp(ctx, c)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer a.Close()
	if err = a.board.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	todo := a.board.Column(task.StatusTodo)
	if len(todo) != 1 || todo[0].Title != "Persisted task" {
		t.Errorf("todo after reopen = %+v", todo)
	}
}

type cliTask struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// cliEnv isolates one board: its own home, config file and data directory.
type cliEnv struct {
	configPath string
	dataDir    string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, name := range []string{"TASKBOARD_BACKEND", "TASKBOARD_DATA_DIR", "TASKBOARD_STORAGE_KEY", "TASKBOARD_LOG_LEVEL"} {
		t.Setenv(name, "")
	}
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		log.SetOutput(os.Stderr)
		configPath = ""
	})
	return cliEnv{
		configPath: filepath.Join(home, "config.yaml"),
		dataDir:    filepath.Join(home, "board"),
	}
}

func (e cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", e.configPath, "--data-dir", e.dataDir}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (e cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	if err != nil {
		t.Fatalf("taskboard %v failed: %v\n%s", args, err, out)
	}
	return out
}

func decodeJSON(t *testing.T, out string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(out), v); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
}

func TestCLIBoardLifecycle(t *testing.T) {
	env := newCLIEnv(t)

	// First run seeds the board
	var board map[string][]cliTask
	decodeJSON(t, env.mustRun(t, "board", "--json"), &board)
	for _, st := range []string{"TODO", "IN_PROGRESS", "DONE"} {
		if len(board[st]) != 1 {
			t.Errorf("seed column %s has %d tasks, want 1", st, len(board[st]))
		}
	}

	var added cliTask
	decodeJSON(t, env.mustRun(t, "add", "  Write docs ", "-d", "CLI notes", "--json"), &added)
	if added.Title != "Write docs" || added.Description != "CLI notes" || added.Status != "TODO" {
		t.Fatalf("added = %+v", added)
	}

	var moved cliTask
	decodeJSON(t, env.mustRun(t, "move", task.ShortID(added.ID), "done", "--json"), &moved)
	if moved.ID != added.ID || moved.Status != "DONE" {
		t.Errorf("moved = %+v", moved)
	}

	var done []cliTask
	decodeJSON(t, env.mustRun(t, "list", "--status", "done", "--json"), &done)
	if len(done) != 2 || done[0].ID != added.ID {
		t.Errorf("done column = %+v, want the moved task first", done)
	}

	var shown cliTask
	decodeJSON(t, env.mustRun(t, "show", "1", "--json"), &shown)
	if shown.Title != "Refine Commit Plan" {
		t.Errorf("show 1 = %+v", shown)
	}

	out := env.mustRun(t, "rm", added.ID)
	if !strings.Contains(out, "Deleted task "+task.ShortID(added.ID)+": Write docs") {
		t.Errorf("rm output = %q", out)
	}

	var all []cliTask
	decodeJSON(t, env.mustRun(t, "list", "--json"), &all)
	if len(all) != 3 {
		t.Errorf("list has %d tasks after rm, want 3", len(all))
	}

	// Root command prints the board
	out = env.mustRun(t)
	for _, want := range []string{"To Do (1)", "In Progress (1)", "Done (1)"} {
		if !strings.Contains(out, want) {
			t.Errorf("board output missing %q:\n%s", want, out)
		}
	}
}

func TestCLIErrors(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "add", "ab")
	var short boarderrors.TitleTooShortError
	if !errors.As(err, &short) {
		t.Errorf("add short title err = %v, want TitleTooShortError", err)
	}

	_, err = env.run(t, "list", "--status", "archived")
	var badStatus boarderrors.InvalidStatusError
	if !errors.As(err, &badStatus) {
		t.Errorf("list bad status err = %v, want InvalidStatusError", err)
	}

	_, err = env.run(t, "rm", "does-not-exist")
	var notFound boarderrors.TaskNotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("rm unknown err = %v, want TaskNotFoundError", err)
	}

	_, err = env.run(t, "--backend", "postgres", "board")
	var backend boarderrors.UnknownBackendError
	if !errors.As(err, &backend) {
		t.Errorf("unknown backend err = %v, want UnknownBackendError", err)
	}
}

func TestCLIExportResetImport(t *testing.T) {
	env := newCLIEnv(t)
	exportDir := filepath.Join(t.TempDir(), "export")

	out := env.mustRun(t, "export", exportDir)
	if !strings.Contains(out, "Exported 3 tasks") {
		t.Errorf("export output = %q", out)
	}

	var board map[string][]cliTask
	decodeJSON(t, env.mustRun(t, "reset", "--empty", "--json"), &board)
	for st, col := range board {
		if len(col) != 0 {
			t.Errorf("column %s not empty after reset: %+v", st, col)
		}
	}

	out = env.mustRun(t, "import", exportDir)
	if !strings.Contains(out, "Imported 3 of 3 tasks") {
		t.Errorf("import output = %q", out)
	}
	out = env.mustRun(t, "import", exportDir)
	if !strings.Contains(out, "Imported 0 of 3 tasks") {
		t.Errorf("re-import output = %q", out)
	}

	var shown cliTask
	decodeJSON(t, env.mustRun(t, "show", "2", "--json"), &shown)
	if shown.Status != "IN_PROGRESS" {
		t.Errorf("imported task 2 = %+v", shown)
	}
}

func TestCLIConfigInitAndVersion(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun(t, "config", "init")
	if !strings.Contains(out, env.configPath) {
		t.Errorf("config init output = %q", out)
	}
	written, err := config.Load(env.configPath)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if written.DataDir != env.dataDir {
		t.Errorf("DataDir = %q, want %q", written.DataDir, env.dataDir)
	}

	_, err = env.run(t, "config", "init")
	var exists boarderrors.ConfigExistsError
	if !errors.As(err, &exists) {
		t.Errorf("second init err = %v, want ConfigExistsError", err)
	}
	env.mustRun(t, "config", "init", "--force")

	if out = env.mustRun(t, "version"); out != "taskboard dev\n" {
		t.Errorf("version output = %q", out)
	}
}
