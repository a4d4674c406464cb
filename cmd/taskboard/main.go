package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abatilo/taskboard/internal/config"
	boarderrors "github.com/abatilo/taskboard/internal/errors"
	"github.com/abatilo/taskboard/internal/output"
	"github.com/abatilo/taskboard/internal/storage"
	"github.com/abatilo/taskboard/internal/task"
	"github.com/abatilo/taskboard/internal/tui"
)

//nolint:gochecknoglobals // CLI flags and formatter are package-level by design
var (
	jsonOutput  bool
	backendFlag string
	dataDirFlag string
	configPath  string
	cfg         *config.Config
	formatter   output.Formatter

	version = "dev"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		printError(err)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "taskboard",
		Short:         "A three-column kanban board for the terminal",
		Long:          "taskboard - A single-user kanban board with To Do, In Progress and Done columns.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			setFormatter(config.DefaultTheme())

			var err error
			if cfg, err = loadConfig(cmd); err != nil {
				return err
			}
			setFormatter(cfg.Theme)
			return nil
		},
		RunE: runBoard,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	flags.StringVar(&backendFlag, "backend", storage.BackendFile, "Storage backend (file, sqlite, memory)")
	flags.StringVar(&dataDirFlag, "data-dir", "", "Directory holding the board (default: per project under ~/.taskboard)")
	flags.StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/taskboard/config.yaml)")

	rootCmd.AddCommand(
		boardCmd(),
		addCmd(),
		moveCmd(),
		rmCmd(),
		showCmd(),
		listCmd(),
		exportCmd(),
		importCmd(),
		resetCmd(),
		tuiCmd(),
		configCmd(),
		versionCmd(),
	)
	return rootCmd
}

func setFormatter(theme config.Theme) {
	if jsonOutput {
		formatter = output.NewJSONFormatter()
	} else {
		formatter = output.NewHumanFormatter(theme)
	}
}

func printOutput(cmd *cobra.Command, s string) {
	fmt.Fprint(cmd.OutOrStdout(), s) //nolint:errcheck // stdout write errors are unrecoverable
}

func printError(err error) {
	if formatter == nil {
		setFormatter(config.DefaultTheme())
	}
	os.Stdout.WriteString(formatter.FormatError(err)) //nolint:gosec // stdout write errors are unrecoverable
	os.Exit(1)
}

func runBoard(cmd *cobra.Command, _ []string) error {
	a, err := getBoard(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	printOutput(cmd, formatter.FormatBoard(a.board.State()))
	return nil
}

// boardCmd implements 'taskboard board'.
func boardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show the board",
		RunE:  runBoard,
	}
}

// addCmd implements 'taskboard add'.
func addCmd() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task to the To Do column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getBoard(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.board.Add(cmd.Context(), args[0], description)
			if err != nil {
				return err
			}
			printOutput(cmd, formatter.FormatTask(t))
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	return cmd
}

// moveCmd implements 'taskboard move'.
func moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <status>",
		Short: "Move a task to another column (todo, in-progress, done)",
		Args:  cobra.ExactArgs(2), //nolint:mnd // id and status
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := task.ParseStatus(args[1])
			if err != nil {
				return err
			}

			a, err := getBoard(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.board.Move(cmd.Context(), args[0], to)
			if err != nil {
				return err
			}
			printOutput(cmd, formatter.FormatTask(t))
			return nil
		},
	}
}

// rmCmd implements 'taskboard rm'.
func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getBoard(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.board.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printOutput(cmd, formatter.FormatMessage(fmt.Sprintf("Deleted task %s: %s", task.ShortID(t.ID), t.Title)))
			return nil
		},
	}
}

// showCmd implements 'taskboard show'.
func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getBoard(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.board.Find(args[0])
			if err != nil {
				return err
			}
			printOutput(cmd, formatter.FormatTask(t))
			return nil
		},
	}
}

// listCmd implements 'taskboard list'.
func listCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks column by column",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter task.Status
			if status != "" {
				var err error
				if filter, err = task.ParseStatus(status); err != nil {
					return err
				}
			}

			a, err := getBoard(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if filter != "" {
				printOutput(cmd, formatter.FormatTaskList(a.board.Column(filter)))
				return nil
			}
			printOutput(cmd, formatter.FormatTaskList(a.board.Tasks()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", "", "Only show one column (todo, in-progress, done)")
	return cmd
}

// exportCmd implements 'taskboard export'.
func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write every task as a markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getBoard(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := storage.ExportMarkdown(args[0], a.board.Tasks())
			if err != nil {
				return err
			}
			printOutput(cmd, formatter.FormatMessage(fmt.Sprintf("Exported %d tasks to %s", n, args[0])))
			return nil
		},
	}
}

// importCmd implements 'taskboard import'.
func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Add tasks from markdown files, skipping ids already on the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := storage.ImportMarkdown(args[0])
			if err != nil {
				return err
			}

			a, err := getBoard(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.board.Import(cmd.Context(), tasks)
			if err != nil {
				return err
			}
			printOutput(cmd, formatter.FormatMessage(
				fmt.Sprintf("Imported %d of %d tasks from %s", n, len(tasks), args[0])))
			return nil
		},
	}
}

// resetCmd implements 'taskboard reset'.
func resetCmd() *cobra.Command {
	var empty bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the board with the starter tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := getBoard(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err = a.board.Reset(cmd.Context(), empty); err != nil {
				return err
			}
			printOutput(cmd, formatter.FormatBoard(a.board.State()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&empty, "empty", false, "Start from an empty board instead")
	return cmd
}

// tuiCmd implements 'taskboard tui'.
func tuiCmd() *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive board",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			return tui.Run(cmd.Context(), a.board, cfg.Theme, tui.WithMarkdownStyle(style))
		},
	}
	cmd.Flags().StringVar(&style, "style", "dark", "Markdown style for task details (dark, light, notty)")
	return cmd
}

// configCmd implements 'taskboard config'.
func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	cmd.AddCommand(configInitCmd())
	return cmd
}

// configInitCmd implements 'taskboard config init'.
func configInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configPath
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			if _, err := os.Stat(path); err == nil && !force {
				return boarderrors.ConfigExistsError{Path: path}
			}
			if err := cfg.Save(path); err != nil {
				return err
			}
			printOutput(cmd, formatter.FormatMessage("Wrote config to "+path))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return cmd
}

// versionCmd implements 'taskboard version'.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printOutput(cmd, formatter.FormatMessage("taskboard "+version))
			return nil
		},
	}
}
