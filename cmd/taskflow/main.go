package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"taskflow/internal/app"
	"taskflow/internal/config"
	"taskflow/internal/model"
	"taskflow/internal/service"
	"taskflow/internal/tui"
)

type cli struct {
	configPath string
	logPath    string

	logFile *os.File
	app     *app.App
}

// newRootCmd builds the command tree. The returned func releases what the
// command opened and must run after Execute.
func newRootCmd() (*cobra.Command, func()) {
	c := &cli{}

	root := &cobra.Command{
		Use:           "taskflow",
		Short:         "Focus timer with a task list and session history",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to taskflow.yaml (defaults to ./taskflow.yaml, ~/.config/taskflow/taskflow.yaml)")
	root.PersistentFlags().StringVar(&c.logPath, "log", "", "Path to log file (optional, defaults to stderr)")

	root.AddCommand(c.tuiCmd(), c.historyCmd(), c.tasksCmd())
	return root, c.teardown
}

func (c *cli) setup(cmd *cobra.Command) error {
	quiet := cmd.Name() == "tui"
	file, err := setupLogging(c.logPath, quiet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up file logging: %v. Logging to stderr instead.\n", err)
		log.SetOutput(os.Stderr)
	}
	c.logFile = file

	cfg, err := config.NewLoader(c.configPath).Load()
	if err != nil {
		return err
	}
	c.app = app.Open(cmd.Context(), cfg)
	return nil
}

func (c *cli) teardown() {
	if c.app != nil {
		c.app.Close()
	}
	if c.logFile != nil {
		log.SetOutput(os.Stderr)
		_ = c.logFile.Close()
	}
}

// setupLogging sends the standard logger to logFilePath. Without a path it
// logs to stderr, or nowhere when the terminal is owned by the UI.
func setupLogging(logFilePath string, quiet bool) (*os.File, error) {
	if logFilePath == "" {
		if quiet {
			log.SetOutput(io.Discard)
		} else {
			log.SetOutput(os.Stderr)
		}
		return nil, nil
	}

	dir := filepath.Dir(logFilePath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", logFilePath, err)
	}

	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	return file, nil
}

func (c *cli) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(cmd.Context(), tui.Services{
				Timer:    c.app.Timer,
				Tasks:    c.app.Tasks,
				History:  c.app.History,
				Settings: c.app.Settings,
			})
		},
	}
}

func (c *cli) historyCmd() *cobra.Command {
	var clearAll bool
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if clearAll {
				c.app.History.Clear(cmd.Context())
				fmt.Fprintln(out, "History cleared.")
				return nil
			}
			printHistory(out, c.app.History.Get(), limit)
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Delete all recorded sessions")
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of sessions to show (0 for all)")
	return cmd
}

func printHistory(out io.Writer, view service.HistoryView, limit int) {
	if len(view.Sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded.")
		return
	}
	fmt.Fprintf(out, "%d completed, %s focused, %d sessions\n",
		view.Stats.CompletedCount, model.DurationText(view.Stats.FocusedSeconds), view.Stats.TotalSessions)
	for i, rec := range view.Sessions {
		if limit > 0 && i == limit {
			break
		}
		preset, _ := model.LookupPreset(rec.Type)
		status := "stopped"
		if rec.Completed {
			status = "completed"
		}
		fmt.Fprintf(out, "%s %s  %-12s %-8s %s\n", rec.Date, rec.Timestamp, preset.Name, model.DurationText(rec.DurationSeconds), status)
	}
}

func (c *cli) tasksCmd() *cobra.Command {
	tasks := &cobra.Command{
		Use:   "tasks",
		Short: "Manage the task list",
	}

	tasks.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List tasks",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				printTasks(cmd.OutOrStdout(), c.app.Tasks.List())
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <text>",
			Short: "Add a task",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				task, apiErr := c.app.Tasks.Create(cmd.Context(), service.CreateTaskInput{Text: strings.Join(args, " ")})
				if apiErr != nil {
					return apiErr
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", task.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle <id>",
			Short: "Mark a task done or not done",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				task, apiErr := c.app.Tasks.Toggle(cmd.Context(), args[0])
				if apiErr != nil {
					return apiErr
				}
				printTasks(cmd.OutOrStdout(), []model.Task{*task})
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a task",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if apiErr := c.app.Tasks.Delete(cmd.Context(), args[0]); apiErr != nil {
					return apiErr
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear-completed",
			Short: "Remove completed tasks",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				removed := c.app.Tasks.ClearCompleted(cmd.Context())
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d completed task(s)\n", removed)
				return nil
			},
		},
	)
	return tasks
}

func printTasks(out io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks.")
		return
	}
	for _, task := range tasks {
		box := "[ ]"
		if task.Completed {
			box = "[x]"
		}
		fmt.Fprintf(out, "%s %s  %s\n", box, task.ID, task.Text)
	}
}

func main() {
	root, teardown := newRootCmd()
	err := root.ExecuteContext(context.Background())
	teardown()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
