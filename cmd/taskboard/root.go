package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/kingrea/taskboard/internal/board"
	"github.com/kingrea/taskboard/internal/config"
	"github.com/kingrea/taskboard/internal/logbook"
	"github.com/kingrea/taskboard/internal/task"
	"github.com/kingrea/taskboard/internal/tui"
	"github.com/kingrea/taskboard/internal/view"
)

type rootOptions struct {
	dir    string
	search string
	filter string
	order  string
	locale string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "taskboard",
		Short: "An in-memory task list for the terminal",
		Long: `taskboard keeps a task list for the current terminal session.

Tasks can be added, renamed, reprioritized, deleted, searched, filtered by
priority and sorted by title. Nothing is saved when the program exits.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.dir, "dir", "C", "", "project directory holding .taskboard/ (defaults to cwd)")
	flags.StringVar(&opts.search, "search", "", "initial search keyword")
	flags.StringVar(&opts.filter, "priority", "", "initial priority filter (all, low, medium, high)")
	flags.StringVar(&opts.order, "order", "", "initial sort order (asc, desc)")
	flags.StringVar(&opts.locale, "locale", "", "BCP 47 locale used to sort titles")

	cmd.AddCommand(newVersionCmd(), newValidateConfigCmd())
	cmd.Version = version
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the taskboard version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taskboard %s\n", version)
		},
	}
}

func runBoard(opts *rootOptions) error {
	projectDir, err := resolveProjectDir(opts.dir)
	if err != nil {
		return err
	}
	if err := config.InitDir(projectDir); err != nil {
		return fmt.Errorf("initializing %s: %w", config.TaskboardDir, err)
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return err
	}
	b, err := buildBoard(cfg, opts)
	if err != nil {
		return err
	}

	lb, err := logbook.New(cfg.JournalPath())
	if err != nil {
		// the journal is optional; run without it
		fmt.Fprintf(os.Stderr, "Warning: session journal disabled: %v\n", err)
		lb = nil
	}
	app, err := tui.NewApp(cfg, tui.WithBoard(b), tui.WithLogbook(lb))
	if err != nil {
		return err
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		lb.Error("TUI exited: %v", err)
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// buildBoard applies flag overrides on top of the project config.
func buildBoard(cfg *config.Config, opts *rootOptions) (*board.Board, error) {
	params := cfg.ViewParams()
	params.Search = opts.search
	if strings.TrimSpace(opts.filter) != "" {
		f, err := view.ParseFilter(opts.filter)
		if err != nil {
			return nil, fmt.Errorf("--priority: %w", err)
		}
		params.Filter = f
	}
	if strings.TrimSpace(opts.order) != "" {
		o, err := view.ParseOrder(opts.order)
		if err != nil {
			return nil, fmt.Errorf("--order: %w", err)
		}
		params.Order = o
	}
	locale := cfg.Locale()
	if strings.TrimSpace(opts.locale) != "" {
		tag, err := language.Parse(opts.locale)
		if err != nil {
			return nil, fmt.Errorf("--locale: %w", err)
		}
		locale = tag
	}
	return board.New(task.NewStore(),
		board.WithProjector(view.New(locale)),
		board.WithParams(params),
	), nil
}

func resolveProjectDir(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}
