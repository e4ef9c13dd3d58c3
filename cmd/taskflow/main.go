package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"taskflow/app"
	"taskflow/config"
	"taskflow/store"
	"taskflow/theme"
	"taskflow/tui"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		dataDir    string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:     "taskflow",
		Short:   "A terminal task list with persisted display preferences",
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
			}
			return run(cfg, verbose)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath(), "config file")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "override the data directory")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func run(cfg *config.Config, verbose bool) error {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	logger, closeLog := newLogger(cfg.ResolvedLogFile(), verbose)
	defer closeLog()

	theme.ApplyColorProfile(cfg.NoColor)

	st := store.New(cfg.DataDir, logger)
	svc := app.NewService(st)
	themes := theme.NewController(st, logger)

	program := tea.NewProgram(tui.NewModel(svc, themes), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}

// newLogger writes to the given file; the terminal belongs to the TUI. A
// file that cannot be opened silently downgrades to a discarding logger.
func newLogger(path string, verbose bool) (*log.Logger, func()) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, func() { _ = f.Close() }
}
