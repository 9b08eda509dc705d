package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meur/pokeforge/internal/loader"
	"github.com/meur/pokeforge/internal/logging"
	"github.com/meur/pokeforge/internal/tui"
)

var logFile string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactive terminal browser",
	Args:  cobra.NoArgs,
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().StringVar(&logFile, "log-file", filepath.Join(os.TempDir(), "pokeforge.log"), "Where the browser writes its log")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	var err error
	logger, err = logging.NewFile(logFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, _, closeJournal, err := newClient(logger)
	if err != nil {
		return err
	}
	defer closeJournal()

	model := tui.New(cmd.Context(), loader.NewEnricher(client), client, logger)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
		logger.Error("Browser exited with error", zap.Error(err))
		return err
	}
	return nil
}
