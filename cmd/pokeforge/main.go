package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meur/pokeforge/internal/config"
	"github.com/meur/pokeforge/internal/logging"
	"github.com/meur/pokeforge/internal/pokeapi"
	"github.com/meur/pokeforge/internal/storage"
)

var (
	// Global flags
	configPath  string
	verbose     bool
	apiBaseURL  string
	httpTimeout time.Duration
	journalPath string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pokeforge",
	Short: "Browse the Pokémon data API",
	Long: `pokeforge lists Pokémon twelve at a time with search, sort and type
filtering, and shows the full record for a single Pokémon.

It can run as a JSON API server (serve), an interactive terminal
browser (browse), or print one record (show).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlags(cmd)
		if err := cfg.Validate(); err != nil {
			return err
		}

		// The browser owns the terminal, so it sets up its own logger.
		if cmd == browseCmd {
			return nil
		}
		logger, err = logging.New(cfg.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", os.Getenv("POKEFORGE_CONFIG"), "YAML config file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Development logging at debug level")
	pf.StringVar(&apiBaseURL, "api", "", "Upstream API base URL")
	pf.DurationVar(&httpTimeout, "timeout", 0, "Per-request upstream timeout (0 = none)")
	pf.StringVar(&journalPath, "journal", "", "SQLite fetch journal path (empty = disabled)")

	rootCmd.AddCommand(serveCmd, browseCmd, showCmd)
}

// applyFlags overrides config values with flags the user actually set
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("api") {
		cfg.APIBaseURL = apiBaseURL
	}
	if flags.Changed("timeout") {
		cfg.HTTPTimeout = httpTimeout
	}
	if flags.Changed("journal") {
		cfg.JournalPath = journalPath
	}
	if flags.Changed("listen") {
		cfg.Listen = listenAddr
	}
	if flags.Changed("static") {
		cfg.StaticDir = staticDir
	}
}

// newClient builds the upstream client and, when configured, the fetch
// journal it reports to. The returned close func is always non-nil.
func newClient(log *zap.Logger) (*pokeapi.HTTPClient, *storage.Store, func(), error) {
	opts := []pokeapi.Option{pokeapi.WithTimeout(cfg.HTTPTimeout)}

	if cfg.JournalPath == "" {
		return pokeapi.New(cfg.APIBaseURL, opts...), nil, func() {}, nil
	}

	journal, err := storage.New(cfg.JournalPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open fetch journal: %w", err)
	}
	opts = append(opts, pokeapi.WithObserver(journal.Observer(log)))
	return pokeapi.New(cfg.APIBaseURL, opts...), journal, func() { journal.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
