package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/config"
	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/journal"
)

var rootCmd = &cobra.Command{
	Use:   "journal",
	Short: "Risk-based trading journal",
	Long: `journal plans trades from a risk policy, ingests broker CSV exports,
and reports on the resulting trade history.

Position sizing works in R: the dollar amount risked per trade is
portfolio × risk fraction, and every outcome is measured against it.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

var (
	cfgPath string
	dbPath  string
	verbose bool

	log zerolog.Logger
)

func init() {
	cobra.OnInitialize(initRuntime)

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to settings file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite journal DB (overrides settings)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func initRuntime() {
	// .env is optional; it carries TRADING_JOURNAL_DB and friends in dev.
	_ = godotenv.Load()

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// loadSettings resolves settings from --config, falling back to defaults,
// and applies the --db / environment overrides for the journal location.
func loadSettings() (*config.Settings, error) {
	var s *config.Settings
	if cfgPath != "" {
		loaded, err := config.LoadFromFile(cfgPath)
		if err != nil {
			return nil, err
		}
		s = loaded
	} else {
		s = config.Default()
	}

	if env := os.Getenv("TRADING_JOURNAL_DB"); env != "" {
		s.Journal.DBPath = env
	}
	if dbPath != "" {
		s.Journal.DBPath = dbPath
	}
	return s, nil
}

func openJournal(s *config.Settings) (*journal.SQLite, error) {
	return journal.NewSQLite(s.Journal.DBPath)
}
