package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/insightdelivered/ministry-roster/internal/config"
	"github.com/insightdelivered/ministry-roster/internal/logging"
	"github.com/insightdelivered/ministry-roster/internal/source"
	"github.com/insightdelivered/ministry-roster/internal/store"
)

const version = "1.0.0"

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "Media ministry roster statistics",
	Long: `Computes who served in which media role, and who preached, from the
church service roster sheet.

The roster is read from a fresh cached copy of the sheet, the published
sheet itself, the last imported file, or the built-in sample, in that order.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is normal; the environment is used as-is.
		_ = godotenv.Load()

		path := configPath
		if path == "" {
			path = os.Getenv("ROSTER_CONFIG")
		}
		if path == "" {
			path = config.DefaultPath
		}

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = logging.New(cfg.LogLevel, verbose)
		if err != nil {
			return err
		}
		logger.Debug("config loaded", zap.String("path", path), zap.String("cache", cfg.Cache.DSN))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default roster.yaml, or $ROSTER_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		newServeCmd(),
		newStatsCmd(),
		newVolunteersCmd(),
		newExportCmd(),
		newImportCmd(),
		newRefreshCmd(),
		newVersionCmd(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openResolver opens the configured store and builds the data-source
// resolver over it. The caller closes the store.
func openResolver(ctx context.Context) (*source.Resolver, store.Store, error) {
	st, err := store.Open(ctx, cfg.Cache.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache: %w", err)
	}

	var fetcher source.Fetcher
	if cfg.RemoteEnabled() {
		url := cfg.Sheet.URL
		if url == "" {
			url = source.SheetURL(cfg.Sheet.SpreadsheetID, cfg.Sheet.Name, cfg.Sheet.Range)
		}
		fetcher = &source.SheetFetcher{URL: url, Timeout: cfg.Sheet.Timeout}
	} else {
		logger.Debug("no sheet configured, remote tier disabled")
	}

	r := source.NewResolver(st, fetcher,
		source.WithTTL(cfg.Cache.TTL),
		source.WithLogger(logger),
	)
	return r, st, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "roster v%s\n", version)
		},
	}
}
