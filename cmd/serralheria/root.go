package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/serralheria/internal/config"
	"github.com/mmynk/serralheria/internal/service"
	"github.com/mmynk/serralheria/internal/storage/sqlite"
	"github.com/mmynk/serralheria/pkg/logging"
)

// app holds what every subcommand needs once the root command has run.
type app struct {
	cfg    *config.Config
	store  *sqlite.SQLiteStore
	quotes *service.QuoteService
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var dbPath string

	root := &cobra.Command{
		Use:          "serralheria",
		Short:        "Quotes for metalwork jobs",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("db") {
				cfg.DBPath = dbPath
			}
			logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

			store, err := sqlite.New(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			quotes := service.NewQuoteService(store)
			if err := quotes.Load(cmd.Context()); err != nil {
				store.Close()
				return err
			}
			slog.Debug("Storage initialized", "database", cfg.DBPath, "env", cfg.AppEnv)

			a.cfg, a.store, a.quotes = cfg, store, quotes
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.store == nil {
				return nil
			}
			return a.store.Close()
		},
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default from DB_PATH)")

	root.AddCommand(
		newServeCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newStatusCmd(a),
		newSummaryCmd(a),
		newPDFCmd(a),
		newXLSXCmd(a),
		newBackupCmd(a),
		newResetCmd(a),
	)
	return root
}
