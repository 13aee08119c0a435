// Command rosterctl runs classification, sync and token tasks without the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/roster-backend-go/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	storeDriver string
	sqlitePath  string
	tablesFile  string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "rosterctl",
	Short: "Roster attendance facts and schedule sync tool",
	Long: `rosterctl classifies monthly shift grids and drives the schedule sync
against the configured store.

Configuration is read from the environment and .env, like the API server.
Use --store sqlite to work against a local database file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeDriver, "store", "", "Store driver: postgres or sqlite (default: STORE_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "sqlite-path", "", "SQLite database file (default: SQLITE_PATH)")
	rootCmd.PersistentFlags().StringVar(&tablesFile, "tables", "", "Assessment and shift duration tables (default: TABLES_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(classifyCmd, syncCmd, statusCmd, tokenCmd)
}

// loadConfig applies the global flag overrides before reading the environment.
func loadConfig() (*config.Config, error) {
	if storeDriver != "" {
		os.Setenv("STORE_DRIVER", storeDriver)
	}
	if sqlitePath != "" {
		os.Setenv("SQLITE_PATH", sqlitePath)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if tablesFile != "" {
		cfg.App.TablesFile = tablesFile
	}
	return cfg, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
