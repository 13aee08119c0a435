package main

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/bootstrap"
	"github.com/cmlabs-hris/roster-backend-go/internal/config"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/validator"
	"github.com/spf13/cobra"
)

var (
	syncFrom string
	syncTo   string
	syncDate string
)

// syncCmd is the parent command for schedule sync
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull remote schedules and derive daily stats",
}

var syncDepartmentCmd = &cobra.Command{
	Use:   "department <code>",
	Short: "Sync one department over a date range",
	Args:  cobra.ExactArgs(1),
	RunE:  runSyncDepartment,
}

var syncAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Sync every department for one date",
	RunE:  runSyncAll,
}

// statusCmd reports sync progress for a department
var statusCmd = &cobra.Command{
	Use:   "status <code>",
	Short: "Show processed and unprocessed dates for a department",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	syncDepartmentCmd.Flags().StringVar(&syncFrom, "from", "", "First date, YYYY-MM-DD")
	syncDepartmentCmd.Flags().StringVar(&syncTo, "to", "", "Last date, YYYY-MM-DD (default: --from)")
	_ = syncDepartmentCmd.MarkFlagRequired("from")

	syncAllCmd.Flags().StringVar(&syncDate, "date", "", "Date to sync, YYYY-MM-DD (default: today)")

	statusCmd.Flags().StringVar(&syncFrom, "from", "", "First date, YYYY-MM-DD")
	statusCmd.Flags().StringVar(&syncTo, "to", "", "Last date, YYYY-MM-DD")
	_ = statusCmd.MarkFlagRequired("from")
	_ = statusCmd.MarkFlagRequired("to")

	syncCmd.AddCommand(syncDepartmentCmd, syncAllCmd)
}

func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	if toStr == "" {
		toStr = fromStr
	}
	from, to, ok := validator.IsValidDateRange(fromStr, toStr)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date range %q..%q: dates must be YYYY-MM-DD and from <= to", fromStr, toStr)
	}
	return from, to, nil
}

func openServices(cmd *cobra.Command) (*bootstrap.Services, *config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	tables, err := config.LoadTables(cfg.App.TablesFile)
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := bootstrap.OpenStore(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := store.SeedDurations(cmd.Context(), tables.ShiftDurations); err != nil {
		store.Close()
		return nil, nil, nil, err
	}
	return bootstrap.NewServices(cfg, tables, store), cfg, store.Close, nil
}

func runSyncDepartment(cmd *cobra.Command, args []string) error {
	from, to, err := parseRange(syncFrom, syncTo)
	if err != nil {
		return err
	}
	services, _, closeStore, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	result, err := services.Sync.SyncDateRangeForDepartment(cmd.Context(), args[0], from, to)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}

func runSyncAll(cmd *cobra.Command, args []string) error {
	var date time.Time
	if syncDate != "" {
		parsed, ok := validator.IsValidDate(syncDate)
		if !ok {
			return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", syncDate)
		}
		date = parsed
	}
	services, cfg, closeStore, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	if date.IsZero() {
		now := time.Now().In(cfg.Location())
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	result, err := services.Sync.SyncAllDepartments(cmd.Context(), date)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}

func runStatus(cmd *cobra.Command, args []string) error {
	from, to, err := parseRange(syncFrom, syncTo)
	if err != nil {
		return err
	}
	services, _, closeStore, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	status, err := services.Sync.GetSyncStatus(cmd.Context(), args[0], from, to)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), status)
}
