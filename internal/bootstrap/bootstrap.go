// Package bootstrap assembles stores and services from configuration for the
// HTTP server and the CLI.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/roster-backend-go/internal/config"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/shiftcode"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/grid"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/remote"
	"github.com/cmlabs-hris/roster-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/roster-backend-go/internal/repository/sqlite"
	scheduleService "github.com/cmlabs-hris/roster-backend-go/internal/service/schedule"
	"github.com/cmlabs-hris/roster-backend-go/internal/service/schedulesync"
	shiftcodeService "github.com/cmlabs-hris/roster-backend-go/internal/service/shiftcode"
)

// Store bundles the repositories of one backing database.
type Store struct {
	Employees employee.EmployeeRepository
	Entries   schedule.EntryRepository
	Stats     stats.DailyShiftStatRepository
	Durations stats.ShiftDurationRepository

	close func()
}

// OpenStore connects to the database selected by STORE_DRIVER. The SQLite
// schema is created on open; PostgreSQL expects migrations/ to be applied.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Database.Driver {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return &Store{
			Employees: postgresql.NewEmployeeRepository(db),
			Entries:   postgresql.NewScheduleEntryRepository(db),
			Stats:     postgresql.NewDailyShiftStatRepository(db),
			Durations: postgresql.NewShiftDurationRepository(db),
			close:     db.Close,
		}, nil

	case config.StoreDriverSQLite:
		db, err := database.NewSQLiteDB(cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return &Store{
			Employees: sqlite.NewEmployeeRepository(db),
			Entries:   sqlite.NewScheduleEntryRepository(db),
			Stats:     sqlite.NewDailyShiftStatRepository(db),
			Durations: sqlite.NewShiftDurationRepository(db),
			close: func() {
				if err := db.Close(); err != nil {
					slog.Warn("Failed to close sqlite database", "error", err)
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Database.Driver)
	}
}

func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// SeedDurations writes the configured standard shift durations.
func (s *Store) SeedDurations(ctx context.Context, durations []stats.ShiftDuration) error {
	if len(durations) == 0 {
		return nil
	}
	if err := s.Durations.Upsert(ctx, durations); err != nil {
		return fmt.Errorf("failed to seed shift durations: %w", err)
	}
	slog.Info("Shift durations seeded", "count", len(durations))
	return nil
}

// Services holds the wired application services.
type Services struct {
	Facts  shiftcode.FactsService
	Lookup schedule.LookupService
	Sync   stats.SyncService
}

// NewServices builds the classifiers and the services on top of store.
// Remote fallback and sync are disabled when REMOTE_BASE_URL is empty.
func NewServices(cfg *config.Config, tables config.Tables, store *Store) *Services {
	leave := shiftcodeService.NewLeaveClassifier()
	overtime := shiftcodeService.NewOvertimeClassifier(tables.Assessments)
	rShift := shiftcodeService.NewRShiftClassifier()
	aggregator := shiftcodeService.NewAggregator(leave, overtime, rShift)

	var source schedule.RemoteSource
	if cfg.Remote.BaseURL != "" {
		source = remote.NewClient(cfg.Remote)
	} else {
		slog.Warn("REMOTE_BASE_URL not set, remote fallback and sync disabled")
	}

	lookup := scheduleService.NewLookupService(store.Employees, store.Entries, source, scheduleService.LookupConfig{
		FallbackWindowDays: cfg.Lookup.FallbackWindowDays,
		RemoteTimeout:      cfg.Remote.Timeout,
		Location:           cfg.Location(),
	})
	sync := schedulesync.NewSyncService(
		store.Employees,
		store.Entries,
		store.Stats,
		store.Durations,
		source,
		schedulesync.Classifiers{Leave: leave, Overtime: overtime, RShift: rShift},
		schedulesync.Config{
			Concurrency:            cfg.Sync.Concurrency,
			MaxConsecutiveFailures: cfg.Sync.MaxConsecutiveFailures,
			RemoteTimeout:          cfg.Remote.Timeout,
		},
	)

	return &Services{
		Facts:  shiftcodeService.NewFactsService(aggregator, grid.NewParser()),
		Lookup: lookup,
		Sync:   sync,
	}
}
