package schedulesync

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/shiftcode"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/validator"
	scheduleService "github.com/cmlabs-hris/roster-backend-go/internal/service/schedule"
	shiftcodeService "github.com/cmlabs-hris/roster-backend-go/internal/service/shiftcode"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultConcurrency            = 4
	defaultMaxConsecutiveFailures = 3
	defaultRemoteTimeout          = 30 * time.Second
	// MaxRangeDays bounds a single range or status request.
	MaxRangeDays = 366
)

type Config struct {
	Concurrency            int
	MaxConsecutiveFailures int
	RemoteTimeout          time.Duration
}

// Classifiers annotates synced shifts with attendance facts.
type Classifiers struct {
	Leave    shiftcode.LeaveClassifier
	Overtime shiftcode.OvertimeClassifier
	RShift   shiftcode.RShiftClassifier
}

type syncServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	entryRepo    schedule.EntryRepository
	statRepo     stats.DailyShiftStatRepository
	durationRepo stats.ShiftDurationRepository
	remote       schedule.RemoteSource
	classifiers  Classifiers
	cfg          Config
}

func NewSyncService(
	employeeRepo employee.EmployeeRepository,
	entryRepo schedule.EntryRepository,
	statRepo stats.DailyShiftStatRepository,
	durationRepo stats.ShiftDurationRepository,
	remote schedule.RemoteSource,
	classifiers Classifiers,
	cfg Config,
) stats.SyncService {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.MaxConsecutiveFailures <= 0 {
		cfg.MaxConsecutiveFailures = defaultMaxConsecutiveFailures
	}
	if cfg.RemoteTimeout <= 0 {
		cfg.RemoteTimeout = defaultRemoteTimeout
	}
	return &syncServiceImpl{
		employeeRepo: employeeRepo,
		entryRepo:    entryRepo,
		statRepo:     statRepo,
		durationRepo: durationRepo,
		remote:       remote,
		classifiers:  classifiers,
		cfg:          cfg,
	}
}

func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func validateRange(departmentCode string, from, to time.Time) (time.Time, time.Time, error) {
	if !validator.IsValidDepartmentCode(departmentCode) {
		return time.Time{}, time.Time{}, stats.ErrInvalidDepartment
	}
	from, to = calendarDate(from), calendarDate(to)
	if to.Before(from) {
		return time.Time{}, time.Time{}, stats.ErrInvalidDateRange
	}
	if int(to.Sub(from).Hours()/24)+1 > MaxRangeDays {
		return time.Time{}, time.Time{}, stats.ErrDateRangeTooLarge
	}
	return from, to, nil
}

// SyncDateForDepartment implements stats.SyncService.
func (s *syncServiceImpl) SyncDateForDepartment(ctx context.Context, departmentCode string, date time.Time) (stats.SyncResult, error) {
	if !validator.IsValidDepartmentCode(departmentCode) {
		return stats.SyncResult{}, stats.ErrInvalidDepartment
	}
	date = calendarDate(date)
	dateStr := date.Format(time.DateOnly)

	result := stats.SyncResult{
		RunID:      uuid.New(),
		Department: departmentCode,
		Date:       dateStr,
		Errors:     []string{},
	}

	if s.remote == nil {
		result.RemoteFailed = true
		result.Errors = append(result.Errors, schedule.ErrRemoteNotConfigured.Error())
		return result, nil
	}

	remoteCtx, cancel := context.WithTimeout(ctx, s.cfg.RemoteTimeout)
	rows, err := s.remote.FetchSchedules(remoteCtx, departmentCode, date, date)
	cancel()
	if err != nil {
		slog.Warn("Remote schedule fetch failed during sync",
			"run_id", result.RunID,
			"department", departmentCode,
			"date", dateStr,
			"error", err)
		result.RemoteFailed = true
		result.Errors = append(result.Errors, fmt.Sprintf("remote: %v", err))
		return result, nil
	}
	result.Fetched = len(rows)

	durations, err := s.durationRepo.GetByDepartment(ctx, departmentCode)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("shift durations: %v", err))
		durations = map[string]int{}
	}

	for _, row := range rows {
		if row.Date != dateStr || row.ShiftCode == "" || row.EmployeeCode == "" {
			result.Skipped++
			continue
		}

		if _, err := s.employeeRepo.GetByEmployeeCode(ctx, row.EmployeeCode); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("employee %s: %v", row.EmployeeCode, err))
			continue
		}

		entries := scheduleService.ToEntries(departmentCode, []schedule.RemoteShift{row})
		if _, err := s.entryRepo.Upsert(ctx, entries); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("schedule entry %s: %v", row.EmployeeCode, err))
			continue
		}

		stat := s.buildStat(row.EmployeeCode, departmentCode, date, row.ShiftCode, durations)
		stat.SyncRunID = result.RunID
		if err := s.statRepo.Upsert(ctx, stat); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("daily stat %s: %v", row.EmployeeCode, err))
			continue
		}

		result.Processed++
	}

	slog.Info("Department date synced",
		"run_id", result.RunID,
		"department", departmentCode,
		"date", dateStr,
		"fetched", result.Fetched,
		"processed", result.Processed,
		"skipped", result.Skipped,
		"errors", len(result.Errors))

	return result, nil
}

// buildStat derives the day's minutes and flags. Standard minutes come from the base
// code with any overtime marker removed; an R-shift is timed by the code after "/".
// Codes missing from the duration table count as zero standard minutes.
func (s *syncServiceImpl) buildStat(employeeCode, departmentCode string, date time.Time, code string, durations map[string]int) stats.DailyShiftStat {
	normalized := shiftcodeService.Normalize(code)
	base := shiftcodeService.StripOvertimeMarker(normalized)

	stat := stats.DailyShiftStat{
		EmployeeCode:   employeeCode,
		DepartmentCode: departmentCode,
		Date:           date,
		ShiftCode:      normalized,
		BaseCode:       base,
	}

	stat.IsRShift = s.classifiers.RShift.IsRShift(code)
	stat.IsNationalHoliday = s.classifiers.RShift.IsNationalHoliday(code)
	stat.LeaveKind, stat.IsLeave = s.classifiers.Leave.LeaveKind(code)

	timed := base
	if stat.IsRShift {
		if _, after, ok := strings.Cut(base, "/"); ok {
			timed = after
		}
	}
	stat.StandardMinutes = durations[timed]

	if hours, ok := s.classifiers.Overtime.ExtractOvertimeHours(code); ok {
		stat.OvertimeMinutes = hours * 60
	}
	stat.TotalMinutes = stat.StandardMinutes + stat.OvertimeMinutes

	return stat
}

// SyncDateRangeForDepartment implements stats.SyncService.
// Days run in order. After MaxConsecutiveFailures remote failures in a row the
// remaining days are reported as not attempted.
func (s *syncServiceImpl) SyncDateRangeForDepartment(ctx context.Context, departmentCode string, from, to time.Time) (stats.RangeSyncResult, error) {
	from, to, err := validateRange(departmentCode, from, to)
	if err != nil {
		return stats.RangeSyncResult{}, err
	}

	result := stats.RangeSyncResult{
		Department:       departmentCode,
		From:             from.Format(time.DateOnly),
		To:               to.Format(time.DateOnly),
		Days:             []stats.SyncResult{},
		NotAttemptedDays: []string{},
	}

	consecutiveFailures := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if !result.Aborted && ctx.Err() != nil {
			slog.Warn("Range sync cancelled", "department", departmentCode, "at", d.Format(time.DateOnly), "error", ctx.Err())
			result.Aborted = true
		}
		if result.Aborted {
			result.NotAttemptedDays = append(result.NotAttemptedDays, d.Format(time.DateOnly))
			continue
		}

		day, err := s.SyncDateForDepartment(ctx, departmentCode, d)
		if err != nil {
			return stats.RangeSyncResult{}, err
		}
		result.Days = append(result.Days, day)
		result.TotalProcessed += day.Processed
		result.TotalSkipped += day.Skipped

		if !day.RemoteFailed {
			consecutiveFailures = 0
			result.SucceededDays++
			continue
		}

		result.FailedDays++
		consecutiveFailures++
		if consecutiveFailures >= s.cfg.MaxConsecutiveFailures {
			slog.Warn("Range sync aborted after consecutive remote failures",
				"department", departmentCode,
				"failures", consecutiveFailures,
				"last_date", day.Date)
			result.Aborted = true
		}
	}

	return result, nil
}

// SyncAllDepartments implements stats.SyncService.
func (s *syncServiceImpl) SyncAllDepartments(ctx context.Context, date time.Time) (stats.SyncAllResult, error) {
	departments, err := s.employeeRepo.ListDepartmentCodes(ctx)
	if err != nil {
		return stats.SyncAllResult{}, fmt.Errorf("failed to list departments: %w", err)
	}

	results := make([]stats.SyncResult, len(departments))
	var mu sync.Mutex
	var invalid []string

	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)

	for i, department := range departments {
		i, department := i, department
		g.Go(func() error {
			res, err := s.SyncDateForDepartment(ctx, department, date)
			if err != nil {
				mu.Lock()
				invalid = append(invalid, department)
				mu.Unlock()
				res = stats.SyncResult{
					Department:   department,
					Date:         calendarDate(date).Format(time.DateOnly),
					Errors:       []string{err.Error()},
					RemoteFailed: true,
				}
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	if len(invalid) > 0 {
		slog.Warn("Skipped departments with invalid codes", "departments", invalid)
	}

	all := stats.SyncAllResult{
		Date:        calendarDate(date).Format(time.DateOnly),
		Departments: results,
	}
	for _, res := range results {
		all.TotalProcessed += res.Processed
		all.TotalSkipped += res.Skipped
		if res.RemoteFailed {
			all.FailedCount++
		}
	}
	return all, nil
}

// GetUnprocessedDates implements stats.SyncService.
func (s *syncServiceImpl) GetUnprocessedDates(ctx context.Context, departmentCode string, from, to time.Time) ([]string, error) {
	from, to, err := validateRange(departmentCode, from, to)
	if err != nil {
		return nil, err
	}

	processed, err := s.statRepo.ListProcessedDates(ctx, departmentCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load processed dates: %w", err)
	}

	seen := make(map[string]struct{}, len(processed))
	for _, d := range processed {
		seen[d.Format(time.DateOnly)] = struct{}{}
	}

	unprocessed := []string{}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		if _, ok := seen[key]; !ok {
			unprocessed = append(unprocessed, key)
		}
	}
	return unprocessed, nil
}

// GetSyncStatus implements stats.SyncService.
func (s *syncServiceImpl) GetSyncStatus(ctx context.Context, departmentCode string, from, to time.Time) (stats.SyncStatus, error) {
	unprocessed, err := s.GetUnprocessedDates(ctx, departmentCode, from, to)
	if err != nil {
		return stats.SyncStatus{}, err
	}
	from, to = calendarDate(from), calendarDate(to)

	total := int(to.Sub(from).Hours()/24) + 1
	processed := total - len(unprocessed)

	status := stats.SyncStatus{
		Department:      departmentCode,
		From:            from.Format(time.DateOnly),
		To:              to.Format(time.DateOnly),
		TotalDays:       total,
		ProcessedDays:   processed,
		UnprocessedDays: len(unprocessed),
		Unprocessed:     unprocessed,
	}
	if total > 0 {
		status.ProgressPercent = math.Round(float64(processed)/float64(total)*10000) / 100
	}
	return status, nil
}
