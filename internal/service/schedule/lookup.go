package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/schedule"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultFallbackWindowDays = 7
	defaultRemoteTimeout      = 10 * time.Second
	batchLookupConcurrency    = 8
)

// LookupConfig tunes the fallback policy. Zero values pick the defaults;
// a nil Now uses time.Now and a nil Location uses UTC.
type LookupConfig struct {
	FallbackWindowDays int
	RemoteTimeout      time.Duration
	Location           *time.Location
	Now                func() time.Time
}

type lookupServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	entryRepo    schedule.EntryRepository
	remote       schedule.RemoteSource

	windowDays    int
	remoteTimeout time.Duration
	location      *time.Location
	now           func() time.Time

	inflight singleflight.Group
}

// NewLookupService wires the lookup policy. remote may be nil, which disables the fallback.
func NewLookupService(
	employeeRepo employee.EmployeeRepository,
	entryRepo schedule.EntryRepository,
	remote schedule.RemoteSource,
	cfg LookupConfig,
) schedule.LookupService {
	s := &lookupServiceImpl{
		employeeRepo:  employeeRepo,
		entryRepo:     entryRepo,
		remote:        remote,
		windowDays:    cfg.FallbackWindowDays,
		remoteTimeout: cfg.RemoteTimeout,
		location:      cfg.Location,
		now:           cfg.Now,
	}
	if s.windowDays <= 0 {
		s.windowDays = DefaultFallbackWindowDays
	}
	if s.remoteTimeout <= 0 {
		s.remoteTimeout = defaultRemoteTimeout
	}
	if s.location == nil {
		s.location = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// IsFallbackEligible reports whether eventDate is recent enough for a remote fetch:
// at most windowDays calendar days before today. Future dates are always eligible.
func IsFallbackEligible(today, eventDate time.Time, windowDays int) bool {
	elapsed := calendarDate(today).Sub(calendarDate(eventDate))
	return int(elapsed.Hours()/24) <= windowDays
}

// calendarDate drops the clock and zone, keeping the wall-clock date.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func lookupDates(eventDate time.Time) []time.Time {
	day := calendarDate(eventDate)
	return []time.Time{day.AddDate(0, 0, -2), day.AddDate(0, 0, -1), day}
}

func (s *lookupServiceImpl) today() time.Time {
	return calendarDate(s.now().In(s.location))
}

// LookupShifts implements schedule.LookupService. Only an unknown employee is an error;
// a failed store read counts as a miss. With forceRemote outside the fallback window,
// or when the remote yields nothing, the stored shifts are returned.
func (s *lookupServiceImpl) LookupShifts(ctx context.Context, employeeID string, eventDate time.Time, forceRemote bool) (schedule.LookupResult, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return schedule.LookupResult{}, err
	}

	dates := lookupDates(eventDate)

	if !forceRemote {
		if local := s.readLocalOrEmpty(ctx, emp, dates); !local.IsEmpty() {
			return local, nil
		}
	}

	if s.remote == nil || !IsFallbackEligible(s.today(), dates[2], s.windowDays) {
		if forceRemote {
			return s.readLocalOrEmpty(ctx, emp, dates), nil
		}
		return emptyResult(emp.ID, dates), nil
	}

	remote := s.fetchRemote(ctx, emp, dates)
	if !remote.IsEmpty() {
		return remote, nil
	}

	if forceRemote {
		return s.readLocalOrEmpty(ctx, emp, dates), nil
	}
	return emptyResult(emp.ID, dates), nil
}

func emptyResult(employeeID string, dates []time.Time) schedule.LookupResult {
	return schedule.LookupResult{
		EmployeeID: employeeID,
		EventDate:  dates[2].Format(time.DateOnly),
		Source:     schedule.SourceLocal,
	}
}

func codePtr(code string) *string {
	if code == "" {
		return nil
	}
	return &code
}

func (s *lookupServiceImpl) readLocal(ctx context.Context, emp employee.Employee, dates []time.Time) (schedule.LookupResult, error) {
	entries, err := s.entryRepo.GetByDates(ctx, emp.EmployeeCode, emp.DepartmentCode, dates)
	if err != nil {
		return schedule.LookupResult{}, fmt.Errorf("failed to read local schedule for %s: %w", emp.EmployeeCode, err)
	}

	result := emptyResult(emp.ID, dates)
	result.TwoDaysBefore = codePtr(entries[dates[0].Format(time.DateOnly)].ShiftCode)
	result.OneDayBefore = codePtr(entries[dates[1].Format(time.DateOnly)].ShiftCode)
	result.EventDay = codePtr(entries[dates[2].Format(time.DateOnly)].ShiftCode)
	return result, nil
}

func (s *lookupServiceImpl) readLocalOrEmpty(ctx context.Context, emp employee.Employee, dates []time.Time) schedule.LookupResult {
	result, err := s.readLocal(ctx, emp, dates)
	if err != nil {
		slog.Warn("Local schedule read failed, treating as miss",
			"employee_code", emp.EmployeeCode,
			"department", emp.DepartmentCode,
			"event_date", dates[2].Format(time.DateOnly),
			"error", err)
		return emptyResult(emp.ID, dates)
	}
	return result
}

// fetchRemote pulls the department's period, persists it, and builds the result from the
// response itself. Concurrent callers for the same department and period share one call.
// Any failure is logged and yields an empty result.
func (s *lookupServiceImpl) fetchRemote(ctx context.Context, emp employee.Employee, dates []time.Time) schedule.LookupResult {
	from, to := dates[0], dates[2]
	key := emp.DepartmentCode + "|" + from.Format(time.DateOnly) + "|" + to.Format(time.DateOnly)

	v, err, _ := s.inflight.Do(key, func() (interface{}, error) {
		remoteCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.remoteTimeout)
		defer cancel()

		rows, err := s.remote.FetchSchedules(remoteCtx, emp.DepartmentCode, from, to)
		if err != nil {
			return nil, err
		}
		s.persist(remoteCtx, emp.DepartmentCode, rows)
		return rows, nil
	})
	if err != nil {
		slog.Warn("Remote schedule fetch failed",
			"department", emp.DepartmentCode,
			"employee_code", emp.EmployeeCode,
			"from", from.Format(time.DateOnly),
			"to", to.Format(time.DateOnly),
			"error", err)
		return emptyResult(emp.ID, dates)
	}

	byDate := make(map[string]string, len(dates))
	for _, row := range v.([]schedule.RemoteShift) {
		if row.EmployeeCode == emp.EmployeeCode {
			byDate[row.Date] = row.ShiftCode
		}
	}

	result := emptyResult(emp.ID, dates)
	result.TwoDaysBefore = codePtr(byDate[dates[0].Format(time.DateOnly)])
	result.OneDayBefore = codePtr(byDate[dates[1].Format(time.DateOnly)])
	result.EventDay = codePtr(byDate[dates[2].Format(time.DateOnly)])
	if result.IsEmpty() {
		slog.Info("Remote schedule had no shifts for employee",
			"department", emp.DepartmentCode,
			"employee_code", emp.EmployeeCode,
			"event_date", result.EventDate)
		return result
	}
	result.Source = schedule.SourceRemoteFallback
	return result
}

// persist writes every usable row of the department. A write failure is logged only.
func (s *lookupServiceImpl) persist(ctx context.Context, departmentCode string, rows []schedule.RemoteShift) {
	entries := ToEntries(departmentCode, rows)
	if len(entries) == 0 {
		return
	}
	if _, err := s.entryRepo.Upsert(ctx, entries); err != nil {
		slog.Warn("Failed to persist remote schedule, serving remote result directly",
			"department", departmentCode,
			"rows", len(entries),
			"error", err)
	}
}

// ToEntries converts remote rows into storable entries, dropping rows with no code or a bad date.
func ToEntries(departmentCode string, rows []schedule.RemoteShift) []schedule.Entry {
	entries := make([]schedule.Entry, 0, len(rows))
	for _, row := range rows {
		if row.EmployeeCode == "" || row.ShiftCode == "" {
			continue
		}
		date, err := time.Parse(time.DateOnly, row.Date)
		if err != nil {
			continue
		}
		entries = append(entries, schedule.Entry{
			EmployeeCode:   row.EmployeeCode,
			DepartmentCode: departmentCode,
			Date:           date,
			ShiftCode:      row.ShiftCode,
		})
	}
	return entries
}

// GetShiftByDate implements schedule.LookupService.
func (s *lookupServiceImpl) GetShiftByDate(ctx context.Context, employeeID string, date time.Time) (*string, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	entry, err := s.entryRepo.GetByKey(ctx, emp.EmployeeCode, emp.DepartmentCode, calendarDate(date))
	if err != nil {
		if !errors.Is(err, schedule.ErrEntryNotFound) {
			slog.Warn("Failed to read shift, returning none",
				"employee_code", emp.EmployeeCode,
				"department", emp.DepartmentCode,
				"date", calendarDate(date).Format(time.DateOnly),
				"error", err)
		}
		return nil, nil
	}
	return codePtr(entry.ShiftCode), nil
}

// BatchLookup implements schedule.LookupService.
func (s *lookupServiceImpl) BatchLookup(ctx context.Context, employeeIDs []string, eventDate time.Time) map[string]schedule.LookupResult {
	dates := lookupDates(eventDate)
	results := make(map[string]schedule.LookupResult, len(employeeIDs))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(batchLookupConcurrency)

	for _, id := range employeeIDs {
		id := id
		g.Go(func() error {
			result, err := s.LookupShifts(ctx, id, eventDate, false)
			if err != nil {
				if !errors.Is(err, employee.ErrEmployeeNotFound) {
					slog.Warn("Batch lookup failed for employee", "employee_id", id, "error", err)
				}
				result = emptyResult(id, dates)
			}

			mu.Lock()
			results[id] = result
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}
