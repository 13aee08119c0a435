package stats

import (
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

// SyncResult reports one (department, date) sync.
type SyncResult struct {
	RunID        uuid.UUID `json:"run_id"`
	Department   string    `json:"department"`
	Date         string    `json:"date"`
	Fetched      int       `json:"fetched"`
	Processed    int       `json:"processed"`
	Skipped      int       `json:"skipped"`
	Errors       []string  `json:"errors"`
	RemoteFailed bool      `json:"remote_failed"`
}

// RangeSyncResult reports a sequential multi-day sync for one department.
type RangeSyncResult struct {
	Department       string       `json:"department"`
	From             string       `json:"from"`
	To               string       `json:"to"`
	Days             []SyncResult `json:"days"`
	TotalProcessed   int          `json:"total_processed"`
	TotalSkipped     int          `json:"total_skipped"`
	SucceededDays    int          `json:"succeeded_days"`
	FailedDays       int          `json:"failed_days"`
	NotAttemptedDays []string     `json:"not_attempted_days"`
	Aborted          bool         `json:"aborted"`
}

// SyncAllResult reports a single date synced across every department.
type SyncAllResult struct {
	Date           string       `json:"date"`
	Departments    []SyncResult `json:"departments"`
	TotalProcessed int          `json:"total_processed"`
	TotalSkipped   int          `json:"total_skipped"`
	FailedCount    int          `json:"failed_count"`
}

type SyncStatus struct {
	Department      string   `json:"department"`
	From            string   `json:"from"`
	To              string   `json:"to"`
	TotalDays       int      `json:"total_days"`
	ProcessedDays   int      `json:"processed_days"`
	UnprocessedDays int      `json:"unprocessed_days"`
	ProgressPercent float64  `json:"progress_percent"`
	Unprocessed     []string `json:"unprocessed"`
}

type SyncRangeRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (r *SyncRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	_, okFrom := validator.IsValidDate(r.From)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}
	_, okTo := validator.IsValidDate(r.To)
	if !okTo {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}
	if okFrom && okTo {
		if _, _, ok := validator.IsValidDateRange(r.From, r.To); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must not be before from",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
