package schedule

import "time"

// Source tags where a lookup result came from.
type Source string

const (
	SourceLocal          Source = "local"
	SourceRemoteFallback Source = "remote-fallback"
)

// Entry is one persisted shift assignment. It is unique on
// (EmployeeCode, DepartmentCode, Date) and only ever upserted.
type Entry struct {
	EmployeeCode   string
	DepartmentCode string
	Date           time.Time
	ShiftCode      string
	UpdatedAt      time.Time
}

// RemoteShift is a row returned by the upstream schedule source.
type RemoteShift struct {
	EmployeeCode string `json:"employee_code"`
	Date         string `json:"date"`
	ShiftCode    string `json:"shift_code"`
}

// LookupResult holds the shift codes for an event date and the two days before it.
type LookupResult struct {
	EmployeeID    string  `json:"employee_id"`
	EventDate     string  `json:"event_date"`
	TwoDaysBefore *string `json:"two_days_before"`
	OneDayBefore  *string `json:"one_day_before"`
	EventDay      *string `json:"event_day"`
	Source        Source  `json:"source"`
}

// IsEmpty reports whether none of the three days carry a shift code.
func (r LookupResult) IsEmpty() bool {
	return r.TwoDaysBefore == nil && r.OneDayBefore == nil && r.EventDay == nil
}
