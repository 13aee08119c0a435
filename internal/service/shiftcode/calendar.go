package shiftcode

import "time"

const dateLayout = "2006-01-02"

// dateForDay builds the calendar date for a 1-based day of month.
// ok is false for dates that do not exist, such as February 30.
func dateForDay(year int, month time.Month, day int) (time.Time, bool) {
	if day < 1 || day > 31 || month < time.January || month > time.December {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Month() != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}
