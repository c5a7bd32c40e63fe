package models

import (
	"errors"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDateRange = errors.New("invalid date range")

// DateRange is a closed interval of calendar dates.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange truncates both ends to the day and rejects start > end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: TruncateDay(start), End: TruncateDay(end)}
	if r.Start.After(r.End) {
		return DateRange{}, fmt.Errorf("%w: start %s is after end %s",
			ErrInvalidDateRange, r.Start.Format(DateLayout), r.End.Format(DateLayout))
	}
	return r, nil
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// TruncateDay drops the time of day, keeping the calendar date in UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether d falls inside the range, both ends inclusive.
func (r DateRange) Contains(d time.Time) bool {
	d = TruncateDay(d)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Clamp bounds both ends to the given extent. A range disjoint from the
// extent is returned unchanged so that it selects no records.
func (r DateRange) Clamp(bounds DateRange) DateRange {
	if r.End.Before(bounds.Start) || r.Start.After(bounds.End) {
		return r
	}
	out := r
	if out.Start.Before(bounds.Start) {
		out.Start = bounds.Start
	}
	if out.End.After(bounds.End) {
		out.End = bounds.End
	}
	return out
}

// String renders the range as "start_end", used for cache keys and file names.
func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + "_" + r.End.Format(DateLayout)
}
