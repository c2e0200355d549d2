package report

import (
	"time"

	"github.com/sched-tools/ops-atlas/pkg/models/domain"
)

// ResolveRange maps a range kind to the closed interval [start, end] of
// the calendar period containing now, in now's location. Weeks start on
// Sunday. RangeCustom parses the supplied ISO dates and silently falls
// back to the current month when either is absent or malformed; an
// unrecognized kind also resolves to the current month.
func ResolveRange(kind domain.DateRangeKind, startDate, endDate string, now time.Time) domain.DateRange {
	switch kind {
	case domain.RangeToday:
		return domain.DateRange{Start: startOfDay(now), End: endOfDay(now)}
	case domain.RangeWeek:
		weekStart := startOfDay(now.AddDate(0, 0, -int(now.Weekday())))
		return domain.DateRange{Start: weekStart, End: endOfDay(weekStart.AddDate(0, 0, 6))}
	case domain.RangeMonth:
		return monthRange(now)
	case domain.RangeQuarter:
		quarterMonth := time.Month((int(now.Month())-1)/3*3 + 1)
		start := time.Date(now.Year(), quarterMonth, 1, 0, 0, 0, 0, now.Location())
		return domain.DateRange{Start: start, End: endOfDay(start.AddDate(0, 3, -1))}
	case domain.RangeYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return domain.DateRange{Start: start, End: endOfDay(time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location()))}
	case domain.RangeCustom:
		r := monthRange(now)
		if start, ok := parseISODate(startDate, now.Location()); ok {
			r.Start = start
		}
		if end, ok := parseISODate(endDate, now.Location()); ok {
			r.End = end
		}
		return r
	default:
		return monthRange(now)
	}
}

// InRange reports whether the ISO timestamp falls inside the interval,
// inclusive of both boundaries. Malformed values are simply out of
// range, never an error.
func InRange(value string, r domain.DateRange) bool {
	t, ok := parseISOInstant(value, r.Start.Location())
	if !ok {
		return false
	}
	return !t.Before(r.Start) && !t.After(r.End)
}

func monthRange(now time.Time) domain.DateRange {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return domain.DateRange{Start: start, End: endOfDay(start.AddDate(0, 1, -1))}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// parseISODate accepts a plain calendar date.
func parseISODate(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseISOInstant accepts the timestamp layouts the console writes:
// RFC 3339 with or without offset, and plain dates.
func parseISOInstant(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
