package reports

import (
	"fmt"
	"time"
)

// DateRange is an inclusive UTC window bounding which movements a
// report considers.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Layouts accepted for from/to query values. RFC3339 covers what the
// frontend sends for exports; the date-only form is what the range
// pickers produce.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

func parseDateInput(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &QueryError{kind: ErrInvalidDate, msg: fmt.Sprintf("Invalid date: %s", s)}
}

// ResolveDateRange normalizes optional from/to values into an inclusive
// UTC day range. "to" defaults to the end of the current day and "from"
// to 29 days before it, a trailing 30-day window that keeps unbounded
// report queries in check. The bounds are validated, never swapped.
func ResolveDateRange(fromRaw, toRaw string, now time.Time) (DateRange, error) {
	to := now
	if toRaw != "" {
		parsed, err := parseDateInput(toRaw)
		if err != nil {
			return DateRange{}, err
		}
		to = parsed
	}
	resolvedTo := endOfDayUTC(to)

	var resolvedFrom time.Time
	if fromRaw != "" {
		parsed, err := parseDateInput(fromRaw)
		if err != nil {
			return DateRange{}, err
		}
		resolvedFrom = startOfDayUTC(parsed)
	} else {
		resolvedFrom = startOfDayUTC(resolvedTo).AddDate(0, 0, -29)
	}

	if resolvedFrom.After(resolvedTo) {
		return DateRange{}, &QueryError{kind: ErrInvalidRange, msg: `"from" cannot be after "to"`}
	}

	return DateRange{From: resolvedFrom, To: resolvedTo}, nil
}

func startOfDayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOfDayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, 999000000, time.UTC)
}
