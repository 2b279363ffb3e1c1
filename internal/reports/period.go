package reports

import (
	"fmt"
	"time"
)

// Group selects the bucket granularity for summary points.
type Group string

const (
	GroupDay   Group = "day"
	GroupMonth Group = "month"
)

// ParseGroup normalizes a raw group value. Absent input defaults to day
// granularity; anything other than "day" or "month" is rejected.
func ParseGroup(s string) (Group, error) {
	switch s {
	case "":
		return GroupDay, nil
	case string(GroupDay):
		return GroupDay, nil
	case string(GroupMonth):
		return GroupMonth, nil
	}
	return "", &QueryError{kind: ErrInvalidGroup, msg: fmt.Sprintf("Invalid group value: %s", s)}
}

// FormatPeriod maps a timestamp to its period key, computed in UTC.
// Keys are zero-padded so lexicographic order equals chronological order.
func FormatPeriod(t time.Time, group Group) string {
	t = t.UTC()
	if group == GroupMonth {
		return t.Format("2006-01")
	}
	return t.Format("2006-01-02")
}
