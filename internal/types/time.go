package types

import "time"

const DATE_LAYOUT = "2006-01-02"

func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseDateOrTime accepts either an RFC3339 timestamp or a plain
// YYYY-MM-DD date (interpreted as UTC midnight).
func ParseDateOrTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation(DATE_LAYOUT, s, time.UTC)
}
