package types

import (
	"fmt"
	"time"
)

// DISPLAY_DATE_LAYOUT renders dates the way the pricing page shows them ex Apr 10, 2023
const DISPLAY_DATE_LAYOUT = "Jan 2, 2006"

// NextRenewalDate returns the renewal date one billing cycle after from.
// Month arithmetic clamps to the last day of the target month, so Jan 31
// renews on Feb 28 (Feb 29 in leap years) instead of rolling into March.
func NextRenewalDate(frequency PaymentFrequency, from time.Time) (time.Time, error) {
	switch frequency {
	case PaymentFrequencyMonthly:
		return AddClampedDate(from, 0, 1, 0), nil
	case PaymentFrequencyYearly:
		return AddClampedDate(from, 1, 0, 0), nil
	default:
		return from, fmt.Errorf("invalid payment frequency: %s", frequency)
	}
}

// PreviousRenewalDate returns the renewal date one billing cycle before from,
// using the same clamping as NextRenewalDate.
func PreviousRenewalDate(frequency PaymentFrequency, from time.Time) (time.Time, error) {
	switch frequency {
	case PaymentFrequencyMonthly:
		return AddClampedDate(from, 0, -1, 0), nil
	case PaymentFrequencyYearly:
		return AddClampedDate(from, -1, 0, 0), nil
	default:
		return from, fmt.Errorf("invalid payment frequency: %s", frequency)
	}
}

// FormatDisplayDate formats t for display only. Never parse the result back
// for further arithmetic.
func FormatDisplayDate(t time.Time) string {
	return t.Format(DISPLAY_DATE_LAYOUT)
}

// AddClampedDate adds years and months to t, clamping the day to the last
// valid day of the resulting month, then adds days. Clock and location of t
// are preserved.
func AddClampedDate(t time.Time, years, months, days int) time.Time {
	y, m, d := t.Date()
	h, min, sec := t.Clock()

	newY := y + years
	newM := time.Month(int(m) + months)

	for newM > 12 {
		newM -= 12
		newY++
	}
	for newM < 1 {
		newM += 12
		newY--
	}

	lastDay := DaysInMonth(newY, newM, t.Location())
	if d > lastDay {
		d = lastDay
	}

	clamped := time.Date(newY, newM, d, h, min, sec, t.Nanosecond(), t.Location())
	if days != 0 {
		clamped = clamped.AddDate(0, 0, days)
	}
	return clamped
}

// DaysInMonth returns the number of days in month of year
func DaysInMonth(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
