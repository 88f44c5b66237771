// Package validity computes enrollment expiration from a course's validity
// period policy.
package validity

import (
	"time"

	"github.com/kaan/eduflow/internal/app/models"
)

// ComputeExpiry returns the instant an enrollment purchased at from expires
// under the given policy, or nil for unlimited access.
//
// Days and weeks are exact day counts (a week is exactly 7 days). Months and
// years advance the calendar and clamp to the last day of the target month
// when the source day does not exist there (Jan 31 + 1 month = Feb 29 in a
// leap year, Feb 28 otherwise).
func ComputeExpiry(policy models.ValidityPeriod, from time.Time) *time.Time {
	if policy.Unlimited() {
		return nil
	}

	var expires time.Time
	switch policy.Kind {
	case models.ValidityDays:
		expires = from.AddDate(0, 0, policy.Duration)
	case models.ValidityWeeks:
		expires = from.AddDate(0, 0, policy.Duration*7)
	case models.ValidityMonths:
		expires = addMonthsClamped(from, policy.Duration)
	case models.ValidityYears:
		expires = addMonthsClamped(from, policy.Duration*12)
	default:
		return nil
	}

	return &expires
}

// IsExpired reports whether an enrollment with the given expiry is past due.
// A nil expiry never expires.
func IsExpired(expiresAt *time.Time, now time.Time) bool {
	if expiresAt == nil {
		return false
	}
	return now.After(*expiresAt)
}

// addMonthsClamped advances t by n calendar months, clamping the day of
// month instead of letting it overflow into the following month the way
// time.AddDate does.
func addMonthsClamped(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	// First of the target month, then clamp the day.
	first := time.Date(year, month+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
