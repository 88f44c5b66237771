package validity

import (
	"testing"
	"time"

	"github.com/kaan/eduflow/internal/app/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestComputeExpiryUnlimited(t *testing.T) {
	cases := []models.ValidityPeriod{
		{Kind: models.ValidityNone},
		{Kind: models.ValidityNone, Duration: 5},
		{Kind: models.ValidityMonths, Duration: 0},
		{Kind: models.ValidityDays, Duration: -1},
	}
	for _, policy := range cases {
		if got := ComputeExpiry(policy, date(2024, time.January, 15)); got != nil {
			t.Errorf("ComputeExpiry(%+v) = %v, want nil", policy, got)
		}
	}
}

func TestComputeExpiryDaysAndWeeks(t *testing.T) {
	from := date(2024, time.March, 1)

	got := ComputeExpiry(models.ValidityPeriod{Kind: models.ValidityDays, Duration: 30}, from)
	if got == nil || !got.Equal(date(2024, time.March, 31)) {
		t.Errorf("30 days from %v = %v, want 2024-03-31", from, got)
	}

	got = ComputeExpiry(models.ValidityPeriod{Kind: models.ValidityWeeks, Duration: 2}, from)
	if got == nil || !got.Equal(date(2024, time.March, 15)) {
		t.Errorf("2 weeks from %v = %v, want 2024-03-15", from, got)
	}
}

func TestComputeExpiryMonthsClamped(t *testing.T) {
	tests := []struct {
		name     string
		from     time.Time
		months   int
		expected time.Time
	}{
		{"plain month", date(2024, time.March, 15), 1, date(2024, time.April, 15)},
		{"jan 31 into leap feb", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"jan 31 into non-leap feb", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"may 31 into june", date(2024, time.May, 31), 1, date(2024, time.June, 30)},
		{"across year boundary", date(2024, time.November, 30), 3, date(2025, time.February, 28)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			policy := models.ValidityPeriod{Kind: models.ValidityMonths, Duration: tc.months}
			got := ComputeExpiry(policy, tc.from)
			if got == nil || !got.Equal(tc.expected) {
				t.Errorf("%d months from %v = %v, want %v", tc.months, tc.from, got, tc.expected)
			}
		})
	}
}

func TestComputeExpiryYears(t *testing.T) {
	// Feb 29 + 1 year clamps to Feb 28
	from := date(2024, time.February, 29)
	got := ComputeExpiry(models.ValidityPeriod{Kind: models.ValidityYears, Duration: 1}, from)
	if got == nil || !got.Equal(date(2025, time.February, 28)) {
		t.Errorf("1 year from %v = %v, want 2025-02-28", from, got)
	}
}

func TestComputeExpiryPreservesClock(t *testing.T) {
	from := time.Date(2024, time.January, 31, 23, 59, 58, 7, time.UTC)
	got := ComputeExpiry(models.ValidityPeriod{Kind: models.ValidityMonths, Duration: 1}, from)
	want := time.Date(2024, time.February, 29, 23, 59, 58, 7, time.UTC)
	if got == nil || !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestIsExpired(t *testing.T) {
	now := date(2024, time.June, 1)
	past := date(2024, time.May, 31)
	future := date(2024, time.June, 2)

	if IsExpired(nil, now) {
		t.Error("nil expiry must never expire")
	}
	if !IsExpired(&past, now) {
		t.Error("past expiry must be expired")
	}
	if IsExpired(&future, now) {
		t.Error("future expiry must not be expired")
	}
	// Exactly at the boundary the enrollment is still valid
	if IsExpired(&now, now) {
		t.Error("expiry equal to now must not be expired")
	}
}
