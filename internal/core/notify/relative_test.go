package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelativeTime(t *testing.T) {
	now := testNow // 2026-10-15 12:00 UTC

	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"same instant", now, "Just now"},
		{"59 seconds", now.Add(-59 * time.Second), "Just now"},
		{"future skew", now.Add(10 * time.Minute), "Just now"},
		{"exactly one minute", now.Add(-time.Minute), "1 minute ago"},
		{"five minutes", now.Add(-5 * time.Minute), "5 minutes ago"},
		{"59 minutes 59 seconds", now.Add(-59*time.Minute - 59*time.Second), "59 minutes ago"},
		{"exactly one hour", now.Add(-time.Hour), "1 hour ago"},
		{"ninety minutes floors", now.Add(-90 * time.Minute), "1 hour ago"},
		{"23 hours", now.Add(-23*time.Hour - 59*time.Minute), "23 hours ago"},
		{"25 hours is yesterday", now.Add(-25 * time.Hour), "Yesterday"},
		{"start of yesterday", time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), "Yesterday"},
		{"two days back", time.Date(2026, 10, 13, 23, 0, 0, 0, time.UTC), "10/13/2026"},
		{"last year", time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC), "1/2/2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRelativeTime(tt.ts, now))
		})
	}
}

func TestFormatRelativeTime_UsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC-10", -10*60*60)
	now := time.Date(2026, 10, 15, 1, 0, 0, 0, loc) // 11:00 UTC

	// 30 hours earlier is 2026-10-13 19:00 in loc, two calendar days back.
	ts := now.Add(-30 * time.Hour).UTC()
	assert.Equal(t, "10/13/2026", FormatRelativeTime(ts, now))

	// 24 hours earlier is 2026-10-14 01:00 in loc.
	assert.Equal(t, "Yesterday", FormatRelativeTime(now.Add(-24*time.Hour).UTC(), now))
}

func TestFormatRelativeTime_MonthBoundary(t *testing.T) {
	now := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "Yesterday", FormatRelativeTime(time.Date(2026, 10, 31, 6, 0, 0, 0, time.UTC), now))
}
