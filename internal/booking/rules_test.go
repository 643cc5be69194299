package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMinutes(t *testing.T, clock string) int {
	t.Helper()
	m, err := ClockMinutes(clock)
	require.NoError(t, err)
	return m
}

func TestClockMinutes(t *testing.T) {
	m, err := ClockMinutes("10:30")
	require.NoError(t, err)
	assert.Equal(t, 630, m)

	_, err = ClockMinutes("25:00")
	assert.Error(t, err)

	_, err = ClockMinutes("")
	assert.Error(t, err)
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"disjoint before", "08:00", "09:00", "10:00", "11:00", false},
		{"touching endpoints", "10:00", "10:30", "10:30", "11:00", false},
		{"partial overlap", "10:00", "10:30", "10:15", "10:45", true},
		{"contained", "10:00", "12:00", "10:30", "11:00", true},
		{"containing", "10:30", "11:00", "10:00", "12:00", true},
		{"identical", "10:00", "11:00", "10:00", "11:00", true},
		{"touching the other way", "10:30", "11:00", "10:00", "10:30", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlap(
				mustMinutes(t, tt.aStart), mustMinutes(t, tt.aEnd),
				mustMinutes(t, tt.bStart), mustMinutes(t, tt.bEnd),
			)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInstant(t *testing.T) {
	got, err := Instant("2025-01-01", "10:30", 7)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 3, 30, 0, 0, time.UTC), got)

	got, err = Instant("2025-01-01", "03:00", 7)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 31, 20, 0, 0, 0, time.UTC), got)

	_, err = Instant("01/02/2025", "10:00", 7)
	assert.Error(t, err)
}

func TestIsFuture(t *testing.T) {
	now := time.Date(2025, 1, 1, 3, 0, 0, 0, time.UTC) // 10:00 at UTC+7

	future, err := IsFuture("2025-01-01", "10:01", 7, now)
	require.NoError(t, err)
	assert.True(t, future)

	future, err = IsFuture("2025-01-01", "10:00", 7, now)
	require.NoError(t, err)
	assert.False(t, future, "start equal to now is not strictly future")

	future, err = IsFuture("2024-12-31", "23:00", 7, now)
	require.NoError(t, err)
	assert.False(t, future)

	_, err = IsFuture("2025-13-01", "10:00", 7, now)
	assert.Error(t, err)
}

func TestIsExpired(t *testing.T) {
	grace := 30 * time.Minute
	end, err := Instant("2025-01-01", "10:00", 7)
	require.NoError(t, err)

	assert.False(t, IsExpired("2025-01-01", "10:00", 7, grace, end))
	assert.False(t, IsExpired("2025-01-01", "10:00", 7, grace, end.Add(30*time.Minute)),
		"exactly at the grace boundary is not yet expired")
	assert.True(t, IsExpired("2025-01-01", "10:00", 7, grace, end.Add(31*time.Minute)))
}

func TestIsExpiredMonotonic(t *testing.T) {
	grace := 30 * time.Minute
	end, err := Instant("2025-01-01", "10:00", 7)
	require.NoError(t, err)

	now := end.Add(31 * time.Minute)
	for i := 0; i < 48; i++ {
		assert.True(t, IsExpired("2025-01-01", "10:00", 7, grace, now))
		now = now.Add(time.Hour)
	}
}

func TestIsExpiredYesterday(t *testing.T) {
	now := time.Date(2025, 1, 2, 5, 0, 0, 0, time.UTC) // Jan 2 12:00 at UTC+7
	assert.True(t, IsExpired("2025-01-01", "23:59", 7, 30*time.Minute, now))
	assert.True(t, IsExpired("2025-01-01", "23:59", 7, 0, now))
}

func TestIsExpiredParseFailure(t *testing.T) {
	now := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.False(t, IsExpired("not-a-date", "10:00", 7, 0, now))
	assert.False(t, IsExpired("2025-01-01", "nope", 7, 0, now))
}
