package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "2025-01-31", DayKey(day(2025, 1, 31, 23), time.UTC))

	tokyo := time.FixedZone("JST", 9*3600)
	assert.Equal(t, "2025-02-01", DayKey(day(2025, 1, 31, 23), tokyo))
}

func TestAdvanceStreak(t *testing.T) {
	tests := []struct {
		name      string
		lastDate  string
		count     int
		now       time.Time
		wantDate  string
		wantCount int
	}{
		{"never active", "", 0, day(2025, 1, 10, 8), "2025-01-10", 1},
		{"same day unchanged", "2025-01-10", 3, day(2025, 1, 10, 22), "2025-01-10", 3},
		{"next day increments", "2025-01-10", 3, day(2025, 1, 11, 0), "2025-01-11", 4},
		{"gap restarts", "2025-01-10", 3, day(2025, 1, 12, 8), "2025-01-12", 1},
		{"month boundary", "2025-01-31", 5, day(2025, 2, 1, 8), "2025-02-01", 6},
		{"year boundary", "2024-12-31", 9, day(2025, 1, 1, 1), "2025-01-01", 10},
		{"leap day", "2024-02-28", 1, day(2024, 2, 29, 12), "2024-02-29", 2},
		{"malformed date restarts", "yesterday", 7, day(2025, 1, 10, 8), "2025-01-10", 1},
		{"future date restarts", "2025-01-15", 2, day(2025, 1, 10, 8), "2025-01-10", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotDate, gotCount := AdvanceStreak(tt.lastDate, tt.count, tt.now, time.UTC)
			assert.Equal(t, tt.wantDate, gotDate)
			assert.Equal(t, tt.wantCount, gotCount)
		})
	}
}

func TestAdvanceStreak_DSTTransition(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// 2025-03-09 is 23 hours long in New York.
	now := time.Date(2025, 3, 10, 0, 30, 0, 0, ny)
	date, count := AdvanceStreak("2025-03-09", 2, now, ny)
	assert.Equal(t, "2025-03-10", date)
	assert.Equal(t, 3, count)
}

func TestLiveStreak(t *testing.T) {
	now := day(2025, 6, 15, 12)

	assert.Equal(t, 4, LiveStreak("2025-06-15", 4, now, time.UTC))
	assert.Equal(t, 4, LiveStreak("2025-06-14", 4, now, time.UTC))
	assert.Equal(t, 0, LiveStreak("2025-06-13", 4, now, time.UTC))
	assert.Equal(t, 0, LiveStreak("", 4, now, time.UTC))
	assert.Equal(t, 0, LiveStreak("2025-06-20", 4, now, time.UTC))
}
