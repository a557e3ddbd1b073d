package schedule

import "time"

// DateLayout is the calendar-day format of LastActivityDate.
const DateLayout = "2006-01-02"

// DayKey returns the calendar day of t in loc.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// daysBetween returns the calendar-day distance from last to today, and false
// when last is not a valid day key.
func daysBetween(last, today string, loc *time.Location) (int, bool) {
	if loc == nil {
		loc = time.Local
	}
	l, err := time.ParseInLocation(DateLayout, last, loc)
	if err != nil {
		return 0, false
	}
	t, err := time.ParseInLocation(DateLayout, today, loc)
	if err != nil {
		return 0, false
	}
	// Compare via UTC dates so DST shifts do not change the day count.
	lu := time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.UTC)
	tu := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(tu.Sub(lu).Hours() / 24), true
}

// AdvanceStreak applies one day of activity at now to the stored streak.
//
//	same day         -> unchanged
//	next calendar day -> count+1
//	anything else    -> restart at 1
func AdvanceStreak(lastDate string, count int, now time.Time, loc *time.Location) (string, int) {
	today := DayKey(now, loc)
	gap, ok := daysBetween(lastDate, today, loc)
	switch {
	case ok && gap == 0:
		return lastDate, count
	case ok && gap == 1:
		return today, count + 1
	default:
		return today, 1
	}
}

// LiveStreak returns the stored count if the last activity was today or
// yesterday, and 0 when the streak has lapsed.
func LiveStreak(lastDate string, count int, now time.Time, loc *time.Location) int {
	gap, ok := daysBetween(lastDate, DayKey(now, loc), loc)
	if !ok || gap < 0 || gap > 1 {
		return 0
	}
	return count
}
