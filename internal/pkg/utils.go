package pkg

import "time"

func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t).Truncate(time.Hour * 168)
}

func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// SameUTCDay reports whether both instants fall on the same calendar day.
func SameUTCDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}

func SameUTCWeek(a, b time.Time) bool {
	return StartOfWeek(a).Equal(StartOfWeek(b))
}
