package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// Booking horizon: today plus six more days.
	horizonDays = 7

	// Daily window 10:00-21:00 in 30 minute steps, 22 slots per day.
	openHour    = 10
	closeHour   = 21
	slotMinutes = 30
)

// DateKey builds the composite key indexing a doctor's booked slots,
// e.g. "20_1_2025". Month is 1-indexed. The exact shape matters: it is how
// stored booking data stays readable.
func DateKey(t time.Time) string {
	return fmt.Sprintf("%d_%d_%d", t.Day(), int(t.Month()), t.Year())
}

// ParseDateKey is the inverse of DateKey.
func ParseDateKey(key string) (time.Time, error) {
	parts := strings.Split(key, "_")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("malformed date key %q", key)
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("malformed date key %q", key)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("date key %q out of range", key)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes impossible dates (Feb 31 becomes Mar 3); a key
	// that does not round-trip never named a real day.
	if DateKey(t) != key {
		return time.Time{}, fmt.Errorf("date key %q is not a calendar day", key)
	}
	return t, nil
}

// SlotTimes returns the fixed daily grid of bookable time strings:
// "10:00 AM" through "8:30 PM".
func SlotTimes() []string {
	times := make([]string, 0, (closeHour-openHour)*60/slotMinutes)
	day := time.Date(2000, 1, 1, openHour, 0, 0, 0, time.UTC)
	end := time.Date(2000, 1, 1, closeHour, 0, 0, 0, time.UTC)
	for t := day; t.Before(end); t = t.Add(slotMinutes * time.Minute) {
		times = append(times, t.Format("3:04 PM"))
	}
	return times
}

// DaySlots is one day of a doctor's calendar.
type DaySlots struct {
	DateKey string   `json:"datekey"`
	Date    string   `json:"date"` // ISO date for display
	Times   []string `json:"times"`
}

// GenerateWeek computes the bookable windows for the seven days starting at
// from, filtering out times already present in booked (date key → reserved
// time strings).
func GenerateWeek(from time.Time, booked map[string][]string) []DaySlots {
	grid := SlotTimes()
	week := make([]DaySlots, 0, horizonDays)

	for offset := 0; offset < horizonDays; offset++ {
		day := from.AddDate(0, 0, offset)
		key := DateKey(day)

		taken := make(map[string]struct{}, len(booked[key]))
		for _, t := range booked[key] {
			taken[t] = struct{}{}
		}

		free := make([]string, 0, len(grid))
		for _, t := range grid {
			if _, ok := taken[t]; !ok {
				free = append(free, t)
			}
		}

		week = append(week, DaySlots{
			DateKey: key,
			Date:    day.Format("2006-01-02"),
			Times:   free,
		})
	}
	return week
}

// validSlotTime reports whether s lies on the fixed daily grid.
func validSlotTime(s string) bool {
	for _, t := range SlotTimes() {
		if t == s {
			return true
		}
	}
	return false
}

// withinHorizon reports whether key names a date inside the rolling booking
// window starting at from.
func withinHorizon(key string, from time.Time) bool {
	day, err := ParseDateKey(key)
	if err != nil {
		return false
	}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := start.AddDate(0, 0, horizonDays)
	return !day.Before(start) && day.Before(end)
}
