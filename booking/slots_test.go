package booking

import (
	"testing"
	"time"
)

func TestDateKey(t *testing.T) {
	cases := []struct {
		year     int
		month    time.Month
		day      int
		expected string
	}{
		{2025, time.January, 20, "20_1_2025"},
		{2025, time.January, 1, "1_1_2025"},
		{2025, time.December, 31, "31_12_2025"},
		{2024, time.February, 29, "29_2_2024"},
	}

	for _, c := range cases {
		d := time.Date(c.year, c.month, c.day, 15, 30, 0, 0, time.Local)
		if got := DateKey(d); got != c.expected {
			t.Fatalf("DateKey(%v) = %s; want %s", d, got, c.expected)
		}
	}
}

func TestParseDateKeyRoundTrip(t *testing.T) {
	keys := []string{"20_1_2025", "1_1_2025", "31_12_2025", "29_2_2024"}
	for _, key := range keys {
		d, err := ParseDateKey(key)
		if err != nil {
			t.Fatalf("ParseDateKey(%s) error: %v", key, err)
		}
		if got := DateKey(d); got != key {
			t.Fatalf("round trip %s -> %v -> %s", key, d, got)
		}
	}
}

func TestParseDateKeyRejectsMalformed(t *testing.T) {
	bad := []string{
		"", "20_1", "20-1-2025", "a_b_c", "40_1_2025", "20_13_2025",
		"31_2_2025", // Feb 31 would normalize to Mar 3
		"30_2_2024",
		"31_4_2025",
		"29_2_2025", // not a leap year
		"05_1_2025", // zero-padded keys never round-trip
	}
	for _, key := range bad {
		if _, err := ParseDateKey(key); err == nil {
			t.Fatalf("ParseDateKey(%q) should fail", key)
		}
	}
}

func TestSlotTimesGrid(t *testing.T) {
	times := SlotTimes()

	if len(times) != 22 {
		t.Fatalf("expected 22 slots per day, got %d", len(times))
	}
	if times[0] != "10:00 AM" {
		t.Fatalf("first slot = %s; want 10:00 AM", times[0])
	}
	if times[len(times)-1] != "8:30 PM" {
		t.Fatalf("last slot = %s; want 8:30 PM", times[len(times)-1])
	}

	seen := make(map[string]struct{}, len(times))
	for _, s := range times {
		if _, dup := seen[s]; dup {
			t.Fatalf("duplicate slot time %s", s)
		}
		seen[s] = struct{}{}
	}
}

func TestGenerateWeekEmptyCalendar(t *testing.T) {
	week := GenerateWeek(time.Date(2025, time.January, 1, 9, 0, 0, 0, time.Local), nil)

	if len(week) != 7 {
		t.Fatalf("expected 7 days, got %d", len(week))
	}

	total := 0
	for _, day := range week {
		total += len(day.Times)
	}
	if total != 154 {
		t.Fatalf("expected 154 candidate slots, got %d", total)
	}

	if week[0].DateKey != "1_1_2025" {
		t.Fatalf("first day key = %s; want 1_1_2025", week[0].DateKey)
	}
	if week[6].DateKey != "7_1_2025" {
		t.Fatalf("last day key = %s; want 7_1_2025", week[6].DateKey)
	}
}

func TestGenerateWeekFiltersBookedSlot(t *testing.T) {
	from := time.Date(2025, time.January, 1, 9, 0, 0, 0, time.Local)
	booked := map[string][]string{
		"1_1_2025": {"10:00 AM"},
	}

	week := GenerateWeek(from, booked)

	for _, s := range week[0].Times {
		if s == "10:00 AM" {
			t.Fatal("booked 10:00 AM slot still offered on 1_1_2025")
		}
	}
	if len(week[0].Times) != 21 {
		t.Fatalf("day 0 should have 21 slots, got %d", len(week[0].Times))
	}

	// the filter must not bleed into other days
	for i := 1; i < 7; i++ {
		if len(week[i].Times) != 22 {
			t.Fatalf("day %d should have 22 slots, got %d", i, len(week[i].Times))
		}
	}
}

func TestValidSlotTime(t *testing.T) {
	cases := []struct {
		slot  string
		valid bool
	}{
		{"10:00 AM", true},
		{"8:30 PM", true},
		{"1:30 PM", true},
		{"9:00 AM", false},
		{"9:00 PM", false},
		{"10:15 AM", false},
		{"", false},
	}
	for _, c := range cases {
		if got := validSlotTime(c.slot); got != c.valid {
			t.Fatalf("validSlotTime(%q) = %v; want %v", c.slot, got, c.valid)
		}
	}
}

func TestWithinHorizon(t *testing.T) {
	from := time.Date(2025, time.January, 1, 23, 0, 0, 0, time.Local)

	cases := []struct {
		key    string
		within bool
	}{
		{"1_1_2025", true},  // today, even late in the day
		{"7_1_2025", true},  // last day of the window
		{"8_1_2025", false}, // one past
		{"31_12_2024", false},
		{"garbage", false},
	}
	for _, c := range cases {
		if got := withinHorizon(c.key, from); got != c.within {
			t.Fatalf("withinHorizon(%q) = %v; want %v", c.key, got, c.within)
		}
	}
}
