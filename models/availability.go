package models

import (
	"sort"
	"time"
)

// WeekDays lists the seven weekday labels in Monday-first order. The index of
// a label is its weekday number (Monday=0 ... Sunday=6).
var WeekDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Bookable start-hours are bounded to this range, inclusive.
const (
	MinBookableHour = 8
	MaxBookableHour = 20
)

// WeeklyAvailability maps a weekday label to the set of bookable start-hours
// for that day. A normalized value always carries all seven day keys.
type WeeklyAvailability map[string][]int

// ValidDayLabel reports whether day is one of the seven weekday labels.
func ValidDayLabel(day string) bool {
	for _, d := range WeekDays {
		if d == day {
			return true
		}
	}
	return false
}

// ValidBookableHour reports whether h falls inside the allowed hour range.
func ValidBookableHour(h int) bool {
	return h >= MinBookableHour && h <= MaxBookableHour
}

// DayLabel returns the Monday-first weekday label for t in its own location.
func DayLabel(t time.Time) string {
	// time.Weekday has Sunday=0; shift so Monday=0, Sunday=6.
	idx := (int(t.Weekday()) + 6) % 7
	return WeekDays[idx]
}

// Normalize rebuilds the availability into its canonical shape: every weekday
// key present, hours restricted to the allowed range, deduplicated and sorted
// ascending. Unknown day keys and out-of-range hours are dropped, not errored.
// Normalizing an already-normalized value is a no-op.
func (a WeeklyAvailability) Normalize() WeeklyAvailability {
	result := make(WeeklyAvailability, len(WeekDays))
	for _, day := range WeekDays {
		hours := []int{}
		seen := make(map[int]bool)
		for _, h := range a[day] {
			if !ValidBookableHour(h) || seen[h] {
				continue
			}
			seen[h] = true
			hours = append(hours, h)
		}
		sort.Ints(hours)
		result[day] = hours
	}
	return result
}

// HourAllowed reports whether hour is a bookable start-hour on the given day.
func (a WeeklyAvailability) HourAllowed(day string, hour int) bool {
	for _, h := range a[day] {
		if h == hour {
			return true
		}
	}
	return false
}
