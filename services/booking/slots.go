package booking

import (
	"time"

	"curanest/models"
	"curanest/utils"
)

// ValidateSlot decides whether the requested [start, start+duration) slot is
// bookable: the start must fall on a bookable hour of the nurse's weekly
// schedule, and the interval must not overlap any of the nurse's active
// bookings.
//
// Only the start hour is checked against availability, not every hour a
// longer booking spans. Bookings that merely touch (one ends exactly when the
// next starts) do not overlap: the interval test is strict.
func ValidateSlot(availability models.WeeklyAvailability, existing []models.Booking, start time.Time, durationMinutes int) error {
	day := models.DayLabel(start)
	if !availability.HourAllowed(day, start.Hour()) {
		return utils.NewConflictError("nurse is not available at the selected time")
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	for _, b := range existing {
		// Two half-open intervals [s1,e1) and [s2,e2) overlap iff
		// s1 < e2 && s2 < e1.
		if b.ScheduledAt.Before(end) && b.End().After(start) {
			return utils.NewConflictError("nurse already booked for this time slot")
		}
	}
	return nil
}
