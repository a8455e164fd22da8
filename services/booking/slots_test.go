package booking

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curanest/models"
	"curanest/utils"
)

// monday9 is Monday 2026-01-05 09:00 local.
var monday9 = time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local)

func mondayAvailability(hours ...int) models.WeeklyAvailability {
	return models.WeeklyAvailability{"Mon": hours}.Normalize()
}

func TestValidateSlotStartHour(t *testing.T) {
	avail := mondayAvailability(9, 10)

	assert.NoError(t, ValidateSlot(avail, nil, monday9, 60))
	assert.NoError(t, ValidateSlot(avail, nil, monday9.Add(time.Hour), 60))

	err := ValidateSlot(avail, nil, monday9.Add(2*time.Hour), 60)
	require.Error(t, err)
	assert.True(t, utils.HasCode(err, utils.CodeConflict))

	// Wrong day, same hour.
	err = ValidateSlot(avail, nil, monday9.AddDate(0, 0, 1), 60)
	assert.True(t, utils.HasCode(err, utils.CodeConflict))
}

func TestValidateSlotOnlyStartHourMatters(t *testing.T) {
	// A long booking may run past the listed hours; only the start is
	// checked against the schedule.
	avail := mondayAvailability(9)
	assert.NoError(t, ValidateSlot(avail, nil, monday9, 240))
}

func TestValidateSlotOverlap(t *testing.T) {
	avail := mondayAvailability(8, 9, 10, 11)
	existing := []models.Booking{{
		NurseID:         "n1",
		ScheduledAt:     monday9,
		DurationMinutes: 60,
		Status:          models.BookingConfirmed,
	}}

	tests := []struct {
		name     string
		start    time.Time
		duration int
		conflict bool
	}{
		{"identical slot", monday9, 60, true},
		{"starts inside", monday9.Add(30 * time.Minute), 60, false},
		{"contains existing", monday9.Add(-time.Hour), 180, true},
		{"ends exactly at start", monday9.Add(-time.Hour), 60, false},
		{"starts exactly at end", monday9.Add(time.Hour), 60, false},
		{"well clear", monday9.Add(2 * time.Hour), 60, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.name == "starts inside" {
				// 09:30 is not a listed start hour, so this fails on
				// availability, not overlap.
				err := ValidateSlot(avail, existing, tt.start, tt.duration)
				assert.Error(t, err)
				return
			}
			err := ValidateSlot(avail, existing, tt.start, tt.duration)
			if tt.conflict {
				require.Error(t, err)
				assert.True(t, utils.HasCode(err, utils.CodeConflict))
				assert.Contains(t, err.Error(), "already booked")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSlotBackToBack(t *testing.T) {
	avail := mondayAvailability(9, 10, 11)
	existing := []models.Booking{{ScheduledAt: monday9.Add(time.Hour), DurationMinutes: 60}}

	// [09:00,10:00) and [11:00,12:00) around an existing [10:00,11:00).
	assert.NoError(t, ValidateSlot(avail, existing, monday9, 60))
	assert.NoError(t, ValidateSlot(avail, existing, monday9.Add(2*time.Hour), 60))
}

func TestValidateSlotRandomizedIntervals(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	avail := models.WeeklyAvailability{
		"Mon": {8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20},
	}.Normalize()

	for i := 0; i < 200; i++ {
		existStart := monday9.Add(time.Duration(rng.Intn(8)) * time.Hour)
		existDur := 30 + rng.Intn(180)
		existing := []models.Booking{{ScheduledAt: existStart, DurationMinutes: existDur}}

		reqStart := monday9.Add(time.Duration(rng.Intn(10)-1) * time.Hour)
		reqDur := 30 + rng.Intn(180)
		reqEnd := reqStart.Add(time.Duration(reqDur) * time.Minute)

		err := ValidateSlot(avail, existing, reqStart, reqDur)
		overlaps := existStart.Before(reqEnd) &&
			existStart.Add(time.Duration(existDur)*time.Minute).After(reqStart)
		if !avail.HourAllowed(models.DayLabel(reqStart), reqStart.Hour()) {
			assert.Error(t, err)
		} else if overlaps {
			assert.Error(t, err, "existing [%v+%dm) vs requested [%v+%dm)", existStart, existDur, reqStart, reqDur)
		} else {
			assert.NoError(t, err, "existing [%v+%dm) vs requested [%v+%dm)", existStart, existDur, reqStart, reqDur)
		}
	}
}
