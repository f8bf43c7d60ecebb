package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

func TestCancelAndComplete(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: models.AppointmentConfirmed}
	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, models.AppointmentCancelled, ap.Status)
	assert.NotNil(t, ap.CancelledAt)

	assert.True(t, httperr.IsBusiness(Complete(ap, now), "invalid_state"))

	ap = &models.Appointment{Status: models.AppointmentScheduled}
	require.NoError(t, Complete(ap, now))
	assert.Equal(t, models.AppointmentCompleted, ap.Status)
	assert.True(t, httperr.IsBusiness(Cancel(ap, now), "invalid_state"))
}

func TestFreeSlots(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	start := day.Add(9 * time.Hour)
	end := day.Add(12 * time.Hour)

	booked := []models.Appointment{
		{AppointmentTime: day.Add(9*time.Hour + 30*time.Minute), DurationMinutes: 30, Status: models.AppointmentScheduled},
		{AppointmentTime: day.Add(10 * time.Hour), DurationMinutes: 30, Status: models.AppointmentCancelled},
	}
	lunch := Window{Start: day.Add(11 * time.Hour), End: day.Add(11*time.Hour + 30*time.Minute)}

	slots := FreeSlots(start, end, 30*time.Minute, booked, lunch)

	var starts []string
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	assert.Equal(t, []string{"09:00", "10:00", "10:30", "11:30"}, starts)
}

func TestShiftFor(t *testing.T) {
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	s, ok := ShiftFor(nil, monday)
	require.True(t, ok)
	assert.Equal(t, DefaultShift, s)

	schedule := datatypes.JSON(`{"mon":{"start":"10:00","end":"14:00","break_start":"12:00","break_end":"12:30"},"sun":{"off":true}}`)
	s, ok = ShiftFor(schedule, monday)
	require.True(t, ok)
	from, to := s.Bounds(monday)
	assert.Equal(t, 10, from.Hour())
	assert.Equal(t, 14, to.Hour())
	_, _, hasBreak := s.Break(monday)
	assert.True(t, hasBreak)

	_, ok = ShiftFor(schedule, monday.AddDate(0, 0, 6))
	assert.False(t, ok)
	_, ok = ShiftFor(schedule, monday.AddDate(0, 0, 1))
	assert.False(t, ok)
}
