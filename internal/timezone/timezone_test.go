package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("Not/AZone").String())
	assert.Equal(t, "UTC", Location("UTC").String())
}

func TestSetDefault(t *testing.T) {
	t.Cleanup(func() { SetDefault(DefaultTimezone) })

	assert.False(t, SetDefault("bogus"))
	assert.Equal(t, DefaultTimezone, Default())

	assert.True(t, SetDefault("UTC"))
	assert.Equal(t, "UTC", Now().Location().String())
}

func TestDayBounds(t *testing.T) {
	loc := Location("Asia/Kolkata")
	start, end := DayBounds(time.Date(2024, 3, 5, 17, 30, 0, 0, loc), loc)

	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, loc), start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}
