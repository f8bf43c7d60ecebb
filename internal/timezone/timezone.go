package timezone

import (
	"sync/atomic"
	"time"
)

const DefaultTimezone = "Asia/Kolkata"

var current atomic.Value

func init() {
	current.Store(DefaultTimezone)
}

// SetDefault changes the zone used by Now and by Location fallbacks.
// Invalid names are ignored.
func SetDefault(tz string) bool {
	if !IsValid(tz) {
		return false
	}
	current.Store(tz)
	return true
}

func Default() string {
	return current.Load().(string)
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(Default())
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(Default()))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// DayBounds returns [start of day, start of next day) for date in loc.
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
