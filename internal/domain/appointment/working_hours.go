package appointment

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// DefaultShift applies when a doctor has no work schedule.
var DefaultShift = Shift{Start: "09:00", End: "17:00"}

// Shift is one day of a staff work schedule, "15:04" formatted.
type Shift struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	BreakStart string `json:"break_start,omitempty"`
	BreakEnd   string `json:"break_end,omitempty"`
	Off        bool   `json:"off,omitempty"`
}

// ShiftFor reads the shift of date's weekday from a schedule keyed by
// lower-case three letter day names ("mon", "tue", ...).
func ShiftFor(schedule datatypes.JSON, date time.Time) (Shift, bool) {
	if len(schedule) == 0 {
		return DefaultShift, true
	}

	var week map[string]Shift
	if err := json.Unmarshal(schedule, &week); err != nil {
		return DefaultShift, true
	}

	day := strings.ToLower(date.Weekday().String()[:3])
	s, ok := week[day]
	if !ok || s.Off || s.Start == "" || s.End == "" {
		return Shift{}, false
	}
	return s, true
}

// Bounds places the shift on date's calendar day in date's location.
func (s Shift) Bounds(date time.Time) (start, end time.Time) {
	return at(date, s.Start), at(date, s.End)
}

// Break returns the break window, if the shift has one.
func (s Shift) Break(date time.Time) (start, end time.Time, ok bool) {
	if s.BreakStart == "" || s.BreakEnd == "" {
		return time.Time{}, time.Time{}, false
	}
	return at(date, s.BreakStart), at(date, s.BreakEnd), true
}

func at(date time.Time, hm string) time.Time {
	t, _ := time.Parse("15:04", hm)
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	)
}
