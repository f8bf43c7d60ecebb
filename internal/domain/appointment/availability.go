package appointment

import (
	"time"

	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type AvailabilityInput struct {
	BusinessUserID uint
	DoctorID       uint
	Date           time.Time
	SlotMinutes    int
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Window is a blocked period such as a break.
type Window struct {
	Start time.Time
	End   time.Time
}

// FreeSlots walks [dayStart, dayEnd) in steps of slot and keeps the slots
// that neither an open appointment nor a blocked window overlaps. booked
// must be sorted by start.
func FreeSlots(dayStart, dayEnd time.Time, slot time.Duration, booked []models.Appointment, blocked ...Window) []TimeSlot {
	slots := []TimeSlot{}
	if slot <= 0 {
		return slots
	}
	apIdx := 0

next:
	for cur := dayStart; !cur.Add(slot).After(dayEnd); cur = cur.Add(slot) {
		slotStart := cur
		slotEnd := cur.Add(slot)

		for _, w := range blocked {
			if slotStart.Before(w.End) && slotEnd.After(w.Start) {
				continue next
			}
		}

		// skip appointments already over
		for apIdx < len(booked) && !booked[apIdx].End().After(slotStart) {
			apIdx++
		}

		conflict := false
		for i := apIdx; i < len(booked) && booked[i].AppointmentTime.Before(slotEnd); i++ {
			if Status(booked[i].Status).open() {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, TimeSlot{
				Start: slotStart.Format("15:04"),
				End:   slotEnd.Format("15:04"),
			})
		}
	}

	return slots
}
