package appointment

import (
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = models.AppointmentScheduled
	StatusConfirmed Status = models.AppointmentConfirmed
	StatusCompleted Status = models.AppointmentCompleted
	StatusCancelled Status = models.AppointmentCancelled
	StatusNoShow    Status = models.AppointmentNoShow
)

// open reports whether the slot is still held by the appointment.
func (s Status) open() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

// ===============================
// Validations
// ===============================

func CanCancel(current Status) error {
	if !current.open() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if !current.open() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}

// OpenStatuses are the statuses that occupy a doctor's slot.
func OpenStatuses() []string {
	return []string{string(StatusScheduled), string(StatusConfirmed)}
}
