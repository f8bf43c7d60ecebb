package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	domain "github.com/BruksfildServices01/appointmenttech-api/internal/domain/appointment"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/timezone"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/vertical"
)

// Transition moves an open appointment into a closing status.
type Transition struct {
	appointments *vertical.Resource[models.Appointment, *models.Appointment]
	apply        func(*models.Appointment, time.Time) error
	action       string
}

func NewCancelAppointment(appointments *vertical.Resource[models.Appointment, *models.Appointment]) *Transition {
	return &Transition{appointments: appointments, apply: domain.Cancel, action: audit.ActionCancellation}
}

func NewCompleteAppointment(appointments *vertical.Resource[models.Appointment, *models.Appointment]) *Transition {
	return &Transition{appointments: appointments, apply: domain.Complete, action: audit.ActionUpdate}
}

func (uc *Transition) Execute(ctx context.Context, actor audit.Actor, businessUserID, id uint) (*models.Appointment, error) {
	ap, err := uc.appointments.Get(ctx, businessUserID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.apply(ap, timezone.Now()); err != nil {
		return nil, err
	}
	if err := uc.appointments.Save(ctx, actor, ap, uc.action); err != nil {
		return nil, err
	}
	return ap, nil
}
