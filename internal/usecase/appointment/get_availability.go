package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	domain "github.com/BruksfildServices01/appointmenttech-api/internal/domain/appointment"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute returns the free slots of a doctor's shift on in.Date.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	doctor, err := uc.repo.GetDoctor(ctx, in.BusinessUserID, in.DoctorID)
	if err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return nil, httperr.NotFoundErr("doctor_not_found", "Doctor not found.")
		}
		return nil, err
	}

	loc := timezone.Location("")
	date := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)

	shift, ok := domain.ShiftFor(doctor.WorkSchedule, date)
	if !ok {
		return []domain.TimeSlot{}, nil
	}

	dayStart, dayEnd := shift.Bounds(date)

	var blocked []domain.Window
	if bs, be, ok := shift.Break(date); ok {
		blocked = append(blocked, domain.Window{Start: bs, End: be})
	}

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		in.BusinessUserID,
		in.DoctorID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	slot := in.SlotMinutes
	if slot <= 0 {
		slot = 30
	}

	return domain.FreeSlots(dayStart, dayEnd, time.Duration(slot)*time.Minute, appointments, blocked...), nil
}
