package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	domain "github.com/BruksfildServices01/appointmenttech-api/internal/domain/appointment"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/vertical"
)

// UpdateAppointment edits an appointment in place. Moving it to another
// time or doctor re-runs the doctor and slot checks.
type UpdateAppointment struct {
	repo         domain.Repository
	appointments *vertical.Resource[models.Appointment, *models.Appointment]
}

func NewUpdateAppointment(
	repo domain.Repository,
	appointments *vertical.Resource[models.Appointment, *models.Appointment],
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:         repo,
		appointments: appointments,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	actor audit.Actor,
	businessUserID uint,
	appointmentID uint,
	apply func(*models.Appointment) error,
) (*models.Appointment, error) {

	return uc.appointments.Update(ctx, actor, businessUserID, appointmentID, func(ap *models.Appointment) error {
		number, status := ap.AppointmentNumber, ap.Status
		doctorID, patientID, at := ap.DoctorID, ap.PatientID, ap.AppointmentTime

		if err := apply(ap); err != nil {
			return err
		}

		// state changes go through cancel / complete
		ap.AppointmentNumber, ap.Status = number, status

		if ap.PatientID != patientID {
			if _, err := uc.repo.GetPatient(ctx, ap.BusinessUserID, ap.PatientID); err != nil {
				if errors.Is(err, crud.ErrNotFound) {
					return httperr.NotFoundErr("patient_not_found", "Patient not found.")
				}
				return err
			}
		}

		if ap.DoctorID == doctorID && ap.AppointmentTime.Equal(at) {
			return nil
		}

		if _, err := uc.repo.GetDoctor(ctx, ap.BusinessUserID, ap.DoctorID); err != nil {
			if errors.Is(err, crud.ErrNotFound) {
				return httperr.NotFoundErr("doctor_not_found", "Doctor not found.")
			}
			return err
		}

		return uc.repo.AssertNoTimeConflict(ctx, ap.DoctorID, ap.AppointmentTime, domain.ConflictWindow, ap.ID)
	})
}
