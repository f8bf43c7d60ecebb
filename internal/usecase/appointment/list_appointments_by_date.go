package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/appointmenttech-api/internal/domain/appointment"
	"github.com/BruksfildServices01/appointmenttech-api/internal/dto"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute lists one calendar day in the application timezone. doctorID 0
// lists every doctor of the business.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	businessUserID uint,
	doctorID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	start, end := timezone.DayBounds(date, timezone.Location(""))

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		businessUserID,
		doctorID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return toListDTO(appointments), nil
}

func toListDTO(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:                ap.ID,
			AppointmentNumber: ap.AppointmentNumber,
			StartTime:         ap.AppointmentTime,
			EndTime:           ap.End(),
			Status:            ap.Status,
			PatientID:         ap.PatientID,
			PatientName:       ap.Patient.FullName,
			DoctorID:          ap.DoctorID,
			DoctorName:        ap.Doctor.FullName,
		})
	}
	return out
}
