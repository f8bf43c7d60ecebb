package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	domain "github.com/BruksfildServices01/appointmenttech-api/internal/domain/appointment"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/vertical"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BusinessUserID  uint      `json:"business_user_id" binding:"required"`
	PatientID       uint      `json:"patient_id" binding:"required"`
	DoctorID        uint      `json:"doctor_id" binding:"required"`
	AppointmentTime time.Time `json:"appointment_time" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"omitempty,min=5,max=480"`
	AppointmentType string    `json:"appointment_type" binding:"omitempty,oneof=Consultation Follow-up Emergency Surgery Checkup"`
	Symptoms        string    `json:"symptoms"`
	Notes           string    `json:"notes"`
	ConsultationFee float64   `json:"consultation_fee" binding:"min=0"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo       domain.Repository
	businesses crud.Repository[models.BusinessUser]
	notify     vertical.BookingNotifier
	audit      *audit.Dispatcher
	now        func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	businesses crud.Repository[models.BusinessUser],
	notify vertical.BookingNotifier,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:       repo,
		businesses: businesses,
		notify:     notify,
		audit:      audit,
		now:        time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor audit.Actor,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Business
	// --------------------------------------------------
	business, err := uc.businesses.Get(ctx, in.BusinessUserID)
	if err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return nil, httperr.NotFoundErr("business_user_not_found", "Business user not found.")
		}
		return nil, err
	}

	// --------------------------------------------------
	// Patient / doctor
	// --------------------------------------------------
	if _, err := uc.repo.GetPatient(ctx, in.BusinessUserID, in.PatientID); err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return nil, httperr.NotFoundErr("patient_not_found", "Patient not found.")
		}
		return nil, err
	}

	if _, err := uc.repo.GetDoctor(ctx, in.BusinessUserID, in.DoctorID); err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return nil, httperr.NotFoundErr("doctor_not_found", "Doctor not found.")
		}
		return nil, err
	}

	// --------------------------------------------------
	// Create (status centralised in the domain)
	// --------------------------------------------------
	duration := in.DurationMinutes
	if duration == 0 {
		duration = 30
	}
	kind := in.AppointmentType
	if kind == "" {
		kind = "Consultation"
	}

	ap := &models.Appointment{
		BusinessUserID:    in.BusinessUserID,
		PatientID:         in.PatientID,
		DoctorID:          in.DoctorID,
		AppointmentNumber: vertical.Number("APT", uc.now()),
		AppointmentTime:   in.AppointmentTime,
		DurationMinutes:   duration,
		AppointmentType:   kind,
		Status:            string(domain.InitialStatus()),
		Symptoms:          in.Symptoms,
		Notes:             in.Notes,
		ConsultationFee:   in.ConsultationFee,
		PaymentStatus:     models.PaymentPending,
	}

	// Doctor slot is checked under a lock on the doctor row.
	if err := uc.repo.CreateInSlot(ctx, ap, domain.ConflictWindow); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Audit / owner notification
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Actor:          actor,
		BusinessUserID: &in.BusinessUserID,
		Action:         audit.ActionBooking,
		Table:          "appointments",
		RecordID:       &ap.ID,
		Values:         ap,
	})

	if uc.notify != nil {
		uc.notify.Booking(ctx, business.UserID, business.ID, "appointment", ap.AppointmentNumber)
	}

	return ap, nil
}
