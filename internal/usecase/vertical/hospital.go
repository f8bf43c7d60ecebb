package vertical

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

// Hospital groups staff, patients and appointments. Appointment state
// changes live in usecase/appointment.
type Hospital struct {
	Staff        *Resource[models.Staff, *models.Staff]
	Patients     *Resource[models.Patient, *models.Patient]
	Appointments *Resource[models.Appointment, *models.Appointment]

	now func() time.Time
}

func NewHospital(
	staff crud.Repository[models.Staff],
	patients crud.Repository[models.Patient],
	appointments crud.Repository[models.Appointment],
	businesses crud.Repository[models.BusinessUser],
	dispatcher *audit.Dispatcher,
) *Hospital {
	return &Hospital{
		Staff: NewResource[models.Staff, *models.Staff](staff, businesses, Options{
			Table: "staff", Label: "Staff", NotFoundCode: "staff_not_found",
			DuplicateCode: "staff_code_exists", Order: "full_name ASC",
		}, dispatcher),
		Patients: NewResource[models.Patient, *models.Patient](patients, businesses, Options{
			Table: "patients", Label: "Patient", NotFoundCode: "patient_not_found", Order: "full_name ASC",
		}, dispatcher),
		Appointments: NewResource[models.Appointment, *models.Appointment](appointments, businesses, Options{
			Table: "appointments", Label: "Appointment", NotFoundCode: "appointment_not_found",
			Order: "appointment_time DESC",
		}, dispatcher),
		now: time.Now,
	}
}

func (h *Hospital) CreateStaff(ctx context.Context, actor audit.Actor, businessUserID uint, s *models.Staff) error {
	if err := h.checkStaffCode(ctx, s.StaffCode, 0); err != nil {
		return err
	}
	if s.StaffType == "" {
		s.StaffType = "GENERAL"
	}
	if s.IsActive == "" {
		s.IsActive = models.Yes
	}
	return h.Staff.Create(ctx, actor, businessUserID, s)
}

func (h *Hospital) UpdateStaff(ctx context.Context, actor audit.Actor, businessUserID, id uint, apply func(*models.Staff) error) (*models.Staff, error) {
	return h.Staff.Update(ctx, actor, businessUserID, id, func(s *models.Staff) error {
		if err := apply(s); err != nil {
			return err
		}
		return h.checkStaffCode(ctx, s.StaffCode, s.ID)
	})
}

func (h *Hospital) checkStaffCode(ctx context.Context, code string, excludeID uint) error {
	taken, err := h.Staff.Repo().Exists(ctx, "staff_code", code, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return httperr.BusinessError{Code: "staff_code_exists", Message: "Staff code already exists."}
	}
	return nil
}

// CreatePatient assigns the patient number.
func (h *Hospital) CreatePatient(ctx context.Context, actor audit.Actor, businessUserID uint, p *models.Patient) error {
	p.PatientNumber = Number("PT", h.now())
	if p.PatientType == "" {
		p.PatientType = "Outpatient"
	}
	if p.IsActive == "" {
		p.IsActive = models.Yes
	}
	return h.Patients.Create(ctx, actor, businessUserID, p)
}

// UpdatePatient keeps the generated number.
func (h *Hospital) UpdatePatient(ctx context.Context, actor audit.Actor, businessUserID, id uint, apply func(*models.Patient) error) (*models.Patient, error) {
	return h.Patients.Update(ctx, actor, businessUserID, id, func(p *models.Patient) error {
		number := p.PatientNumber
		if err := apply(p); err != nil {
			return err
		}
		p.PatientNumber = number
		return nil
	})
}
