package repository

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/appointment"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type AppointmentGormRepository struct {
	*CrudGormRepository[models.Appointment]
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{NewRepository[models.Appointment](db)}
}

var _ appointment.Repository = (*AppointmentGormRepository)(nil)

// --------------------------------------------------
// Participants
// --------------------------------------------------

func (r *AppointmentGormRepository) GetDoctor(
	ctx context.Context,
	businessUserID uint,
	staffID uint,
) (*models.Staff, error) {

	var staff models.Staff
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_user_id = ? AND staff_type = ? AND is_active = ?",
			staffID, businessUserID, models.StaffDoctor, models.Yes).
		First(&staff).Error; err != nil {
		return nil, translate(err)
	}

	return &staff, nil
}

func (r *AppointmentGormRepository) GetPatient(
	ctx context.Context,
	businessUserID uint,
	patientID uint,
) (*models.Patient, error) {

	var patient models.Patient
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_user_id = ?", patientID, businessUserID).
		First(&patient).Error; err != nil {
		return nil, translate(err)
	}

	return &patient, nil
}

// --------------------------------------------------
// Conflict
// --------------------------------------------------

func (r *AppointmentGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	doctorID uint,
	start time.Time,
	window time.Duration,
	excludeID uint,
) error {
	return assertNoTimeConflict(r.db.WithContext(ctx), doctorID, start, window, excludeID)
}

// CreateInSlot inserts ap while holding the doctor's staff row, so two
// requests for the same slot cannot both pass the conflict check.
func (r *AppointmentGormRepository) CreateInSlot(
	ctx context.Context,
	ap *models.Appointment,
	window time.Duration,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doctor models.Staff
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&doctor, ap.DoctorID).Error; err != nil {
			return translate(err)
		}

		if err := assertNoTimeConflict(tx, ap.DoctorID, ap.AppointmentTime, window, 0); err != nil {
			return err
		}

		return translate(tx.Create(ap).Error)
	})
}

func assertNoTimeConflict(db *gorm.DB, doctorID uint, start time.Time, window time.Duration, excludeID uint) error {
	q := db.
		Model(&models.Appointment{}).
		Where(
			"doctor_id = ? AND status IN ? AND appointment_time > ? AND appointment_time < ?",
			doctorID,
			appointment.OpenStatuses(),
			start.Add(-window),
			start.Add(window),
		)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.E(http.StatusConflict, "time_conflict", "The doctor already has an appointment within 30 minutes of this time.")
	}

	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

// ListAppointmentsForPeriod returns [start, end) ordered by time; a zero
// doctorID lists every doctor of the business.
func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	businessUserID uint,
	doctorID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Where(
			"business_user_id = ? AND appointment_time >= ? AND appointment_time < ?",
			businessUserID,
			start,
			end,
		)
	if doctorID != 0 {
		q = q.Where("doctor_id = ?", doctorID)
	}

	var apps []models.Appointment
	if err := q.Order("appointment_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}
