package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type Repository interface {
	crud.Repository[models.Appointment]

	// -------- Participants --------
	GetDoctor(
		ctx context.Context,
		businessUserID uint,
		staffID uint,
	) (*models.Staff, error)

	GetPatient(
		ctx context.Context,
		businessUserID uint,
		patientID uint,
	) (*models.Patient, error)

	// -------- Conflict --------

	// AssertNoTimeConflict fails with time_conflict when another open
	// appointment of the doctor starts within window of start.
	AssertNoTimeConflict(
		ctx context.Context,
		doctorID uint,
		start time.Time,
		window time.Duration,
		excludeID uint,
	) error

	// CreateInSlot runs the conflict check and the insert as one
	// serialized step per doctor.
	CreateInSlot(
		ctx context.Context,
		ap *models.Appointment,
		window time.Duration,
	) error

	// -------- Listing --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		businessUserID uint,
		doctorID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
