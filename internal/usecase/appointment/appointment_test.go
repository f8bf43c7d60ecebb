package appointment

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/db/dbtest"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/infra/repository"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/timezone"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/vertical"

	domain "github.com/BruksfildServices01/appointmenttech-api/internal/domain/appointment"
)

type bookingCall struct {
	ownerID uint
	kind    string
	number  string
}

type fakeNotifier struct{ calls []bookingCall }

func (f *fakeNotifier) Booking(_ context.Context, ownerID, _ uint, kind, number string) {
	f.calls = append(f.calls, bookingCall{ownerID, kind, number})
}

type fixture struct {
	db       *gorm.DB
	notify   *fakeNotifier
	create   *CreateAppointment
	cancel   *Transition
	complete *Transition
	update   *UpdateAppointment
	byDate   *ListAppointmentsByDate
	slots    *GetAvailability

	business models.BusinessUser
	doctor   models.Staff
	nurse    models.Staff
	patient  models.Patient
}

func setup(t *testing.T) *fixture {
	t.Helper()
	timezone.SetDefault("UTC")

	db := dbtest.New(t)
	f := &fixture{db: db, notify: &fakeNotifier{}}

	f.business = models.BusinessUser{UserID: 7, BusinessTypeID: 1, BusinessName: "City Clinic"}
	require.NoError(t, db.Create(&f.business).Error)

	f.doctor = models.Staff{BusinessUserID: f.business.ID, StaffCode: "D1", FullName: "Dr. Rao", StaffType: models.StaffDoctor, IsActive: models.Yes}
	f.nurse = models.Staff{BusinessUserID: f.business.ID, StaffCode: "N1", FullName: "Asha", StaffType: "NURSE", IsActive: models.Yes}
	require.NoError(t, db.Create(&f.doctor).Error)
	require.NoError(t, db.Create(&f.nurse).Error)

	f.patient = models.Patient{BusinessUserID: f.business.ID, PatientNumber: "PT-1", FullName: "Ravi", IsActive: models.Yes}
	require.NoError(t, db.Create(&f.patient).Error)

	repo := repository.NewAppointmentGormRepository(db)
	businesses := repository.NewSoftDeleteRepository[models.BusinessUser](db)
	res := vertical.NewResource[models.Appointment, *models.Appointment](repo, businesses, vertical.Options{
		Table: "appointments", Label: "Appointment", NotFoundCode: "appointment_not_found",
	}, nil)

	f.create = NewCreateAppointment(repo, businesses, f.notify, nil)
	f.cancel = NewCancelAppointment(res)
	f.complete = NewCompleteAppointment(res)
	f.update = NewUpdateAppointment(repo, res)
	f.byDate = NewListAppointmentsByDate(repo)
	f.slots = NewGetAvailability(repo)
	return f
}

func (f *fixture) input(at time.Time) CreateAppointmentInput {
	return CreateAppointmentInput{
		BusinessUserID:  f.business.ID,
		PatientID:       f.patient.ID,
		DoctorID:        f.doctor.ID,
		AppointmentTime: at,
	}
}

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) // a Monday

func TestCreate_AssignsNumberAndNotifiesOwner(t *testing.T) {
	f := setup(t)

	ap, err := f.create.Execute(context.Background(), audit.Actor{}, f.input(day.Add(10*time.Hour)))
	require.NoError(t, err)

	assert.Equal(t, models.AppointmentScheduled, ap.Status)
	assert.Regexp(t, `^APT-\d{8}-[0-9A-F]{8}$`, ap.AppointmentNumber)
	assert.Equal(t, 30, ap.DurationMinutes)

	require.Len(t, f.notify.calls, 1)
	assert.Equal(t, uint(7), f.notify.calls[0].ownerID)
	assert.Equal(t, ap.AppointmentNumber, f.notify.calls[0].number)
}

func TestCreate_Rejections(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	in := f.input(day.Add(10 * time.Hour))
	in.DoctorID = f.nurse.ID
	_, err := f.create.Execute(ctx, audit.Actor{}, in)
	assert.True(t, httperr.IsBusiness(err, "doctor_not_found"))

	in = f.input(day.Add(10 * time.Hour))
	in.PatientID = 999
	_, err = f.create.Execute(ctx, audit.Actor{}, in)
	assert.True(t, httperr.IsBusiness(err, "patient_not_found"))

	in = f.input(day.Add(10 * time.Hour))
	in.BusinessUserID = 999
	_, err = f.create.Execute(ctx, audit.Actor{}, in)
	assert.True(t, httperr.IsBusiness(err, "business_user_not_found"))
}

func TestCreate_DoctorConflictWindow(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.create.Execute(ctx, audit.Actor{}, f.input(day.Add(10*time.Hour)))
	require.NoError(t, err)

	_, err = f.create.Execute(ctx, audit.Actor{}, f.input(day.Add(10*time.Hour+20*time.Minute)))
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, "time_conflict", be.Code)
	assert.Equal(t, http.StatusConflict, be.Status)

	// exactly 30 minutes apart is allowed
	_, err = f.create.Execute(ctx, audit.Actor{}, f.input(day.Add(10*time.Hour+30*time.Minute)))
	require.NoError(t, err)

	// a cancelled appointment frees its slot
	_, err = f.cancel.Execute(ctx, audit.Actor{}, f.business.ID, first.ID)
	require.NoError(t, err)
	_, err = f.create.Execute(ctx, audit.Actor{}, f.input(day.Add(9*time.Hour+50*time.Minute)))
	require.NoError(t, err)
}

func TestCancelAndComplete_StateRules(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	ap, err := f.create.Execute(ctx, audit.Actor{}, f.input(day.Add(11*time.Hour)))
	require.NoError(t, err)

	done, err := f.complete.Execute(ctx, audit.Actor{}, f.business.ID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCompleted, done.Status)
	assert.NotNil(t, done.CompletedAt)

	_, err = f.cancel.Execute(ctx, audit.Actor{}, f.business.ID, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = f.cancel.Execute(ctx, audit.Actor{}, f.business.ID+1, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestUpdate_RescheduleChecksConflict(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.create.Execute(ctx, audit.Actor{}, f.input(day.Add(9*time.Hour)))
	require.NoError(t, err)
	second, err := f.create.Execute(ctx, audit.Actor{}, f.input(day.Add(12*time.Hour)))
	require.NoError(t, err)

	_, err = f.update.Execute(ctx, audit.Actor{}, f.business.ID, second.ID, func(ap *models.Appointment) error {
		ap.AppointmentTime = day.Add(9*time.Hour + 10*time.Minute)
		return nil
	})
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	got, err := f.update.Execute(ctx, audit.Actor{}, f.business.ID, second.ID, func(ap *models.Appointment) error {
		ap.Notes = "bring reports"
		ap.Status = models.AppointmentCompleted
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "bring reports", got.Notes)
	assert.Equal(t, models.AppointmentScheduled, got.Status)
}

func TestListByDate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.create.Execute(ctx, audit.Actor{}, f.input(day.Add(9*time.Hour)))
	require.NoError(t, err)
	_, err = f.create.Execute(ctx, audit.Actor{}, f.input(day.Add(33*time.Hour)))
	require.NoError(t, err)

	list, err := f.byDate.Execute(ctx, f.business.ID, 0, day)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ravi", list[0].PatientName)
	assert.Equal(t, "Dr. Rao", list[0].DoctorName)
	assert.Equal(t, day.Add(9*time.Hour+30*time.Minute), list[0].EndTime.UTC())
}

func TestAvailability_UsesScheduleAndBookings(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.doctor.WorkSchedule = datatypes.JSON(`{"mon":{"start":"09:00","end":"12:00","break_start":"10:00","break_end":"10:30"}}`)
	require.NoError(t, f.db.Save(&f.doctor).Error)

	_, err := f.create.Execute(ctx, audit.Actor{}, f.input(day.Add(11*time.Hour)))
	require.NoError(t, err)

	slots, err := f.slots.Execute(ctx, domain.AvailabilityInput{
		BusinessUserID: f.business.ID,
		DoctorID:       f.doctor.ID,
		Date:           day,
		SlotMinutes:    30,
	})
	require.NoError(t, err)

	var starts []string
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:30"}, starts)

	// no shift on Sunday
	slots, err = f.slots.Execute(ctx, domain.AvailabilityInput{
		BusinessUserID: f.business.ID,
		DoctorID:       f.doctor.ID,
		Date:           day.AddDate(0, 0, 6),
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}
