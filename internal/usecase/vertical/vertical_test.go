package vertical

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/db/dbtest"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/infra/repository"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type fakeNotifier struct{ kinds []string }

func (f *fakeNotifier) Booking(_ context.Context, _, _ uint, kind, _ string) {
	f.kinds = append(f.kinds, kind)
}

type fixture struct {
	db       *gorm.DB
	notify   *fakeNotifier
	business models.BusinessUser
	other    models.BusinessUser

	hostel   *Hostel
	hospital *Hospital
	garage   *Garage
	catering *Catering
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	f := &fixture{db: db, notify: &fakeNotifier{}}

	f.business = models.BusinessUser{UserID: 3, BusinessTypeID: 1, BusinessName: "Sunrise"}
	f.other = models.BusinessUser{UserID: 4, BusinessTypeID: 1, BusinessName: "Moonlight"}
	require.NoError(t, db.Create(&f.business).Error)
	require.NoError(t, db.Create(&f.other).Error)

	businesses := repository.NewSoftDeleteRepository[models.BusinessUser](db)

	f.hostel = NewHostel(
		repository.NewRepository[models.Room](db),
		repository.NewRepository[models.Customer](db),
		repository.NewBookingGormRepository(db),
		businesses, f.notify, nil,
	)
	f.hospital = NewHospital(
		repository.NewRepository[models.Staff](db),
		repository.NewRepository[models.Patient](db),
		repository.NewRepository[models.Appointment](db),
		businesses, nil,
	)
	f.garage = NewGarage(
		repository.NewRepository[models.Vehicle](db),
		repository.NewRepository[models.GarageService](db),
		repository.NewRepository[models.GarageBooking](db),
		f.hostel.Customers, businesses, f.notify, nil,
	)
	f.catering = NewCatering(
		repository.NewRepository[models.MenuItem](db),
		repository.NewCateringOrderGormRepository(db),
		f.hostel.Customers, businesses, f.notify, nil,
	)
	return f
}

func (f *fixture) customer(t *testing.T, businessUserID uint) *models.Customer {
	t.Helper()
	c := &models.Customer{FullName: "Meera", Phone: "9000000001"}
	require.NoError(t, f.hostel.Customers.Create(context.Background(), audit.Actor{}, businessUserID, c))
	return c
}

// --------------------------------------------------
// Resource
// --------------------------------------------------

func TestResource_BusinessScoping(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, _, err := f.hostel.Customers.List(ctx, 0, crud.Query{})
	assert.True(t, httperr.IsBusiness(err, "business_user_id_required"))

	_, _, err = f.hostel.Customers.List(ctx, 999, crud.Query{})
	assert.True(t, httperr.IsBusiness(err, "business_user_not_found"))

	mine := f.customer(t, f.business.ID)
	f.customer(t, f.other.ID)

	list, total, err := f.hostel.Customers.List(ctx, f.business.ID, crud.Query{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, mine.ID, list[0].ID)

	_, err = f.hostel.Customers.Get(ctx, f.other.ID, mine.ID)
	assert.True(t, httperr.IsBusiness(err, "customer_not_found"))

	updated, err := f.hostel.Customers.Update(ctx, audit.Actor{}, f.business.ID, mine.ID, func(c *models.Customer) error {
		c.FullName = "Meera K"
		c.BusinessUserID = f.other.ID
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Meera K", updated.FullName)
	assert.Equal(t, f.business.ID, updated.BusinessUserID)

	require.NoError(t, f.hostel.Customers.Delete(ctx, audit.Actor{}, f.business.ID, mine.ID))
	_, err = f.hostel.Customers.Get(ctx, 0, mine.ID)
	assert.True(t, httperr.IsBusiness(err, "customer_not_found"))
}

func TestNumber_Format(t *testing.T) {
	n := Number("BK", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.Regexp(t, `^BK-20250102-[0-9A-F]{8}$`, n)
	assert.NotEqual(t, n, Number("BK", time.Now()))
}

// --------------------------------------------------
// Hostel
// --------------------------------------------------

func TestHostel_RoomNumberUniquePerBusiness(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.hostel.CreateRoom(ctx, audit.Actor{}, f.business.ID, &models.Room{RoomNumber: "101", Capacity: 2}))
	require.NoError(t, f.hostel.CreateRoom(ctx, audit.Actor{}, f.other.ID, &models.Room{RoomNumber: "101", Capacity: 2}))

	err := f.hostel.CreateRoom(ctx, audit.Actor{}, f.business.ID, &models.Room{RoomNumber: "101", Capacity: 1})
	assert.True(t, httperr.IsBusiness(err, "room_number_exists"))
}

func TestResource_UpdateKeepsRowIdentity(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	mine := &models.Room{RoomNumber: "101", Capacity: 2}
	theirs := &models.Room{RoomNumber: "102", Capacity: 2}
	require.NoError(t, f.hostel.CreateRoom(ctx, audit.Actor{}, f.business.ID, mine))
	require.NoError(t, f.hostel.CreateRoom(ctx, audit.Actor{}, f.other.ID, theirs))

	_, err := f.hostel.Rooms.Update(ctx, audit.Actor{}, f.business.ID, mine.ID, func(r *models.Room) error {
		r.ID = theirs.ID
		r.RoomNumber = "taken"
		return nil
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_request"))

	got, err := f.hostel.Rooms.Get(ctx, f.other.ID, theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, "102", got.RoomNumber)
	assert.Equal(t, f.other.ID, got.BusinessUserID)
}

func TestHostel_BookingLifecycle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	room := &models.Room{RoomNumber: "201", Capacity: 2, PricePerNight: 1500}
	require.NoError(t, f.hostel.CreateRoom(ctx, audit.Actor{}, f.business.ID, room))
	c := f.customer(t, f.business.ID)

	in := BookingInput{
		BusinessUserID: f.business.ID,
		CustomerID:     c.ID,
		RoomID:         room.ID,
		CheckInDate:    time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
		CheckOutDate:   time.Date(2025, 5, 4, 11, 0, 0, 0, time.UTC),
	}

	b, err := f.hostel.CreateBooking(ctx, audit.Actor{}, in)
	require.NoError(t, err)
	assert.Equal(t, 3, b.TotalNights)
	assert.InDelta(t, 4500, b.TotalAmount, 0.001)
	assert.Equal(t, models.BookingConfirmed, b.BookingStatus)
	assert.Equal(t, []string{"booking"}, f.notify.kinds)

	overlap := in
	overlap.CheckInDate = time.Date(2025, 5, 3, 12, 0, 0, 0, time.UTC)
	overlap.CheckOutDate = time.Date(2025, 5, 5, 11, 0, 0, 0, time.UTC)
	_, err = f.hostel.CreateBooking(ctx, audit.Actor{}, overlap)
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, "room_unavailable", be.Code)
	assert.Equal(t, http.StatusConflict, be.Status)

	backwards := in
	backwards.CheckOutDate = in.CheckInDate
	_, err = f.hostel.CreateBooking(ctx, audit.Actor{}, backwards)
	assert.True(t, httperr.IsBusiness(err, "invalid_dates"))

	_, err = f.hostel.CheckOut(ctx, audit.Actor{}, f.business.ID, b.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = f.hostel.CheckIn(ctx, audit.Actor{}, f.business.ID, b.ID)
	require.NoError(t, err)
	var stored models.Room
	require.NoError(t, f.db.First(&stored, room.ID).Error)
	assert.Equal(t, "Occupied", stored.RoomStatus)

	out, err := f.hostel.CheckOut(ctx, audit.Actor{}, f.business.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCheckedOut, out.BookingStatus)
	require.NoError(t, f.db.First(&stored, room.ID).Error)
	assert.Equal(t, "Available", stored.RoomStatus)

	_, err = f.hostel.CancelBooking(ctx, audit.Actor{}, f.business.ID, b.ID, "late")
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestHostel_CancelledBookingFreesRoom(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	room := &models.Room{RoomNumber: "301", Capacity: 1, PricePerNight: 800}
	require.NoError(t, f.hostel.CreateRoom(ctx, audit.Actor{}, f.business.ID, room))
	c := f.customer(t, f.business.ID)

	in := BookingInput{
		BusinessUserID: f.business.ID,
		CustomerID:     c.ID,
		RoomID:         room.ID,
		CheckInDate:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		CheckOutDate:   time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC),
	}
	b, err := f.hostel.CreateBooking(ctx, audit.Actor{}, in)
	require.NoError(t, err)

	uid := uint(9)
	cancelled, err := f.hostel.CancelBooking(ctx, audit.Actor{UserID: &uid}, f.business.ID, b.ID, "plans changed")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.BookingStatus)
	assert.Equal(t, "plans changed", cancelled.CancellationReason)
	require.NotNil(t, cancelled.CancelledBy)
	assert.Equal(t, uid, *cancelled.CancelledBy)

	_, err = f.hostel.CreateBooking(ctx, audit.Actor{}, in)
	require.NoError(t, err)
}

// --------------------------------------------------
// Hospital
// --------------------------------------------------

func TestHospital_StaffCodeAndPatientNumber(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.hospital.CreateStaff(ctx, audit.Actor{}, f.business.ID, &models.Staff{StaffCode: "DOC-1", FullName: "Dr. Iyer", StaffType: models.StaffDoctor}))
	err := f.hospital.CreateStaff(ctx, audit.Actor{}, f.business.ID, &models.Staff{StaffCode: "doc-1", FullName: "Dr. Shah"})
	assert.True(t, httperr.IsBusiness(err, "staff_code_exists"))

	p := &models.Patient{FullName: "Kiran", PatientNumber: "ignored"}
	require.NoError(t, f.hospital.CreatePatient(ctx, audit.Actor{}, f.business.ID, p))
	assert.Regexp(t, `^PT-\d{8}-`, p.PatientNumber)
	assert.Equal(t, "Outpatient", p.PatientType)

	number := p.PatientNumber
	got, err := f.hospital.UpdatePatient(ctx, audit.Actor{}, f.business.ID, p.ID, func(p *models.Patient) error {
		p.PatientNumber = "PT-HACK"
		p.BloodGroup = "O+"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, number, got.PatientNumber)
	assert.Equal(t, "O+", got.BloodGroup)
}

// --------------------------------------------------
// Garage
// --------------------------------------------------

func TestGarage_BookingChecksOwnership(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	c := f.customer(t, f.business.ID)
	stranger := f.customer(t, f.other.ID)

	err := f.garage.CreateVehicle(ctx, audit.Actor{}, f.business.ID, &models.Vehicle{CustomerID: stranger.ID, VehicleNumber: "MH12AB1234"})
	assert.True(t, httperr.IsBusiness(err, "customer_not_found"))

	v := &models.Vehicle{CustomerID: c.ID, VehicleNumber: "MH12AB1234"}
	require.NoError(t, f.garage.CreateVehicle(ctx, audit.Actor{}, f.business.ID, v))

	svc := &models.GarageService{Name: "Oil change", Price: 1200, DurationMinutes: 45}
	require.NoError(t, f.garage.Services.Create(ctx, audit.Actor{}, f.business.ID, svc))
	foreign := &models.GarageService{Name: "Wash", Price: 300}
	require.NoError(t, f.garage.Services.Create(ctx, audit.Actor{}, f.other.ID, foreign))

	in := GarageBookingInput{
		BusinessUserID: f.business.ID,
		CustomerID:     c.ID,
		VehicleID:      v.ID,
		ServiceID:      foreign.ID,
		BookingTime:    time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC),
	}
	_, err = f.garage.CreateBooking(ctx, audit.Actor{}, in)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))

	in.ServiceID = svc.ID
	b, err := f.garage.CreateBooking(ctx, audit.Actor{}, in)
	require.NoError(t, err)
	assert.Regexp(t, `^GB-`, b.BookingNumber)
	assert.Equal(t, models.GarageScheduled, b.Status)
	assert.InDelta(t, 1200, b.TotalAmount, 0.001)
	assert.Equal(t, 45, b.EstimatedDuration)

	_, err = f.garage.UpdateBooking(ctx, audit.Actor{}, f.business.ID, b.ID, func(b *models.GarageBooking) error {
		b.Status = "Parked"
		return nil
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	got, err := f.garage.UpdateBooking(ctx, audit.Actor{}, f.business.ID, b.ID, func(b *models.GarageBooking) error {
		b.Status = models.GarageInProgress
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.GarageInProgress, got.Status)
}

// --------------------------------------------------
// Catering
// --------------------------------------------------

func TestCatering_OrderTotals(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	c := f.customer(t, f.business.ID)
	thali := &models.MenuItem{Name: "Thali", Price: 250}
	sweet := &models.MenuItem{Name: "Gulab jamun", Price: 40.5}
	require.NoError(t, f.catering.CreateMenuItem(ctx, audit.Actor{}, f.business.ID, thali))
	require.NoError(t, f.catering.CreateMenuItem(ctx, audit.Actor{}, f.business.ID, sweet))

	o, err := f.catering.CreateOrder(ctx, audit.Actor{}, OrderInput{
		BusinessUserID:  f.business.ID,
		CustomerID:      c.ID,
		DeliveryCharges: 100,
		TaxAmount:       50,
		DiscountAmount:  25,
		Items: []OrderItemInput{
			{MenuItemID: thali.ID, Quantity: 10},
			{MenuItemID: sweet.ID, Quantity: 20},
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 3310, o.TotalAmount, 0.001)
	assert.InDelta(t, 3435, o.FinalAmount, 0.001)
	assert.Equal(t, models.OrderPending, o.Status)

	got, err := f.catering.GetOrder(ctx, f.business.ID, o.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.InDelta(t, 250, got.Items[0].UnitPrice, 0.001)

	upd, err := f.catering.UpdateOrder(ctx, audit.Actor{}, f.business.ID, o.ID, func(o *models.CateringOrder) error {
		o.DiscountAmount = 0
		o.TotalAmount = 1
		return nil
	})
	require.NoError(t, err)
	assert.InDelta(t, 3460, upd.FinalAmount, 0.001)

	_, err = f.catering.SetStatus(ctx, audit.Actor{}, f.business.ID, o.ID, "Eaten")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	st, err := f.catering.SetStatus(ctx, audit.Actor{}, f.business.ID, o.ID, models.OrderConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.OrderConfirmed, st.Status)

	assert.Equal(t, []string{"catering order"}, f.notify.kinds)
}

func TestCatering_UnavailableItemRejectsOrder(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	c := f.customer(t, f.business.ID)
	item := &models.MenuItem{Name: "Biryani", Price: 300, IsAvailable: models.No}
	require.NoError(t, f.catering.CreateMenuItem(ctx, audit.Actor{}, f.business.ID, item))

	_, err := f.catering.CreateOrder(ctx, audit.Actor{}, OrderInput{
		BusinessUserID: f.business.ID,
		CustomerID:     c.ID,
		Items:          []OrderItemInput{{MenuItemID: item.ID, Quantity: 1}},
	})
	assert.True(t, httperr.IsBusiness(err, "menu_item_unavailable"))

	var count int64
	require.NoError(t, f.db.Model(&models.CateringOrder{}).Count(&count).Error)
	assert.Zero(t, count)
}
