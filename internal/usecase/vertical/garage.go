package vertical

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

var garageStatuses = map[string]bool{
	models.GarageScheduled:  true,
	models.GarageInProgress: true,
	models.GarageCompleted:  true,
	models.GarageCancelled:  true,
}

type GarageBookingInput struct {
	BusinessUserID uint      `json:"business_user_id" binding:"required"`
	CustomerID     uint      `json:"customer_id" binding:"required"`
	VehicleID      uint      `json:"vehicle_id" binding:"required"`
	ServiceID      uint      `json:"service_id" binding:"required"`
	TechnicianID   *uint     `json:"technician_id"`
	BookingTime    time.Time `json:"booking_time" binding:"required"`
	Notes          string    `json:"notes"`
}

type Garage struct {
	Vehicles *Resource[models.Vehicle, *models.Vehicle]
	Services *Resource[models.GarageService, *models.GarageService]
	Bookings *Resource[models.GarageBooking, *models.GarageBooking]

	customers *Resource[models.Customer, *models.Customer]
	notify    BookingNotifier
	now       func() time.Time
}

func NewGarage(
	vehicles crud.Repository[models.Vehicle],
	services crud.Repository[models.GarageService],
	bookings crud.Repository[models.GarageBooking],
	customers *Resource[models.Customer, *models.Customer],
	businesses crud.Repository[models.BusinessUser],
	notify BookingNotifier,
	dispatcher *audit.Dispatcher,
) *Garage {
	return &Garage{
		Vehicles: NewResource[models.Vehicle, *models.Vehicle](vehicles, businesses, Options{
			Table: "vehicles", Label: "Vehicle", NotFoundCode: "vehicle_not_found", Order: "vehicle_number ASC",
		}, dispatcher),
		Services: NewResource[models.GarageService, *models.GarageService](services, businesses, Options{
			Table: "garage_services", Label: "Service", NotFoundCode: "service_not_found", Order: "name ASC",
		}, dispatcher),
		Bookings: NewResource[models.GarageBooking, *models.GarageBooking](bookings, businesses, Options{
			Table: "garage_bookings", Label: "Garage booking", NotFoundCode: "garage_booking_not_found",
			Order: "booking_time DESC",
		}, dispatcher),
		customers: customers,
		notify:    notify,
		now:       time.Now,
	}
}

// CreateVehicle requires the owner to be a customer of the business.
func (g *Garage) CreateVehicle(ctx context.Context, actor audit.Actor, businessUserID uint, v *models.Vehicle) error {
	if _, err := g.customers.Get(ctx, businessUserID, v.CustomerID); err != nil {
		return err
	}
	if v.IsActive == "" {
		v.IsActive = models.Yes
	}
	return g.Vehicles.Create(ctx, actor, businessUserID, v)
}

func (g *Garage) UpdateVehicle(ctx context.Context, actor audit.Actor, businessUserID, id uint, apply func(*models.Vehicle) error) (*models.Vehicle, error) {
	return g.Vehicles.Update(ctx, actor, businessUserID, id, func(v *models.Vehicle) error {
		if err := apply(v); err != nil {
			return err
		}
		_, err := g.customers.Get(ctx, v.BusinessUserID, v.CustomerID)
		return err
	})
}

func (g *Garage) CreateBooking(ctx context.Context, actor audit.Actor, in GarageBookingInput) (*models.GarageBooking, error) {
	business, err := g.Bookings.Business(ctx, in.BusinessUserID)
	if err != nil {
		return nil, err
	}
	if _, err := g.customers.Get(ctx, in.BusinessUserID, in.CustomerID); err != nil {
		return nil, err
	}
	vehicle, err := g.Vehicles.Get(ctx, in.BusinessUserID, in.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.CustomerID != in.CustomerID {
		return nil, httperr.BusinessError{Code: "vehicle_not_owned", Message: "The vehicle does not belong to this customer."}
	}
	service, err := g.Services.Get(ctx, in.BusinessUserID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	b := &models.GarageBooking{
		CustomerID:        in.CustomerID,
		VehicleID:         in.VehicleID,
		ServiceID:         in.ServiceID,
		TechnicianID:      in.TechnicianID,
		BookingNumber:     Number("GB", g.now()),
		BookingTime:       in.BookingTime,
		EstimatedDuration: service.DurationMinutes,
		TotalAmount:       service.Price,
		Status:            models.GarageScheduled,
		PaymentStatus:     models.PaymentPending,
		Notes:             in.Notes,
	}
	if err := g.Bookings.Create(ctx, actor, in.BusinessUserID, b); err != nil {
		return nil, err
	}
	g.Bookings.record(actor, b, audit.ActionBooking)

	if g.notify != nil {
		g.notify.Booking(ctx, business.UserID, business.ID, "garage booking", b.BookingNumber)
	}
	return b, nil
}

// UpdateBooking keeps the number and re-checks the references and status.
func (g *Garage) UpdateBooking(ctx context.Context, actor audit.Actor, businessUserID, id uint, apply func(*models.GarageBooking) error) (*models.GarageBooking, error) {
	return g.Bookings.Update(ctx, actor, businessUserID, id, func(b *models.GarageBooking) error {
		number := b.BookingNumber
		if err := apply(b); err != nil {
			return err
		}
		b.BookingNumber = number

		if !garageStatuses[b.Status] {
			return httperr.BusinessError{Code: "invalid_status", Message: "Invalid garage booking status."}
		}
		if _, err := g.Vehicles.Get(ctx, b.BusinessUserID, b.VehicleID); err != nil {
			return err
		}
		_, err := g.Services.Get(ctx, b.BusinessUserID, b.ServiceID)
		return err
	})
}
