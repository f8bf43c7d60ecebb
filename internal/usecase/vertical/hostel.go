package vertical

import (
	"context"
	"net/http"
	"time"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/hostel"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type BookingInput struct {
	BusinessUserID  uint      `json:"business_user_id" binding:"required"`
	CustomerID      uint      `json:"customer_id" binding:"required"`
	RoomID          uint      `json:"room_id" binding:"required"`
	CheckInDate     time.Time `json:"check_in_date" binding:"required"`
	CheckOutDate    time.Time `json:"check_out_date" binding:"required"`
	AdvanceAmount   float64   `json:"advance_amount" binding:"min=0"`
	SpecialRequests string    `json:"special_requests"`
}

// Hostel groups rooms, customers and room bookings.
type Hostel struct {
	Rooms     *Resource[models.Room, *models.Room]
	Customers *Resource[models.Customer, *models.Customer]
	Bookings  *Resource[models.Booking, *models.Booking]

	repo   hostel.Repository
	notify BookingNotifier
	now    func() time.Time
}

func NewHostel(
	rooms crud.Repository[models.Room],
	customers crud.Repository[models.Customer],
	bookings hostel.Repository,
	businesses crud.Repository[models.BusinessUser],
	notify BookingNotifier,
	dispatcher *audit.Dispatcher,
) *Hostel {
	return &Hostel{
		Rooms: NewResource[models.Room, *models.Room](rooms, businesses, Options{
			Table: "rooms", Label: "Room", NotFoundCode: "room_not_found",
			DuplicateCode: "room_number_exists", Order: "room_number ASC",
		}, dispatcher),
		Customers: NewResource[models.Customer, *models.Customer](customers, businesses, Options{
			Table: "customers", Label: "Customer", NotFoundCode: "customer_not_found", Order: "full_name ASC",
		}, dispatcher),
		Bookings: NewResource[models.Booking, *models.Booking](bookings, businesses, Options{
			Table: "bookings", Label: "Booking", NotFoundCode: "booking_not_found", Order: "check_in_date DESC",
		}, dispatcher),
		repo:   bookings,
		notify: notify,
		now:    time.Now,
	}
}

// --------------------------------------------------
// Rooms
// --------------------------------------------------

func (h *Hostel) CreateRoom(ctx context.Context, actor audit.Actor, businessUserID uint, room *models.Room) error {
	if err := h.checkRoomNumber(ctx, businessUserID, room.RoomNumber, 0); err != nil {
		return err
	}
	if room.RoomStatus == "" {
		room.RoomStatus = hostel.RoomAvailable
	}
	if room.IsActive == "" {
		room.IsActive = models.Yes
	}
	return h.Rooms.Create(ctx, actor, businessUserID, room)
}

func (h *Hostel) UpdateRoom(ctx context.Context, actor audit.Actor, businessUserID, id uint, apply func(*models.Room) error) (*models.Room, error) {
	return h.Rooms.Update(ctx, actor, businessUserID, id, func(room *models.Room) error {
		if err := apply(room); err != nil {
			return err
		}
		return h.checkRoomNumber(ctx, room.BusinessUserID, room.RoomNumber, room.ID)
	})
}

func (h *Hostel) checkRoomNumber(ctx context.Context, businessUserID uint, number string, excludeID uint) error {
	rooms, _, err := h.Rooms.Repo().List(ctx, crud.Query{}.
		Where("business_user_id", businessUserID).
		Where("room_number", number))
	if err != nil {
		return err
	}
	for _, r := range rooms {
		if r.ID != excludeID {
			return httperr.BusinessError{Code: "room_number_exists", Message: "Room number already exists for this business."}
		}
	}
	return nil
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

var errRoomUnavailable = httperr.E(http.StatusConflict, "room_unavailable", "The room is already booked for these dates.")

func (h *Hostel) CreateBooking(ctx context.Context, actor audit.Actor, in BookingInput) (*models.Booking, error) {
	business, err := h.Rooms.Business(ctx, in.BusinessUserID)
	if err != nil {
		return nil, err
	}
	if _, err := h.Customers.Get(ctx, in.BusinessUserID, in.CustomerID); err != nil {
		return nil, err
	}
	room, err := h.Rooms.Get(ctx, in.BusinessUserID, in.RoomID)
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		CustomerID:      in.CustomerID,
		RoomID:          in.RoomID,
		BookingNumber:   Number("BK", h.now()),
		CheckInDate:     in.CheckInDate,
		CheckOutDate:    in.CheckOutDate,
		AdvanceAmount:   in.AdvanceAmount,
		SpecialRequests: in.SpecialRequests,
		PaymentStatus:   models.PaymentPending,
		BookingStatus:   models.BookingConfirmed,
	}
	if err := h.price(ctx, b, room); err != nil {
		return nil, err
	}

	b.SetTenant(in.BusinessUserID)
	created, err := h.repo.CreateInRoom(ctx, b)
	if err != nil {
		return nil, h.Bookings.writeErr(err)
	}
	if !created {
		return nil, errRoomUnavailable
	}
	h.Bookings.record(actor, b, audit.ActionBooking)

	if h.notify != nil {
		h.notify.Booking(ctx, business.UserID, business.ID, "booking", b.BookingNumber)
	}
	return b, nil
}

// UpdateBooking re-validates the stay after apply changed dates or room.
func (h *Hostel) UpdateBooking(ctx context.Context, actor audit.Actor, businessUserID, id uint, apply func(*models.Booking) error) (*models.Booking, error) {
	return h.Bookings.Update(ctx, actor, businessUserID, id, func(b *models.Booking) error {
		if err := apply(b); err != nil {
			return err
		}
		room, err := h.Rooms.Get(ctx, b.BusinessUserID, b.RoomID)
		if err != nil {
			return err
		}
		if b.BookingStatus == models.BookingCancelled {
			return nil
		}
		return h.price(ctx, b, room)
	})
}

// price validates the stay and fills nights and amount from the room rate.
func (h *Hostel) price(ctx context.Context, b *models.Booking, room *models.Room) error {
	if !b.CheckOutDate.After(b.CheckInDate) {
		return httperr.BusinessError{Code: "invalid_dates", Message: "check_out_date must be after check_in_date."}
	}

	busy, err := h.repo.RoomOverlaps(ctx, b.RoomID, b.CheckInDate, b.CheckOutDate, b.ID)
	if err != nil {
		return err
	}
	if busy {
		return errRoomUnavailable
	}

	b.TotalNights = hostel.Nights(b.CheckInDate, b.CheckOutDate)
	b.TotalAmount = float64(b.TotalNights) * room.PricePerNight
	return nil
}

func (h *Hostel) CancelBooking(ctx context.Context, actor audit.Actor, businessUserID, id uint, reason string) (*models.Booking, error) {
	b, err := h.Bookings.Get(ctx, businessUserID, id)
	if err != nil {
		return nil, err
	}
	wasIn := b.BookingStatus == models.BookingCheckedIn

	if err := hostel.Cancel(b, reason, actor.UserID, h.now()); err != nil {
		return nil, err
	}
	if err := h.Bookings.Save(ctx, actor, b, audit.ActionCancellation); err != nil {
		return nil, err
	}
	if wasIn {
		if err := h.repo.SetRoomStatus(ctx, b.RoomID, hostel.RoomAvailable); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (h *Hostel) CheckIn(ctx context.Context, actor audit.Actor, businessUserID, id uint) (*models.Booking, error) {
	b, err := h.Bookings.Get(ctx, businessUserID, id)
	if err != nil {
		return nil, err
	}
	if err := hostel.CheckIn(b, h.now()); err != nil {
		return nil, err
	}
	if err := h.Bookings.Save(ctx, actor, b, audit.ActionUpdate); err != nil {
		return nil, err
	}
	return b, h.repo.SetRoomStatus(ctx, b.RoomID, hostel.RoomOccupied)
}

func (h *Hostel) CheckOut(ctx context.Context, actor audit.Actor, businessUserID, id uint) (*models.Booking, error) {
	b, err := h.Bookings.Get(ctx, businessUserID, id)
	if err != nil {
		return nil, err
	}
	if err := hostel.CheckOut(b, h.now()); err != nil {
		return nil, err
	}
	if err := h.Bookings.Save(ctx, actor, b, audit.ActionUpdate); err != nil {
		return nil, err
	}
	return b, h.repo.SetRoomStatus(ctx, b.RoomID, hostel.RoomAvailable)
}
