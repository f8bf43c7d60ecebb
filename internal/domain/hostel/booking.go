package hostel

import (
	"math"
	"time"

	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

const (
	RoomAvailable = "Available"
	RoomOccupied  = "Occupied"
)

// ===============================
// Validations
// ===============================

func CanCancel(status string) error {
	if status != models.BookingConfirmed && status != models.BookingCheckedIn {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCheckIn(status string) error {
	if status != models.BookingConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCheckOut(status string) error {
	if status != models.BookingCheckedIn {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// Nights counts started nights between the two dates, at least one.
func Nights(checkIn, checkOut time.Time) int {
	n := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if n < 1 {
		n = 1
	}
	return n
}

// ===============================
// Domain Actions
// ===============================

func Cancel(b *models.Booking, reason string, by *uint, now time.Time) error {
	if err := CanCancel(b.BookingStatus); err != nil {
		return err
	}

	b.BookingStatus = models.BookingCancelled
	b.CancellationReason = reason
	b.CancelledBy = by
	b.CancelledAt = &now
	return nil
}

func CheckIn(b *models.Booking, now time.Time) error {
	if err := CanCheckIn(b.BookingStatus); err != nil {
		return err
	}

	b.BookingStatus = models.BookingCheckedIn
	b.CheckInTime = &now
	return nil
}

func CheckOut(b *models.Booking, now time.Time) error {
	if err := CanCheckOut(b.BookingStatus); err != nil {
		return err
	}

	b.BookingStatus = models.BookingCheckedOut
	b.CheckOutTime = &now
	return nil
}
