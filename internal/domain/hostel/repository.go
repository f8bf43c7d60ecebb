package hostel

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type Repository interface {
	crud.Repository[models.Booking]

	// RoomOverlaps reports a non-cancelled booking of roomID intersecting
	// [checkIn, checkOut), ignoring excludeID.
	RoomOverlaps(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeID uint) (bool, error)
	SetRoomStatus(ctx context.Context, roomID uint, status string) error

	// CreateInRoom inserts b unless an overlapping booking exists, holding
	// the room row for the duration of the check.
	CreateInRoom(ctx context.Context, b *models.Booking) (created bool, err error)
}
