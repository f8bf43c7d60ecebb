package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/hostel"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type BookingGormRepository struct {
	*CrudGormRepository[models.Booking]
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{NewRepository[models.Booking](db)}
}

var _ hostel.Repository = (*BookingGormRepository)(nil)

func (r *BookingGormRepository) RoomOverlaps(
	ctx context.Context,
	roomID uint,
	checkIn, checkOut time.Time,
	excludeID uint,
) (bool, error) {
	return roomOverlaps(r.db.WithContext(ctx), roomID, checkIn, checkOut, excludeID)
}

func (r *BookingGormRepository) CreateInRoom(ctx context.Context, b *models.Booking) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&room, b.RoomID).Error; err != nil {
			return translate(err)
		}

		busy, err := roomOverlaps(tx, b.RoomID, b.CheckInDate, b.CheckOutDate, 0)
		if err != nil || busy {
			return err
		}

		if err := tx.Create(b).Error; err != nil {
			return translate(err)
		}
		created = true
		return nil
	})
	return created, err
}

func roomOverlaps(db *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeID uint) (bool, error) {
	q := db.
		Model(&models.Booking{}).
		Where(
			"room_id = ? AND booking_status <> ? AND check_in_date < ? AND check_out_date > ?",
			roomID,
			models.BookingCancelled,
			checkOut,
			checkIn,
		)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) SetRoomStatus(ctx context.Context, roomID uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", roomID).
		Update("room_status", status).Error
}
