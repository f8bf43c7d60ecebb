package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/appointmenttech-api/internal/domain/notification"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

var _ domain.Repository = (*NotificationGormRepository)(nil)

func (r *NotificationGormRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationGormRepository) List(
	ctx context.Context,
	f domain.Filter,
	limit, offset int,
) ([]models.Notification, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ?", f.UserID)

	if f.UnreadOnly {
		q = q.Where("is_read = ?", models.No)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if len(f.Priorities) > 0 {
		q = q.Where("priority IN ?", f.Priorities)
	}

	base := q.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC, id DESC"
	if f.UnreadFirst {
		order = "is_read ASC, " + order
	}

	var out []models.Notification
	err := base.Order(order).Limit(limit).Offset(offset).Find(&out).Error
	return out, total, err
}

func (r *NotificationGormRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, models.No).
		Count(&n).Error
	return n, err
}

func (r *NotificationGormRepository) Get(ctx context.Context, userID, id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&n).Error; err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

func (r *NotificationGormRepository) MarkRead(ctx context.Context, userID uint, ids []uint, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND id IN ? AND is_read = ?", userID, ids, models.No).
		Updates(map[string]any{"is_read": models.Yes, "read_at": at})
	return res.RowsAffected, res.Error
}

func (r *NotificationGormRepository) MarkAllRead(ctx context.Context, userID uint, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, models.No).
		Updates(map[string]any{"is_read": models.Yes, "read_at": at})
	return res.RowsAffected, res.Error
}

func (r *NotificationGormRepository) Delete(ctx context.Context, userID uint, ids []uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}

func (r *NotificationGormRepository) Cleanup(ctx context.Context, olderThan, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ? OR (expires_at IS NOT NULL AND expires_at < ?)", olderThan, now).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
