package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/appointmenttech-api/internal/domain/security"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type SecurityGormRepository struct {
	db *gorm.DB
}

func NewSecurityGormRepository(db *gorm.DB) *SecurityGormRepository {
	return &SecurityGormRepository{db: db}
}

var _ domain.Repository = (*SecurityGormRepository)(nil)

// --------------------------------------------------
// Events
// --------------------------------------------------

func (r *SecurityGormRepository) CreateEvent(ctx context.Context, ev *models.SecurityEvent) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *SecurityGormRepository) eventQuery(ctx context.Context, f domain.EventFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.SecurityEvent{})
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.EventType != "" {
		q = q.Where("event_type = ?", f.EventType)
	}
	if !f.Since.IsZero() {
		q = q.Where("created_at >= ?", f.Since)
	}
	return q
}

func (r *SecurityGormRepository) CountEvents(ctx context.Context, f domain.EventFilter) (int64, error) {
	var n int64
	err := r.eventQuery(ctx, f).Count(&n).Error
	return n, err
}

func (r *SecurityGormRepository) ListEvents(
	ctx context.Context,
	f domain.EventFilter,
	limit, offset int,
) ([]models.SecurityEvent, int64, error) {

	q := r.eventQuery(ctx, f).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.SecurityEvent
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// --------------------------------------------------
// Sessions
// --------------------------------------------------

func (r *SecurityGormRepository) CreateSession(ctx context.Context, s *models.SecuritySession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SecurityGormRepository) GetSession(ctx context.Context, id string) (*models.SecuritySession, error) {
	var s models.SecuritySession
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *SecurityGormRepository) TouchSession(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.SecuritySession{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_activity":  at,
			"activity_count": gorm.Expr("activity_count + 1"),
		}).Error
}

func (r *SecurityGormRepository) RevokeSession(ctx context.Context, id string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.SecuritySession{}).
		Where("id = ? AND status = ?", id, models.SessionActive).
		Updates(map[string]any{
			"status":     models.SessionRevoked,
			"revoked_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SecurityGormRepository) ListActiveSessions(ctx context.Context, userID uint, now time.Time) ([]models.SecuritySession, error) {
	var out []models.SecuritySession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND expires_at > ?", userID, models.SessionActive, now).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *SecurityGormRepository) ActiveFingerprints(ctx context.Context, userID uint, since time.Time) ([]string, error) {
	var out []string
	err := r.db.WithContext(ctx).
		Model(&models.SecuritySession{}).
		Where("user_id = ? AND status = ? AND created_at >= ? AND device_fingerprint <> ''", userID, models.SessionActive, since).
		Distinct("device_fingerprint").
		Pluck("device_fingerprint", &out).Error
	return out, err
}

func (r *SecurityGormRepository) CountSessionsFromIP(ctx context.Context, userID uint, ip string, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.SecuritySession{}).
		Where("user_id = ? AND ip_address = ? AND created_at >= ?", userID, ip, since).
		Count(&n).Error
	return n, err
}

func (r *SecurityGormRepository) ExpireSessions(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.SecuritySession{}).
		Where("status = ? AND expires_at <= ?", models.SessionActive, now).
		Update("status", models.SessionExpired)
	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Blocks
// --------------------------------------------------

func (r *SecurityGormRepository) CreateBlock(ctx context.Context, b *models.SecurityBlock) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *SecurityGormRepository) GetBlock(ctx context.Context, id uint) (*models.SecurityBlock, error) {
	var b models.SecurityBlock
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *SecurityGormRepository) SaveBlock(ctx context.Context, b *models.SecurityBlock) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *SecurityGormRepository) ListBlocks(
	ctx context.Context,
	status string,
	limit, offset int,
) ([]models.SecurityBlock, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.SecurityBlock{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.SecurityBlock
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
