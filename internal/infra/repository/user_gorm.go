package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/appointmenttech-api/internal/domain/user"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type UserGormRepository struct {
	*CrudGormRepository[models.User]
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{CrudGormRepository: NewSoftDeleteRepository[models.User](db)}
}

var _ domain.Repository = (*UserGormRepository)(nil)

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Order("is_deleted ASC, id DESC").
		First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserGormRepository) FindByResetToken(ctx context.Context, tokenHash string) (*models.User, error) {
	var u models.User
	if err := r.scoped(ctx).
		Where("reset_token_hash = ?", tokenHash).
		First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserGormRepository) RecordFailedLogin(ctx context.Context, id uint, attempts int, lockedUntil *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"failed_login_attempts": attempts,
			"account_locked_until":  lockedUntil,
		}).Error
}

func (r *UserGormRepository) RecordLogin(ctx context.Context, id uint, at time.Time, ip string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"failed_login_attempts": 0,
			"account_locked_until":  nil,
			"last_login_at":         at,
			"last_login_ip":         ip,
		}).Error
}

func (r *UserGormRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"password_hash":      hash,
			"reset_token_hash":   "",
			"reset_token_expiry": nil,
			"modified_on":        time.Now(),
		}).Error
}

func (r *UserGormRepository) SetResetToken(ctx context.Context, id uint, tokenHash string, expiry *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"reset_token_hash":   tokenHash,
			"reset_token_expiry": expiry,
		}).Error
}
