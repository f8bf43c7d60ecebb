package user

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

var ErrNotFound = crud.ErrNotFound

type Repository interface {
	crud.Repository[models.User]

	// FindByEmail also returns soft-deleted users so login can tell them apart.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByResetToken(ctx context.Context, tokenHash string) (*models.User, error)

	RecordFailedLogin(ctx context.Context, id uint, attempts int, lockedUntil *time.Time) error
	RecordLogin(ctx context.Context, id uint, at time.Time, ip string) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
	SetResetToken(ctx context.Context, id uint, tokenHash string, expiry *time.Time) error
}
