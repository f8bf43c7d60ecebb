package security

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

var ErrNotFound = crud.ErrNotFound

type EventFilter struct {
	UserID    *uint
	EventType string
	Since     time.Time
}

type Repository interface {
	// -------- Events --------
	CreateEvent(ctx context.Context, ev *models.SecurityEvent) error
	CountEvents(ctx context.Context, f EventFilter) (int64, error)
	ListEvents(ctx context.Context, f EventFilter, limit, offset int) ([]models.SecurityEvent, int64, error)

	// -------- Sessions --------
	CreateSession(ctx context.Context, s *models.SecuritySession) error
	GetSession(ctx context.Context, id string) (*models.SecuritySession, error)
	TouchSession(ctx context.Context, id string, at time.Time) error
	RevokeSession(ctx context.Context, id string, at time.Time) error
	ListActiveSessions(ctx context.Context, userID uint, now time.Time) ([]models.SecuritySession, error)
	ActiveFingerprints(ctx context.Context, userID uint, since time.Time) ([]string, error)
	CountSessionsFromIP(ctx context.Context, userID uint, ip string, since time.Time) (int64, error)
	ExpireSessions(ctx context.Context, now time.Time) (int64, error)

	// -------- Blocks --------
	CreateBlock(ctx context.Context, b *models.SecurityBlock) error
	GetBlock(ctx context.Context, id uint) (*models.SecurityBlock, error)
	SaveBlock(ctx context.Context, b *models.SecurityBlock) error
	ListBlocks(ctx context.Context, status string, limit, offset int) ([]models.SecurityBlock, int64, error)
}
