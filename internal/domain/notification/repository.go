package notification

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

var ErrNotFound = crud.ErrNotFound

const (
	TypeInfo      = "INFO"
	TypeSuccess   = "SUCCESS"
	TypeWarning   = "WARNING"
	TypeError     = "ERROR"
	TypeSecurity  = "SECURITY"
	TypeBooking   = "BOOKING"
	TypePayment   = "PAYMENT"
	TypeSystem    = "SYSTEM"
	TypePromotion = "PROMOTION"

	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

var types = map[string]bool{
	TypeInfo: true, TypeSuccess: true, TypeWarning: true, TypeError: true, TypeSecurity: true,
	TypeBooking: true, TypePayment: true, TypeSystem: true, TypePromotion: true,
}

var priorities = map[string]bool{
	PriorityLow: true, PriorityMedium: true, PriorityHigh: true, PriorityUrgent: true,
}

func ValidType(t string) bool     { return types[t] }
func ValidPriority(p string) bool { return priorities[p] }

// Filter always scopes to one user.
type Filter struct {
	UserID     uint
	UnreadOnly bool
	Type       string
	Priorities []string
	// UnreadFirst sorts unread rows before read ones.
	UnreadFirst bool
}

type Repository interface {
	Create(ctx context.Context, n *models.Notification) error
	List(ctx context.Context, f Filter, limit, offset int) ([]models.Notification, int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	Get(ctx context.Context, userID, id uint) (*models.Notification, error)

	MarkRead(ctx context.Context, userID uint, ids []uint, at time.Time) (int64, error)
	MarkAllRead(ctx context.Context, userID uint, at time.Time) (int64, error)
	Delete(ctx context.Context, userID uint, ids []uint) (int64, error)

	// Cleanup removes rows created before olderThan and rows expired at now.
	Cleanup(ctx context.Context, olderThan, now time.Time) (int64, error)
}
