package user

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/auth"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/security"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/business"
)

// Notifier creates the account notifications; failures are its concern.
type Notifier interface {
	Registration(ctx context.Context, userID uint, name string)
	Login(ctx context.Context, userID uint, name, ip, device string, suspicious bool)
	PasswordChanged(ctx context.Context, userID uint, name string)
	AccountLocked(ctx context.Context, userID uint, name, reason string, until time.Time)
}

type SecurityLog interface {
	Log(ev security.Event)
	DeviceConsistency(ctx context.Context, userID uint, fingerprint, ip string) []string
	CreateSession(ctx context.Context, in security.NewSession) (*models.SecuritySession, error)
	RevokeSession(ctx context.Context, userID uint, id string) error
	ActiveSessions(ctx context.Context, userID uint) ([]models.SecuritySession, error)
}

type PermissionSource interface {
	WithPages(ctx context.Context, userTypeID uint) ([]models.UserPermission, error)
}

// IdentityVerifier checks an identity-provider token and reports its holder.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*auth.GoogleIdentity, error)
}

type BusinessCreator interface {
	CheckTypes(ctx context.Context, ids []uint) error
	CreateMany(ctx context.Context, actor audit.Actor, in []business.UserInput) ([]models.BusinessUser, error)
}
