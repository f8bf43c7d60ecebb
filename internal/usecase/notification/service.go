package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	domain "github.com/BruksfildServices01/appointmenttech-api/internal/domain/notification"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

const (
	DefaultLimit  = 20
	MaxLimit      = 100
	retention     = 30 * 24 * time.Hour
	highPriorityN = 10

	ActionMarkRead = "mark_read"
	ActionDelete   = "delete"
)

// Pusher delivers a created notification to the user's live connections.
type Pusher interface {
	SendToUser(userID uint, v any) error
}

type Service struct {
	repo domain.Repository
	push Pusher
	log  zerolog.Logger
	now  func() time.Time
}

func NewService(repo domain.Repository, push Pusher, log zerolog.Logger) *Service {
	return &Service{repo: repo, push: push, log: log, now: time.Now}
}

func errNotFound() error {
	return httperr.NotFoundErr("notification_not_found", "Notification not found.")
}

// ======================================================
// Create
// ======================================================

type Input struct {
	UserID         uint
	BusinessUserID *uint
	Title          string
	Message        string
	Type           string
	Priority       string
	ActionURL      string
	ActionData     any
	ExpiresAt      *time.Time
}

func (s *Service) Create(ctx context.Context, in Input) (*models.Notification, error) {
	if in.Type == "" {
		in.Type = domain.TypeInfo
	}
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	if !domain.ValidType(in.Type) {
		return nil, httperr.ErrBusiness("invalid_notification_type")
	}
	if !domain.ValidPriority(in.Priority) {
		return nil, httperr.ErrBusiness("invalid_priority")
	}

	n := &models.Notification{
		UserID:         in.UserID,
		BusinessUserID: in.BusinessUserID,
		Title:          in.Title,
		Message:        in.Message,
		Type:           in.Type,
		Priority:       in.Priority,
		IsRead:         models.No,
		ActionURL:      in.ActionURL,
		ExpiresAt:      in.ExpiresAt,
	}
	if in.ActionData != nil {
		if raw, err := json.Marshal(in.ActionData); err == nil {
			n.ActionData = datatypes.JSON(raw)
		}
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.push != nil {
		if err := s.push.SendToUser(n.UserID, map[string]any{
			"type":         "notification",
			"notification": n,
		}); err != nil {
			s.log.Warn().Err(err).Uint("user_id", n.UserID).Msg("notification push failed")
		}
	}
	return n, nil
}

// notify is used by the side-effect helpers: a failure is logged and the
// calling flow carries on.
func (s *Service) notify(ctx context.Context, in Input) {
	if _, err := s.Create(ctx, in); err != nil {
		s.log.Error().Err(err).Uint("user_id", in.UserID).Str("title", in.Title).Msg("notification not created")
	}
}

// ------------------------------------------------------
// Helpers used by the other modules
// ------------------------------------------------------

func (s *Service) Registration(ctx context.Context, userID uint, name string) {
	s.notify(ctx, Input{
		UserID:    userID,
		Title:     "Welcome to AppointmentTech!",
		Message:   fmt.Sprintf("Hi %s, your account has been successfully created. Welcome to our platform! You can now start exploring our services.", name),
		Type:      domain.TypeSuccess,
		Priority:  domain.PriorityMedium,
		ActionURL: "/dashboard",
	})
}

func (s *Service) Login(ctx context.Context, userID uint, name, ip, device string, suspicious bool) {
	in := Input{
		UserID:   userID,
		Title:    "Successful Login",
		Message:  fmt.Sprintf("Hi %s, you have successfully logged into your account.", name),
		Type:     domain.TypeInfo,
		Priority: domain.PriorityLow,
		ActionData: map[string]any{
			"ip_address":  ip,
			"device_info": device,
			"login_time":  s.now().UTC().Format(time.RFC3339),
		},
	}
	if suspicious {
		in.Title = "Suspicious Login Detected"
		in.Message = fmt.Sprintf("Hi %s, we detected a login from an unrecognized device. If this wasn't you, please secure your account immediately.", name)
		in.Type = domain.TypeSecurity
		in.Priority = domain.PriorityHigh
		in.ActionURL = "/account/security"
	}
	s.notify(ctx, in)
}

func (s *Service) PasswordChanged(ctx context.Context, userID uint, name string) {
	s.notify(ctx, Input{
		UserID:    userID,
		Title:     "Password Changed Successfully",
		Message:   fmt.Sprintf("Hi %s, your password has been successfully changed. If you didn't make this change, please contact support immediately.", name),
		Type:      domain.TypeSecurity,
		Priority:  domain.PriorityHigh,
		ActionURL: "/account/security",
	})
}

func (s *Service) AccountLocked(ctx context.Context, userID uint, name, reason string, until time.Time) {
	s.notify(ctx, Input{
		UserID:    userID,
		Title:     "Account Temporarily Locked",
		Message:   fmt.Sprintf("Hi %s, your account has been temporarily locked due to %s. It will be unlocked at %s.", name, reason, until.Format("2006-01-02 15:04:05")),
		Type:      domain.TypeSecurity,
		Priority:  domain.PriorityUrgent,
		ActionURL: "/account/unlock",
		ActionData: map[string]any{
			"reason":      reason,
			"unlock_time": until.UTC().Format(time.RFC3339),
		},
	})
}

func (s *Service) BusinessRegistered(ctx context.Context, userID, businessUserID uint, name, businessName string) {
	s.notify(ctx, Input{
		UserID:         userID,
		BusinessUserID: &businessUserID,
		Title:          "Business Account Created",
		Message:        fmt.Sprintf("Hi %s, your business account '%s' has been successfully created. You can now start managing your business services.", name, businessName),
		Type:           domain.TypeSuccess,
		Priority:       domain.PriorityMedium,
		ActionURL:      "/business/dashboard",
	})
}

// Booking tells a business owner about a new booking, appointment or order.
func (s *Service) Booking(ctx context.Context, ownerID, businessUserID uint, kind, number string) {
	s.notify(ctx, Input{
		UserID:         ownerID,
		BusinessUserID: &businessUserID,
		Title:          fmt.Sprintf("New %s received", kind),
		Message:        fmt.Sprintf("A new %s (%s) has been created.", strings.ToLower(kind), number),
		Type:           domain.TypeBooking,
		Priority:       domain.PriorityMedium,
		ActionData:     map[string]any{"kind": kind, "number": number},
	})
}

func (s *Service) Payment(ctx context.Context, ownerID, businessUserID uint, reference, status string, amount float64) {
	priority := domain.PriorityMedium
	if status != models.TxSuccess {
		priority = domain.PriorityHigh
	}
	s.notify(ctx, Input{
		UserID:         ownerID,
		BusinessUserID: &businessUserID,
		Title:          "Payment " + strings.ToLower(status),
		Message:        fmt.Sprintf("Payment of %.2f for %s is %s.", amount, reference, strings.ToLower(status)),
		Type:           domain.TypePayment,
		Priority:       priority,
		ActionData:     map[string]any{"reference": reference, "status": status, "amount": amount},
	})
}

// ======================================================
// Reads (always scoped to the caller)
// ======================================================

type ListResult struct {
	Notifications []models.Notification `json:"notifications"`
	Total         int64                 `json:"total"`
	UnreadCount   int64                 `json:"unread_count"`
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func (s *Service) List(ctx context.Context, userID uint, limit, offset int, unreadOnly bool) (*ListResult, error) {
	if offset < 0 {
		offset = 0
	}
	items, total, err := s.repo.List(ctx, domain.Filter{UserID: userID, UnreadOnly: unreadOnly}, clampLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Notification{}
	}
	return &ListResult{Notifications: items, Total: total, UnreadCount: unread}, nil
}

type Counts struct {
	Total       int64 `json:"total"`
	UnreadCount int64 `json:"unread_count"`
}

func (s *Service) Count(ctx context.Context, userID uint) (Counts, error) {
	_, total, err := s.repo.List(ctx, domain.Filter{UserID: userID}, 0, 0)
	if err != nil {
		return Counts{}, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return Counts{}, err
	}
	return Counts{Total: total, UnreadCount: unread}, nil
}

func (s *Service) Unread(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	items, _, err := s.repo.List(ctx, domain.Filter{UserID: userID, UnreadOnly: true}, clampLimit(limit), 0)
	return items, err
}

func (s *Service) HighPriority(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = highPriorityN
	}
	items, _, err := s.repo.List(ctx, domain.Filter{
		UserID:      userID,
		Priorities:  []string{domain.PriorityHigh, domain.PriorityUrgent},
		UnreadFirst: true,
	}, clampLimit(limit), 0)
	return items, err
}

func (s *Service) ByType(ctx context.Context, userID uint, kind string, limit int) ([]models.Notification, error) {
	kind = strings.ToUpper(strings.TrimSpace(kind))
	if !domain.ValidType(kind) {
		return nil, httperr.E(http.StatusBadRequest, "invalid_notification_type", "Invalid notification type.")
	}
	items, _, err := s.repo.List(ctx, domain.Filter{UserID: userID, Type: kind}, clampLimit(limit), 0)
	return items, err
}

func (s *Service) Get(ctx context.Context, userID, id uint) (*models.Notification, error) {
	n, err := s.repo.Get(ctx, userID, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errNotFound()
	}
	return n, err
}

// ======================================================
// Writes
// ======================================================

func (s *Service) MarkRead(ctx context.Context, userID, id uint) (*models.Notification, error) {
	n, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if n.IsRead == models.Yes {
		return n, nil
	}
	now := s.now()
	if _, err := s.repo.MarkRead(ctx, userID, []uint{id}, now); err != nil {
		return nil, err
	}
	n.IsRead = models.Yes
	n.ReadAt = &now
	return n, nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID, s.now())
}

func (s *Service) Delete(ctx context.Context, userID, id uint) error {
	n, err := s.repo.Delete(ctx, userID, []uint{id})
	if err != nil {
		return err
	}
	if n == 0 {
		return errNotFound()
	}
	return nil
}

// Bulk applies action to the caller's notifications among ids and returns
// how many rows changed.
func (s *Service) Bulk(ctx context.Context, userID uint, ids []uint, action string) (int64, error) {
	if len(ids) == 0 {
		return 0, httperr.E(http.StatusBadRequest, "invalid_request", "notification_ids must not be empty.")
	}
	switch action {
	case ActionMarkRead:
		return s.repo.MarkRead(ctx, userID, ids, s.now())
	case ActionDelete:
		return s.repo.Delete(ctx, userID, ids)
	}
	return 0, httperr.E(http.StatusBadRequest, "invalid_action", "Action must be mark_read or delete.")
}

// ======================================================
// Cleanup
// ======================================================

func (s *Service) Cleanup(ctx context.Context) (int64, error) {
	now := s.now()
	return s.repo.Cleanup(ctx, now.Add(-retention), now)
}

// RunCleanup deletes stale notifications every interval until ctx ends.
func (s *Service) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Cleanup(ctx)
			if err != nil {
				s.log.Error().Err(err).Msg("notification cleanup failed")
				continue
			}
			if n > 0 {
				s.log.Info().Int64("deleted", n).Msg("old notifications cleaned up")
			}
		}
	}
}
