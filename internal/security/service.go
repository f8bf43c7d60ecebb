package security

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	domain "github.com/BruksfildServices01/appointmenttech-api/internal/domain/security"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

const (
	RiskNewDevice        = "NEW_DEVICE"
	RiskMultipleDevices  = "MULTIPLE_DEVICES_SAME_IP"
	reportWindow         = 30 * 24 * time.Hour
	reportEventLimit     = 50
	reportRecentEvents   = 10
	knownDeviceWindow    = 30 * 24 * time.Hour
	sameIPWindow         = 7 * 24 * time.Hour
	sameIPSessionLimit   = 3
	defaultBlockDuration = 24
)

type Service struct {
	repo       domain.Repository
	queue      *audit.Queue[models.SecurityEvent]
	log        zerolog.Logger
	sessionTTL time.Duration
	now        func() time.Time
}

func NewService(repo domain.Repository, sessionTTL time.Duration, log zerolog.Logger) *Service {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &Service{
		repo:       repo,
		queue: audit.NewQueue("security", 500, func(ctx context.Context, ev models.SecurityEvent) error {
			return repo.CreateEvent(ctx, &ev)
		}, log),
		log:        log,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

var _ Recorder = (*Service)(nil)

// ======================================================
// Events
// ======================================================

// Record queues ev for asynchronous persistence.
func (s *Service) Record(ev models.SecurityEvent) {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = s.now()
	}
	if ev.Severity == "" {
		ev.Severity = models.SeverityMedium
	}
	s.queue.Push(ev)
}

// Event is the shorthand used by the auth flows.
type Event struct {
	Type        string
	Severity    string
	UserID      *uint
	UserEmail   string
	Request     *http.Request
	SessionID   string
	RequestID   string
	Score       int
	RiskFactors []string
	Metadata    map[string]any
}

func (s *Service) Log(ev Event) {
	out := models.SecurityEvent{
		EventType:       ev.Type,
		Severity:        ev.Severity,
		UserID:          ev.UserID,
		UserEmail:       ev.UserEmail,
		SessionID:       ev.SessionID,
		RequestID:       ev.RequestID,
		SuspiciousScore: ev.Score,
		RiskFactors:     jsonOf(ev.RiskFactors),
		Metadata:        jsonOf(ev.Metadata),
	}
	if ev.Request != nil {
		out.IPAddress = ClientIP(ev.Request)
		out.UserAgent = DeviceInfo(ev.Request)
		out.DeviceFingerprint = Fingerprint(ev.Request, out.IPAddress)
	}
	s.Record(out)
}

func (s *Service) FailedLogins(ctx context.Context, userID uint, since time.Time) (int64, error) {
	return s.repo.CountEvents(ctx, domain.EventFilter{
		UserID:    &userID,
		EventType: models.EventLoginFailed,
		Since:     since,
	})
}

func (s *Service) Events(ctx context.Context, userID uint, limit, offset int) ([]models.SecurityEvent, int64, error) {
	return s.repo.ListEvents(ctx, domain.EventFilter{UserID: &userID}, limit, offset)
}

// ======================================================
// Sessions
// ======================================================

// DeviceConsistency lists the risk factors of a login from fingerprint/ip.
func (s *Service) DeviceConsistency(ctx context.Context, userID uint, fingerprint, ip string) []string {
	now := s.now()
	risks := []string{}

	known, err := s.repo.ActiveFingerprints(ctx, userID, now.Add(-knownDeviceWindow))
	if err != nil {
		s.log.Error().Err(err).Msg("device consistency lookup failed")
		return risks
	}
	if len(known) > 0 && !contains(known, fingerprint) {
		risks = append(risks, RiskNewDevice)
	}

	n, err := s.repo.CountSessionsFromIP(ctx, userID, ip, now.Add(-sameIPWindow))
	if err != nil {
		s.log.Error().Err(err).Msg("device consistency lookup failed")
		return risks
	}
	if n > sameIPSessionLimit {
		risks = append(risks, RiskMultipleDevices)
	}

	return risks
}

// GeographicAnomaly has no geo source to consult.
func (s *Service) GeographicAnomaly(context.Context, uint, string) bool {
	return false
}

type NewSession struct {
	ID          string
	UserID      uint
	UserEmail   string
	Request     *http.Request
	RiskFactors []string
}

func (s *Service) CreateSession(ctx context.Context, in NewSession) (*models.SecuritySession, error) {
	now := s.now()
	ip := ClientIP(in.Request)

	sess := &models.SecuritySession{
		ID:                in.ID,
		UserID:            in.UserID,
		UserEmail:         in.UserEmail,
		TokenType:         "bearer",
		ExpiresAt:         now.Add(s.sessionTTL),
		DeviceFingerprint: Fingerprint(in.Request, ip),
		DeviceInfo:        DeviceInfo(in.Request),
		IPAddress:         ip,
		Status:            models.SessionActive,
		SuspiciousScore:   len(in.RiskFactors) * 25,
		RiskFactors:       jsonOf(in.RiskFactors),
		CreatedFrom:       "LOGIN",
		LastActivity:      now,
	}

	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SessionActive reports whether the session is usable and records activity.
func (s *Service) SessionActive(ctx context.Context, id string) (bool, error) {
	sess, err := s.repo.GetSession(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	now := s.now()
	if sess.Status != models.SessionActive || !sess.ExpiresAt.After(now) {
		return false, nil
	}

	if err := s.repo.TouchSession(ctx, id, now); err != nil {
		s.log.Warn().Err(err).Msg("session touch failed")
	}
	return true, nil
}

// RevokeSession revokes one of the caller's own sessions.
func (s *Service) RevokeSession(ctx context.Context, userID uint, id string) error {
	sess, err := s.repo.GetSession(ctx, id)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && sess.UserID != userID) {
		return httperr.NotFoundErr("session_not_found", "Session not found.")
	}
	if err != nil {
		return err
	}

	if err := s.repo.RevokeSession(ctx, id, s.now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness("session_not_active")
		}
		return err
	}
	return nil
}

func (s *Service) ActiveSessions(ctx context.Context, userID uint) ([]models.SecuritySession, error) {
	return s.repo.ListActiveSessions(ctx, userID, s.now())
}

func (s *Service) ExpireSessions(ctx context.Context) (int64, error) {
	return s.repo.ExpireSessions(ctx, s.now())
}

// ======================================================
// Report
// ======================================================

type EventView struct {
	ID              uint            `json:"event_id"`
	EventType       string          `json:"event_type"`
	Severity        string          `json:"severity"`
	IPAddress       string          `json:"ip_address"`
	SuspiciousScore int             `json:"suspicious_score"`
	CreatedAt       time.Time       `json:"created_at"`
	Metadata        json.RawMessage `json:"event_metadata,omitempty"`
}

type SessionView struct {
	ID                string    `json:"session_id"`
	IPAddress         string    `json:"ip_address"`
	DeviceFingerprint string    `json:"device_fingerprint"`
	DeviceInfo        string    `json:"device_info"`
	CreatedAt         time.Time `json:"created_at"`
	ExpiresAt         time.Time `json:"expires_at"`
}

type Report struct {
	UserID             uint          `json:"user_id"`
	TotalEvents        int           `json:"total_events"`
	FailedLogins       int           `json:"failed_logins"`
	SuccessfulLogins   int           `json:"successful_logins"`
	SuspiciousEvents   int           `json:"suspicious_events"`
	ActiveSessionCount int           `json:"active_session_count"`
	RecentEvents       []EventView   `json:"recent_events"`
	ActiveSessions     []SessionView `json:"active_sessions"`
	GeneratedAt        time.Time     `json:"generated_at"`
}

func (s *Service) Report(ctx context.Context, userID uint) (*Report, error) {
	now := s.now()

	events, _, err := s.repo.ListEvents(ctx, domain.EventFilter{
		UserID: &userID,
		Since:  now.Add(-reportWindow),
	}, reportEventLimit, 0)
	if err != nil {
		return nil, err
	}

	sessions, err := s.repo.ListActiveSessions(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		UserID:             userID,
		TotalEvents:        len(events),
		ActiveSessionCount: len(sessions),
		RecentEvents:       []EventView{},
		ActiveSessions:     []SessionView{},
		GeneratedAt:        now,
	}

	for i, ev := range events {
		switch ev.EventType {
		case models.EventLoginFailed:
			rep.FailedLogins++
		case models.EventLoginSuccess:
			rep.SuccessfulLogins++
		}
		if ev.SuspiciousScore > 70 {
			rep.SuspiciousEvents++
		}
		if i < reportRecentEvents {
			rep.RecentEvents = append(rep.RecentEvents, EventView{
				ID:              ev.ID,
				EventType:       ev.EventType,
				Severity:        ev.Severity,
				IPAddress:       ev.IPAddress,
				SuspiciousScore: ev.SuspiciousScore,
				CreatedAt:       ev.CreatedAt,
				Metadata:        json.RawMessage(ev.Metadata),
			})
		}
	}

	for _, sess := range sessions {
		rep.ActiveSessions = append(rep.ActiveSessions, SessionView{
			ID:                sess.ID,
			IPAddress:         sess.IPAddress,
			DeviceFingerprint: sess.DeviceFingerprint,
			DeviceInfo:        sess.DeviceInfo,
			CreatedAt:         sess.CreatedAt,
			ExpiresAt:         sess.ExpiresAt,
		})
	}

	return rep, nil
}

// ======================================================
// Blocks (recorded for review, never enforced)
// ======================================================

type BlockInput struct {
	BlockType     string `json:"block_type" binding:"required,oneof=IP USER DEVICE"`
	BlockReason   string `json:"block_reason" binding:"required"`
	TargetValue   string `json:"target_value" binding:"required"`
	UserID        *uint  `json:"user_id"`
	UserEmail     string `json:"user_email"`
	Description   string `json:"description"`
	RiskScore     int    `json:"risk_score" binding:"min=0,max=100"`
	DurationHours int    `json:"block_duration_hours" binding:"min=0"`
}

func (s *Service) Blocks(ctx context.Context, status string, limit, offset int) ([]models.SecurityBlock, int64, error) {
	return s.repo.ListBlocks(ctx, status, limit, offset)
}

func (s *Service) CreateBlock(ctx context.Context, in BlockInput, by *uint) (*models.SecurityBlock, error) {
	hours := in.DurationHours
	if hours <= 0 {
		hours = defaultBlockDuration
	}

	b := &models.SecurityBlock{
		BlockType:       in.BlockType,
		BlockReason:     in.BlockReason,
		Status:          models.BlockActive,
		TargetValue:     in.TargetValue,
		UserID:          in.UserID,
		UserEmail:       in.UserEmail,
		Description:     in.Description,
		RiskScore:       in.RiskScore,
		DurationHours:   hours,
		ExpiresAt:       s.now().Add(time.Duration(hours) * time.Hour),
		CreatedBySystem: false,
		CreatedByUserID: by,
	}

	if err := s.repo.CreateBlock(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Unblock(ctx context.Context, id uint) (*models.SecurityBlock, error) {
	b, err := s.repo.GetBlock(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.NotFoundErr("block_not_found", "Security block not found.")
	}
	if err != nil {
		return nil, err
	}
	if b.Status != models.BlockActive {
		return nil, httperr.ErrBusiness("block_not_active")
	}

	now := s.now()
	b.Status = models.BlockManualUnblock
	b.UnblockedAt = &now

	if err := s.repo.SaveBlock(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Close flushes queued events.
func (s *Service) Close(ctx context.Context) error {
	return s.queue.Close(ctx)
}

func jsonOf(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
