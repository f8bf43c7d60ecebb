package security

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/appointmenttech-api/internal/auth"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/ratelimit"
)

// Rule is a sliding-window request budget.
type Rule struct {
	Name   string
	Limit  int
	Window time.Duration
}

var (
	loginRule          = Rule{Name: "login", Limit: 5, Window: 300 * time.Second}
	registerRule       = Rule{Name: "register", Limit: 3, Window: time.Hour}
	forgotPasswordRule = Rule{Name: "forgot_password", Limit: 3, Window: time.Hour}
	defaultRule        = Rule{Name: "default", Limit: 100, Window: 60 * time.Second}

	recentWindow = 300 * time.Second
)

// RuleFor picks the budget by path substring.
func RuleFor(path string) Rule {
	p := strings.ToLower(path)
	switch {
	case strings.Contains(p, "login"):
		return loginRule
	case strings.Contains(p, "register"):
		return registerRule
	case strings.Contains(p, "forgot_password"), strings.Contains(p, "forgot-password"):
		return forgotPasswordRule
	}
	return defaultRule
}

type Assessment struct {
	IP          string
	UserAgent   string
	Fingerprint string
	UserID      *uint
	Score       int
	Remaining   int
	RateLimited bool
}

type Recorder interface {
	Record(ev models.SecurityEvent)
	FailedLogins(ctx context.Context, userID uint, since time.Time) (int64, error)
}

// Monitor scores requests. It only observes: nothing it computes blocks a
// request.
type Monitor struct {
	limiter   ratelimit.Limiter
	recorder  Recorder
	jwtSecret string
	log       zerolog.Logger
	now       func() time.Time
}

func NewMonitor(limiter ratelimit.Limiter, recorder Recorder, jwtSecret string, log zerolog.Logger) *Monitor {
	return &Monitor{
		limiter:   limiter,
		recorder:  recorder,
		jwtSecret: jwtSecret,
		log:       log,
		now:       time.Now,
	}
}

func (m *Monitor) Assess(ctx context.Context, r *http.Request, requestID string) Assessment {
	a := Assessment{
		IP:        ClientIP(r),
		UserAgent: DeviceInfo(r),
	}
	a.Fingerprint = Fingerprint(r, a.IP)
	a.UserID = m.bearerUser(r)

	path := r.URL.Path
	rule := RuleFor(path)

	res, err := m.limiter.Allow(ctx, a.IP+":"+path, rule.Limit, rule.Window)
	if err != nil {
		m.log.Error().Err(err).Msg("rate limiter unavailable")
	}
	a.Remaining = res.Remaining
	a.RateLimited = err == nil && !res.Allowed

	recent, err := m.limiter.Hit(ctx, a.IP+":all", recentWindow)
	if err != nil {
		m.log.Error().Err(err).Msg("rate limiter unavailable")
	}

	sig := Signals{
		RecentRequests: recent,
		Malicious:      LooksMalicious(r),
	}
	if a.UserID != nil {
		n, err := m.recorder.FailedLogins(ctx, *a.UserID, m.now().Add(-time.Hour))
		if err != nil {
			m.log.Error().Err(err).Msg("failed login count")
		}
		sig.FailedLogins = n
	}
	a.Score = Score(sig)

	if a.RateLimited {
		m.log.Warn().
			Str("ip", a.IP).
			Str("path", path).
			Msg("rate limit exceeded, request allowed")

		m.recorder.Record(m.event(a, models.EventRateLimitExceeded, models.SeverityMedium, requestID, map[string]any{
			"endpoint": path,
			"method":   r.Method,
			"rule":     rule.Name,
		}))
	}

	eventType := models.EventAPIAccess
	if strings.Contains(path, "login") {
		eventType = models.EventLoginAttempt
	}

	m.recorder.Record(m.event(a, eventType, Severity(a.Score), requestID, map[string]any{
		"endpoint":             path,
		"method":               r.Method,
		"suspicious_score":     a.Score,
		"rate_limit_exceeded":  a.RateLimited,
		"ip_blocking_disabled": true,
	}))

	if a.Score > 90 {
		m.log.Warn().
			Str("ip", a.IP).
			Int("score", a.Score).
			Msg("high suspicious activity, monitoring only")
	}

	return a
}

// bearerUser reads the subject of a valid bearer token. Session state is
// not checked here.
func (m *Monitor) bearerUser(r *http.Request) *uint {
	h := r.Header.Get("Authorization")
	if len(h) < 8 || !strings.EqualFold(h[:7], "Bearer ") {
		return nil
	}

	claims, err := auth.Parse(m.jwtSecret, strings.TrimSpace(h[7:]))
	if err != nil {
		return nil
	}
	id, err := claims.UserID()
	if err != nil {
		return nil
	}
	return &id
}

func (m *Monitor) event(a Assessment, eventType, severity, requestID string, meta map[string]any) models.SecurityEvent {
	var raw datatypes.JSON
	if b, err := json.Marshal(meta); err == nil {
		raw = b
	}

	return models.SecurityEvent{
		EventType:         eventType,
		Severity:          severity,
		UserID:            a.UserID,
		IPAddress:         a.IP,
		UserAgent:         a.UserAgent,
		DeviceFingerprint: a.Fingerprint,
		RequestID:         requestID,
		SuspiciousScore:   a.Score,
		Metadata:          raw,
		CreatedAt:         m.now(),
	}
}
