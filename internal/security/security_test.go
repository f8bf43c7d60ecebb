package security

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/appointmenttech-api/internal/auth"
	"github.com/BruksfildServices01/appointmenttech-api/internal/db/dbtest"
	"github.com/BruksfildServices01/appointmenttech-api/internal/infra/repository"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/ratelimit"
)

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/x", nil)
	r.RemoteAddr = "10.1.1.1:5555"
	assert.Equal(t, "10.1.1.1", ClientIP(r))

	r.Header.Set("X-Forwarded-For", " 203.0.113.9 , 10.0.0.1")
	assert.Equal(t, "203.0.113.9", ClientIP(r))
}

func TestFingerprint_StableAndHeaderSensitive(t *testing.T) {
	r1 := httptest.NewRequest("GET", "/x", nil)
	r1.Header.Set("User-Agent", "curl/8")
	r1.Header.Set("Accept-Language", "en")

	r2 := httptest.NewRequest("POST", "/other", nil)
	r2.Header.Set("User-Agent", "curl/8")
	r2.Header.Set("Accept-Language", "en")

	assert.Equal(t, Fingerprint(r1, "1.2.3.4"), Fingerprint(r2, "1.2.3.4"))
	assert.Len(t, Fingerprint(r1, "1.2.3.4"), 64)

	r2.Header.Set("Accept-Language", "pt-BR")
	assert.NotEqual(t, Fingerprint(r1, "1.2.3.4"), Fingerprint(r2, "1.2.3.4"))
	assert.NotEqual(t, Fingerprint(r1, "1.2.3.4"), Fingerprint(r1, "1.2.3.5"))
}

func TestScore(t *testing.T) {
	cases := []struct {
		name string
		in   Signals
		want int
	}{
		{"quiet", Signals{}, 0},
		{"busy", Signals{RecentRequests: 11}, 10},
		{"flood", Signals{RecentRequests: 21}, 25},
		{"injection", Signals{Malicious: true}, 40},
		{"some failures", Signals{FailedLogins: 4}, 15},
		{"many failures", Signals{FailedLogins: 6}, 30},
		{"everything", Signals{RecentRequests: 50, Malicious: true, FailedLogins: 9}, 95},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Score(tc.in))
		})
	}
}

func TestLooksMalicious(t *testing.T) {
	clean := httptest.NewRequest("GET", "/api/v1/news/all-news-posts?status=PUBLISHED", nil)
	assert.False(t, LooksMalicious(clean))

	sqli := httptest.NewRequest("GET", "/api/v1/users/all-users?name=x%27+or+1%3D1", nil)
	assert.True(t, LooksMalicious(sqli))

	union := httptest.NewRequest("GET", "/api/v1/pages/all-pages?q=1+UNION+SELECT+password", nil)
	assert.True(t, LooksMalicious(union))

	xss := httptest.NewRequest("GET", "/api/v1/pages/all-pages", nil)
	xss.Header.Set("Referer", "javascript:alert(1)")
	assert.True(t, LooksMalicious(xss))
}

func TestRuleFor(t *testing.T) {
	assert.Equal(t, "login", RuleFor("/api/v1/user/auth/login").Name)
	assert.Equal(t, "register", RuleFor("/api/v1/users/register").Name)
	assert.Equal(t, "forgot_password", RuleFor("/api/v1/users/forgot-password").Name)
	assert.Equal(t, "forgot_password", RuleFor("/api/v1/forgot_password").Name)
	assert.Equal(t, "default", RuleFor("/api/v1/pages/all-pages").Name)
}

type fakeRecorder struct {
	mu     sync.Mutex
	events []models.SecurityEvent
	failed int64
}

func (f *fakeRecorder) Record(ev models.SecurityEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
}

func (f *fakeRecorder) FailedLogins(context.Context, uint, time.Time) (int64, error) {
	return f.failed, nil
}

func TestMonitor_AssessNeverBlocksAndScores(t *testing.T) {
	rec := &fakeRecorder{failed: 6}
	mon := NewMonitor(ratelimit.NewMemory(), rec, "secret", zerolog.Nop())

	token, _, err := auth.Issue("secret", auth.Subject{ID: 9}, time.Hour, time.Now())
	require.NoError(t, err)

	var last Assessment
	for i := 0; i < 6; i++ {
		r := httptest.NewRequest("POST", "/api/v1/user/auth/login", nil)
		r.RemoteAddr = "198.51.100.7:1234"
		r.Header.Set("Authorization", "Bearer "+token)
		last = mon.Assess(context.Background(), r, "rid")
	}

	require.NotNil(t, last.UserID)
	assert.Equal(t, uint(9), *last.UserID)
	assert.True(t, last.RateLimited, "sixth login inside 300s exceeds the budget of 5")
	assert.Equal(t, 0, last.Remaining)
	assert.Equal(t, 30, last.Score)

	var attempts, exceeded int
	for _, ev := range rec.events {
		switch ev.EventType {
		case models.EventLoginAttempt:
			attempts++
		case models.EventRateLimitExceeded:
			exceeded++
		}
	}
	assert.Equal(t, 6, attempts)
	assert.Equal(t, 1, exceeded)
}

func TestMonitor_RecentRequestWindowIsTracked(t *testing.T) {
	rec := &fakeRecorder{}
	mon := NewMonitor(ratelimit.NewMemory(), rec, "secret", zerolog.Nop())

	var last Assessment
	for i := 0; i < 21; i++ {
		r := httptest.NewRequest("GET", "/api/v1/pages/all-pages", nil)
		r.RemoteAddr = "198.51.100.8:1234"
		last = mon.Assess(context.Background(), r, "")
	}

	assert.Equal(t, 25, last.Score)
	assert.Equal(t, models.SeverityMedium, rec.events[len(rec.events)-1].Severity)
}

func TestRenderReportPDF(t *testing.T) {
	rep := &Report{
		UserID:      1,
		TotalEvents: 1,
		RecentEvents: []EventView{
			{EventType: models.EventLoginSuccess, Severity: models.SeverityMedium, IPAddress: "1.1.1.1", CreatedAt: time.Now()},
		},
		ActiveSessions: []SessionView{{DeviceInfo: "curl/8", IPAddress: "1.1.1.1", ExpiresAt: time.Now()}},
		GeneratedAt:    time.Now(),
	}

	out, err := RenderReportPDF(rep, "a@b.io")
	require.NoError(t, err)
	assert.True(t, len(out) > 100)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestService_RecordPersistsOnClose(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(repository.NewSecurityGormRepository(db), time.Hour, zerolog.Nop())

	uid := uint(9)
	svc.Record(models.SecurityEvent{EventType: models.EventLoginFailed, UserID: &uid, IPAddress: "10.0.0.1"})
	svc.Record(models.SecurityEvent{EventType: models.EventLoginFailed, UserID: &uid, IPAddress: "10.0.0.1"})
	require.NoError(t, svc.Close(context.Background()))

	events, total, err := svc.Events(context.Background(), uid, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, events, 2)
	assert.Equal(t, models.SeverityMedium, events[0].Severity)

	n, err := svc.FailedLogins(context.Background(), uid, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
