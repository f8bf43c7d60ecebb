package security

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

const MaxScore = 100

var maliciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\b(union|select|insert|update|delete|drop|create|alter)\b)`),
	regexp.MustCompile(`(?i)(--|\b(and|or)\b\s+\d+\s*=\s*\d+)`),
	regexp.MustCompile(`(?i)(\b(script|javascript|vbscript|onload|onerror)\b)`),
}

// Signals are the inputs of the suspicious score.
type Signals struct {
	RecentRequests int
	Malicious      bool
	FailedLogins   int64
}

// Score adds up the signal weights, capped at MaxScore.
func Score(s Signals) int {
	score := 0

	switch {
	case s.RecentRequests > 20:
		score += 25
	case s.RecentRequests > 10:
		score += 10
	}

	if s.Malicious {
		score += 40
	}

	switch {
	case s.FailedLogins > 5:
		score += 30
	case s.FailedLogins > 3:
		score += 15
	}

	if score > MaxScore {
		score = MaxScore
	}
	return score
}

// Credential headers carry random base64 that trips the patterns.
var unscannedHeaders = []string{"Authorization", "Cookie", "Secret-Key"}

// LooksMalicious matches injection patterns against the request line,
// headers and query string.
func LooksMalicious(r *http.Request) bool {
	headers := r.Header.Clone()
	for _, h := range unscannedHeaders {
		headers.Del(h)
	}

	raw, err := json.Marshal(map[string]any{
		"path":         r.URL.Path,
		"method":       r.Method,
		"headers":      headers,
		"query_params": r.URL.Query(),
	})
	if err != nil {
		return false
	}

	for _, p := range maliciousPatterns {
		if p.Match(raw) {
			return true
		}
	}
	return false
}

func Severity(score int) string {
	if score > 70 {
		return models.SeverityHigh
	}
	return models.SeverityMedium
}
