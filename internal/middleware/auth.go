package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/appointmenttech-api/internal/auth"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
)

type SessionChecker interface {
	SessionActive(ctx context.Context, sessionID string) (bool, error)
}

// AuthRequired rejects requests without a valid bearer token backed by an
// active session.
func AuthRequired(secret string, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Authorization header is required.")
			return
		}

		status, code := authenticate(c, header, secret, sessions)
		if status != 0 {
			httperr.Abort(c, status, code, authMessages[code])
			return
		}
		c.Next()
	}
}

// AuthOptional identifies the caller when a valid token is sent and lets
// anonymous requests through.
func AuthOptional(secret string, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			authenticate(c, header, secret, sessions)
		}
		c.Next()
	}
}

var authMessages = map[string]string{
	"invalid_authorization_header": "Authorization header must be a bearer token.",
	"invalid_token":                "Invalid or expired token.",
	"session_revoked":              "Session is no longer active.",
	"internal_error":               "Internal server error.",
}

// authenticate stores the identity in c on success; otherwise it returns
// the status and error code to answer with.
func authenticate(c *gin.Context, header, secret string, sessions SessionChecker) (int, string) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return http.StatusUnauthorized, "invalid_authorization_header"
	}

	tokenString := strings.TrimSpace(parts[1])
	claims, err := auth.Parse(secret, tokenString)
	if err != nil {
		return http.StatusUnauthorized, "invalid_token"
	}

	sessionID := auth.SessionID(tokenString)
	active, err := sessions.SessionActive(c.Request.Context(), sessionID)
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("session lookup failed")
		return http.StatusInternalServerError, "internal_error"
	}
	if !active {
		return http.StatusUnauthorized, "session_revoked"
	}

	userID, _ := claims.UserID()
	c.Set(ContextUserID, userID)
	c.Set(ContextUserEmail, claims.Email)
	c.Set(ContextUserTypeID, claims.UserTypeID)
	c.Set(ContextSessionID, sessionID)
	c.Set(ContextToken, tokenString)
	return 0, ""
}
