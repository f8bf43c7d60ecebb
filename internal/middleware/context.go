package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/security"
)

const (
	ContextUserID     = "userID"
	ContextUserEmail  = "userEmail"
	ContextUserTypeID = "userTypeID"
	ContextSessionID  = "sessionID"
	ContextRequestID  = "request_id"
	ContextToken      = "accessToken"
)

// CurrentUserID returns the authenticated user, if any.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// MustUserID is for handlers mounted behind AuthRequired.
func MustUserID(c *gin.Context) uint {
	return c.MustGet(ContextUserID).(uint)
}

func RequestIDFrom(c *gin.Context) string {
	return c.GetString(ContextRequestID)
}

// Actor describes the caller for audit columns and audit log entries.
func Actor(c *gin.Context) audit.Actor {
	a := audit.Actor{
		IP:        security.ClientIP(c.Request),
		UserAgent: c.Request.UserAgent(),
		SessionID: c.GetString(ContextSessionID),
	}
	if id, ok := CurrentUserID(c); ok {
		a.UserID = &id
	}
	return a
}
