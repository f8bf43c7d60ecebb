package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointmenttech-api/internal/security"
)

var unmonitoredPaths = map[string]bool{
	"/health":       true,
	"/docs":         true,
	"/redoc":        true,
	"/openapi.json": true,
	"/metrics":      true,
}

// SecurityMonitor scores every request and reports the outcome in response
// headers. It never aborts.
func SecurityMonitor(mon *security.Monitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if unmonitoredPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		a := mon.Assess(c.Request.Context(), c.Request, RequestIDFrom(c))

		h := c.Writer.Header()
		h.Set("X-Security-Score", strconv.Itoa(a.Score))
		h.Set("X-Device-Fingerprint", a.Fingerprint)
		h.Set("X-Rate-Limit-Remaining", strconv.Itoa(a.Remaining))
		h.Set("X-IP-Blocking-Disabled", "true")

		c.Next()
	}
}
