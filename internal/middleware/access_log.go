package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/BruksfildServices01/appointmenttech-api/internal/security"
)

// AccessLog attaches a request-scoped logger to the request context and
// writes one line per request once the handler returns. The trace id is
// added when the request arrives inside a sampled span.
func AccessLog(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		lc := base.With().Str("request_id", RequestIDFrom(c))
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.IsValid() {
			lc = lc.Str("trace_id", sc.TraceID().String())
		}
		l := lc.Logger()
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		status := c.Writer.Status()
		ev := l.Info()
		switch {
		case status >= 500:
			ev = l.Error()
		case status >= 400:
			ev = l.Warn()
		}

		ev.Str("method", c.Request.Method).
			Str("route", route).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", security.ClientIP(c.Request)).
			Msg("request")
	}
}
