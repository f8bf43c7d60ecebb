package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
)

const SecretKeyHeader = "secret-key"

// SecretKey rejects requests whose secret-key header differs from expected.
func SecretKey(expected string) gin.HandlerFunc {
	want := []byte(expected)

	return func(c *gin.Context) {
		got := []byte(c.GetHeader(SecretKeyHeader))
		if len(got) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_secret_key", "Invalid SECRET_KEY provided.")
			return
		}
		c.Next()
	}
}
