package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CORS(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", SecretKeyHeader, RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader, "X-Security-Score", "X-Device-Fingerprint", "X-Rate-Limit-Remaining", "X-IP-Blocking-Disabled"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
