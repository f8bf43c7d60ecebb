package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type HTTPError struct {
	Status  string `json:"status"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Status:  "error",
		Code:    code,
		Message: message,
	})
}

func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Status:  "error",
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

// InvalidRequest answers a binding failure.
func InvalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, HTTPError{
		Status:  "error",
		Code:    "invalid_request",
		Message: "Request validation failed.",
		Details: err.Error(),
	})
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// FromError writes the response for an error returned by a usecase.
// Business errors keep their status; anything else is logged and becomes 500.
func FromError(c *gin.Context, err error) {
	if be, ok := AsBusiness(err); ok {
		msg := be.Message
		if msg == "" {
			msg = be.Code
		}
		Write(c, be.HTTPStatus(), be.Code, msg)
		return
	}

	zerolog.Ctx(c.Request.Context()).Error().
		Err(err).
		Str("path", c.FullPath()).
		Msg("unhandled error")
	Internal(c, "internal_error", "Internal server error.")
}
