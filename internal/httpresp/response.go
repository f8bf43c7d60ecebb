package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the body of every successful response.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type Page[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

func Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func OK(c *gin.Context, message string, data any) {
	Success(c, http.StatusOK, message, data)
}

func Created(c *gin.Context, message string, data any) {
	Success(c, http.StatusCreated, message, data)
}

// List never serializes a nil slice as null.
func List[T any](c *gin.Context, message string, data []T) {
	if data == nil {
		data = []T{}
	}
	OK(c, message, data)
}

func Paged[T any](c *gin.Context, message string, items []T, total int64, limit, offset int) {
	if items == nil {
		items = []T{}
	}
	OK(c, message, Page[T]{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}
