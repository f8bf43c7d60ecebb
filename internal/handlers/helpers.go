package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/timezone"
)

// --------------------------------------------------
// Path / query params
// --------------------------------------------------

// pathID reads a numeric path param; on failure the 400 is already written.
func pathID(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid "+name+".")
		return 0, false
	}
	return uint(n), true
}

func queryUint(c *gin.Context, name string) uint {
	n, _ := strconv.ParseUint(c.Query(name), 10, 64)
	return uint(n)
}

func queryInt(c *gin.Context, name string, def int) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return n
}

// paging reads limit/offset; limit is clamped to [1, max].
func paging(c *gin.Context, def, max int) (int, int) {
	limit := queryInt(c, "limit", def)
	if limit <= 0 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// activeFlag reads ?active=Y|N; anything else means no filter.
func activeFlag(c *gin.Context) *models.YesNo {
	f := models.YesNo(strings.ToUpper(c.Query("active")))
	if !f.Valid() {
		return nil
	}
	return &f
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, timezone.Location(""))
}

// --------------------------------------------------
// Bodies
// --------------------------------------------------

// protected keys never come from a request body.
var protected = []string{
	"id", "business_user_id",
	"added_by", "added_on", "modified_by", "modified_on",
	"deleted_by", "deleted_on", "is_deleted",
	"created_at", "updated_at",
}

var errEmptyBody = errors.New("request body is empty")

// scrub drops the protected keys of a JSON object. Keys are compared
// case-insensitively since encoding/json matches fields that way.
func scrub(body []byte, keep ...string) ([]byte, error) {
	if len(body) == 0 {
		return nil, errEmptyBody
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	for k := range fields {
		if isProtected(k, keep) {
			delete(fields, k)
		}
	}
	return json.Marshal(fields)
}

func isProtected(key string, keep []string) bool {
	for _, k := range keep {
		if strings.EqualFold(k, key) {
			return false
		}
	}
	for _, p := range protected {
		if strings.EqualFold(p, key) {
			return true
		}
	}
	return false
}

// mergeJSON overlays the fields present in body onto dst.
func mergeJSON(body []byte, dst any) error {
	clean, err := scrub(body)
	if err != nil {
		return err
	}
	return json.Unmarshal(clean, dst)
}

// bindCreate binds and validates a new row; keep lists the protected keys
// the caller may still set.
func bindCreate(c *gin.Context, dst any, keep ...string) error {
	body, err := c.GetRawData()
	if err != nil {
		return err
	}
	clean, err := scrub(body, keep...)
	if err != nil {
		return err
	}
	return binding.JSON.BindBody(clean, dst)
}

// mergeValid merges body onto dst and runs the binding tags again.
func mergeValid(body []byte, dst any) error {
	if err := mergeJSON(body, dst); err != nil {
		return invalid(err)
	}
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		return invalid(err)
	}
	return nil
}

// invalid turns a body or validation error into the usecase error shape.
func invalid(err error) error {
	return httperr.BusinessError{Code: "invalid_request", Message: "Request validation failed: " + err.Error()}
}

// notFound maps a bare repository miss onto a coded 404.
func notFound(err error, code, message string) error {
	if errors.Is(err, crud.ErrNotFound) {
		return httperr.NotFoundErr(code, message)
	}
	return err
}
