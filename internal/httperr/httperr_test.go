package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(err error) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/x", func(c *gin.Context) { FromError(c, err) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w
}

func TestFromError_Business(t *testing.T) {
	w := serve(fmt.Errorf("wrapped: %w", E(http.StatusConflict, "room_unavailable", "Room is booked.")))

	assert.Equal(t, http.StatusConflict, w.Code)

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "room_unavailable", body.Code)
	assert.Equal(t, "Room is booked.", body.Message)
}

func TestFromError_BusinessDefaultsTo400(t *testing.T) {
	w := serve(ErrBusiness("invalid_state"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFromError_Unknown(t *testing.T) {
	w := serve(errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("ctx: %w", ErrBusiness("already_deleted"))

	assert.True(t, IsBusiness(err, "already_deleted"))
	assert.False(t, IsBusiness(err, "other"))
	assert.False(t, IsBusiness(errors.New("plain"), "already_deleted"))
}
