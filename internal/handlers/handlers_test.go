package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/appointmenttech-api/internal/db/dbtest"
	"github.com/BruksfildServices01/appointmenttech-api/internal/infra/repository"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/catalog"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/payment"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/vertical"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Status    string          `json:"status"`
	ErrorCode string          `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

func do(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

// ======================================================
// Catalogue
// ======================================================

func userTypesRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db := dbtest.New(t)
	svc := catalog.NewService[models.UserType, *models.UserType](
		repository.NewSoftDeleteRepository[models.UserType](db),
		catalog.Options[models.UserType]{
			Table:         "user_types",
			Label:         "User type",
			NameColumn:    "name",
			Name:          func(u *models.UserType) string { return u.Name },
			DuplicateCode: "user_type_name_exists",
			NotFoundCode:  "user_type_not_found",
		}, nil, nil)
	h := NewCatalogHandler(svc, "User type", ValidateUserType)

	r := gin.New()
	r.GET("/user-types", h.List)
	r.GET("/user-types/:id", h.Get)
	r.POST("/user-types", h.Create)
	r.PUT("/user-types/:id", h.Update)
	r.DELETE("/user-types/:id", h.Delete)
	return r
}

func TestCatalog_CreateAndDuplicate(t *testing.T) {
	r := userTypesRouter(t)

	w, env := do(t, r, "POST", "/user-types", gin.H{"name": "Admin"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "User type created successfully", env.Message)

	w, env = do(t, r, "POST", "/user-types", gin.H{"name": "ADMIN"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "user_type_name_exists", env.ErrorCode)

	w, env = do(t, r, "POST", "/user-types", gin.H{"description": "no name"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", env.ErrorCode)

	w, env = do(t, r, "POST", "/user-types", gin.H{"name": "Guest", "is_member": "maybe"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", env.ErrorCode)
}

func TestCatalog_GetErrors(t *testing.T) {
	r := userTypesRouter(t)

	w, env := do(t, r, "GET", "/user-types/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_id", env.ErrorCode)

	w, env = do(t, r, "GET", "/user-types/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "user_type_not_found", env.ErrorCode)
}

func TestCatalog_UpdateMergesBody(t *testing.T) {
	r := userTypesRouter(t)

	_, env := do(t, r, "POST", "/user-types", gin.H{"name": "Member", "description": "first"})
	var created models.UserType
	require.NoError(t, json.Unmarshal(env.Data, &created))

	w, env := do(t, r, "PUT", "/user-types/"+strconv.Itoa(int(created.ID)), gin.H{"description": "second", "id": 500})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.UserType
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Member", updated.Name)
	assert.Equal(t, "second", updated.Description)

	w, _ = do(t, r, "PUT", "/user-types/"+strconv.Itoa(int(created.ID)), gin.H{"Is_Deleted": "Y", "ID": 500})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, r, "GET", "/user-types/"+strconv.Itoa(int(created.ID)), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, "DELETE", "/user-types/"+strconv.Itoa(int(created.ID)), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, "GET", "/user-types", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

// ======================================================
// Vertical resources
// ======================================================

type roomsFixture struct {
	router *gin.Engine
	mine   models.BusinessUser
	other  models.BusinessUser
}

func roomsRouter(t *testing.T) *roomsFixture {
	t.Helper()
	db := dbtest.New(t)
	f := &roomsFixture{
		mine:  models.BusinessUser{UserID: 1, BusinessTypeID: 1, BusinessName: "Sunrise"},
		other: models.BusinessUser{UserID: 2, BusinessTypeID: 1, BusinessName: "Moonlight"},
	}
	require.NoError(t, db.Create(&f.mine).Error)
	require.NoError(t, db.Create(&f.other).Error)

	hostel := vertical.NewHostel(
		repository.NewRepository[models.Room](db),
		repository.NewRepository[models.Customer](db),
		repository.NewBookingGormRepository(db),
		repository.NewSoftDeleteRepository[models.BusinessUser](db),
		nil, nil,
	)
	h := NewHostelHandler(hostel)

	r := gin.New()
	r.GET("/rooms", h.Rooms.List)
	r.GET("/rooms/:id", h.Rooms.Get)
	r.POST("/rooms", h.Rooms.Create)
	r.PUT("/rooms/:id", h.Rooms.Update)
	f.router = r
	return f
}

func idPath(base string, id uint) string {
	return base + "/" + strconv.Itoa(int(id))
}

func TestResource_TenantScoping(t *testing.T) {
	f := roomsRouter(t)

	w, env := do(t, f.router, "POST", "/rooms", gin.H{
		"business_user_id": f.mine.ID,
		"room_number":      "101",
		"capacity":         2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var room models.Room
	require.NoError(t, json.Unmarshal(env.Data, &room))
	assert.Equal(t, f.mine.ID, room.BusinessUserID)
	assert.Equal(t, "Available", room.RoomStatus)

	mine := "?business_user_id=" + strconv.Itoa(int(f.mine.ID))
	other := "?business_user_id=" + strconv.Itoa(int(f.other.ID))

	w, env = do(t, f.router, "GET", "/rooms"+other, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []models.Room `json:"items"`
		Total int64         `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Empty(t, page.Items)

	w, _ = do(t, f.router, "GET", "/rooms"+mine, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, f.router, "GET", idPath("/rooms", room.ID)+other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "room_not_found", env.ErrorCode)

	w, _ = do(t, f.router, "GET", idPath("/rooms", room.ID)+mine, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResource_ListNeedsBusiness(t *testing.T) {
	f := roomsRouter(t)

	w, env := do(t, f.router, "GET", "/rooms", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "business_user_id_required", env.ErrorCode)

	w, env = do(t, f.router, "GET", "/rooms?business_user_id=404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "business_user_not_found", env.ErrorCode)
}

func TestResource_UpdateKeepsOwnerAndValidates(t *testing.T) {
	f := roomsRouter(t)

	_, env := do(t, f.router, "POST", "/rooms", gin.H{
		"business_user_id": f.mine.ID,
		"room_number":      "201",
		"capacity":         1,
	})
	var room models.Room
	require.NoError(t, json.Unmarshal(env.Data, &room))

	w, env := do(t, f.router, "PUT", idPath("/rooms", room.ID), gin.H{
		"business_user_id": f.other.ID,
		"capacity":         3,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Room
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, f.mine.ID, updated.BusinessUserID)
	assert.Equal(t, 3, updated.Capacity)

	w, env = do(t, f.router, "PUT", idPath("/rooms", room.ID), gin.H{"capacity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", env.ErrorCode)

	w, env = do(t, f.router, "PUT", idPath("/rooms", room.ID), gin.H{"room_status": "Flooded"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", env.ErrorCode)
}

func TestResource_UpdateCannotTakeAnotherTenantsRow(t *testing.T) {
	f := roomsRouter(t)

	create := func(owner uint, number string) models.Room {
		w, env := do(t, f.router, "POST", "/rooms", gin.H{"business_user_id": owner, "room_number": number, "capacity": 1})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var room models.Room
		require.NoError(t, json.Unmarshal(env.Data, &room))
		return room
	}
	mineRoom := create(f.mine.ID, "A1")
	otherRoom := create(f.other.ID, "B1")

	mine := "?business_user_id=" + strconv.Itoa(int(f.mine.ID))
	other := "?business_user_id=" + strconv.Itoa(int(f.other.ID))

	w, env := do(t, f.router, "PUT", idPath("/rooms", mineRoom.ID)+mine, gin.H{
		"ID":               otherRoom.ID,
		"Business_User_ID": f.mine.ID,
		"room_number":      "A2",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Room
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, mineRoom.ID, updated.ID)
	assert.Equal(t, "A2", updated.RoomNumber)

	w, env = do(t, f.router, "GET", idPath("/rooms", otherRoom.ID)+other, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var untouched models.Room
	require.NoError(t, json.Unmarshal(env.Data, &untouched))
	assert.Equal(t, f.other.ID, untouched.BusinessUserID)
	assert.Equal(t, "B1", untouched.RoomNumber)

	w, _ = do(t, f.router, "GET", idPath("/rooms", otherRoom.ID)+mine, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResource_CreateIgnoresBodyID(t *testing.T) {
	f := roomsRouter(t)

	w, env := do(t, f.router, "POST", "/rooms", gin.H{
		"Id":               77,
		"business_user_id": f.mine.ID,
		"room_number":      "301",
		"capacity":         1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var room models.Room
	require.NoError(t, json.Unmarshal(env.Data, &room))
	assert.NotEqual(t, uint(77), room.ID)
	assert.Equal(t, f.mine.ID, room.BusinessUserID)
}

// ======================================================
// Payment webhook
// ======================================================

func TestWebhook_PaymentID(t *testing.T) {
	svc := payment.NewService(nil, nil, nil, nil, nil, "")
	h := NewPaymentHandler(svc)

	r := gin.New()
	r.POST("/webhook", h.Webhook)

	w, env := do(t, r, "POST", "/webhook", gin.H{"type": "payment"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_notification", env.ErrorCode)

	// Any id reaches the service, which has no gateway here.
	for name, tc := range map[string]struct {
		path string
		body any
	}{
		"numeric body id": {"/webhook", gin.H{"data": gin.H{"id": 123456}}},
		"string body id":  {"/webhook", gin.H{"data": gin.H{"id": "123456"}}},
		"query id":        {"/webhook?data.id=123456", nil},
	} {
		t.Run(name, func(t *testing.T) {
			w, env := do(t, r, "POST", tc.path, tc.body)
			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
			assert.Equal(t, "payments_disabled", env.ErrorCode)
		})
	}
}

// ======================================================
// Helpers
// ======================================================

func TestMergeJSON_DropsProtectedKeys(t *testing.T) {
	room := models.Room{ID: 7, BusinessUserID: 3, RoomNumber: "1", Capacity: 1}
	require.NoError(t, mergeJSON([]byte(`{"id":9,"business_user_id":4,"room_number":"2"}`), &room))

	assert.Equal(t, uint(7), room.ID)
	assert.Equal(t, uint(3), room.BusinessUserID)
	assert.Equal(t, "2", room.RoomNumber)

	require.NoError(t, mergeJSON([]byte(`{"ID":9,"Business_User_ID":4,"Room_Number":"3"}`), &room))
	assert.Equal(t, uint(7), room.ID)
	assert.Equal(t, uint(3), room.BusinessUserID)
	assert.Equal(t, "3", room.RoomNumber)

	assert.ErrorIs(t, mergeJSON(nil, &room), errEmptyBody)
}

func TestScrub_KeepsAllowedKeys(t *testing.T) {
	clean, err := scrub([]byte(`{"Id":1,"BUSINESS_USER_ID":2,"Is_Deleted":"Y","name":"x"}`), "business_user_id")
	require.NoError(t, err)
	assert.JSONEq(t, `{"BUSINESS_USER_ID":2,"name":"x"}`, string(clean))
}

func TestPaging(t *testing.T) {
	for query, want := range map[string][2]int{
		"":                   {100, 0},
		"?limit=5&offset=10": {5, 10},
		"?limit=0":           {100, 0},
		"?limit=5000":        {1000, 0},
		"?limit=x&offset=-3": {100, 0},
	} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/"+query, nil)

		limit, offset := paging(c, 100, 1000)
		assert.Equal(t, want, [2]int{limit, offset}, query)
	}
}
