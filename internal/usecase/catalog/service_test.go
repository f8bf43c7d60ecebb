package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/cache"
	"github.com/BruksfildServices01/appointmenttech-api/internal/db/dbtest"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/infra/repository"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

// memCache round-trips through JSON like the Redis implementation.
type memCache struct {
	data map[string][]byte
	gets int
	hits int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string, dst any) (bool, error) {
	m.gets++
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	m.hits++
	return true, json.Unmarshal(raw, dst)
}

func (m *memCache) Set(_ context.Context, key string, v any, _ time.Duration) error {
	raw, err := json.Marshal(v)
	m.data[key] = raw
	return err
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func userTypeService(t *testing.T, c *memCache) *Service[models.UserType, *models.UserType] {
	t.Helper()
	db := dbtest.New(t)
	opt := Options[models.UserType]{
		Table:              "user_types",
		Label:              "User type",
		NameColumn:         "name",
		Name:               func(u *models.UserType) string { return u.Name },
		DuplicateCode:      "user_type_name_exists",
		NotFoundCode:       "user_type_not_found",
		AlreadyDeletedCode: "already_deleted",
		CacheTTL:           time.Minute,
	}
	var cc cache.Cache
	if c != nil {
		cc = c
	}
	return NewService[models.UserType, *models.UserType](
		repository.NewSoftDeleteRepository[models.UserType](db), opt, nil, cc)
}

var actor = audit.Actor{}

func TestCreate_DuplicateNameIsCaseInsensitive(t *testing.T) {
	s := userTypeService(t, nil)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, actor, &models.UserType{Name: "Admin"}))

	err := s.Create(ctx, actor, &models.UserType{Name: " admin "})
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, "user_type_name_exists", be.Code)
	assert.Equal(t, http.StatusBadRequest, be.HTTPStatus())
}

func TestUpdate_ChecksNameOnlyWhenChanged(t *testing.T) {
	s := userTypeService(t, nil)
	ctx := context.Background()

	a := &models.UserType{Name: "Admin"}
	b := &models.UserType{Name: "Member"}
	require.NoError(t, s.Create(ctx, actor, a))
	require.NoError(t, s.Create(ctx, actor, b))

	updated, err := s.Update(ctx, actor, a.ID, func(u *models.UserType) error {
		u.Description = "root"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "root", updated.Description)

	_, err = s.Update(ctx, actor, a.ID, func(u *models.UserType) error {
		u.Name = "MEMBER"
		return nil
	})
	assert.True(t, httperr.IsBusiness(err, "user_type_name_exists"))
}

func TestUpdate_RejectsIDChange(t *testing.T) {
	s := userTypeService(t, nil)
	ctx := context.Background()

	a := &models.UserType{Name: "Admin"}
	b := &models.UserType{Name: "Member"}
	require.NoError(t, s.Create(ctx, actor, a))
	require.NoError(t, s.Create(ctx, actor, b))

	_, err := s.Update(ctx, actor, a.ID, func(u *models.UserType) error {
		u.ID = b.ID
		u.Description = "moved"
		return nil
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_request"))

	got, err := s.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Description)
}

func TestDelete_HidesRowAndReportsSecondDelete(t *testing.T) {
	s := userTypeService(t, nil)
	ctx := context.Background()

	keep := &models.UserType{Name: "Keep"}
	gone := &models.UserType{Name: "Gone"}
	require.NoError(t, s.Create(ctx, actor, keep))
	require.NoError(t, s.Create(ctx, actor, gone))

	require.NoError(t, s.Delete(ctx, actor, gone.ID))

	items, total, err := s.List(ctx, crud.Query{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Keep", items[0].Name)

	_, err = s.Get(ctx, gone.ID)
	assert.True(t, httperr.IsBusiness(err, "user_type_not_found"))

	err = s.Delete(ctx, actor, gone.ID)
	assert.True(t, httperr.IsBusiness(err, "already_deleted"))

	err = s.Delete(ctx, actor, 9999)
	assert.True(t, httperr.IsBusiness(err, "user_type_not_found"))
}

func TestToggle(t *testing.T) {
	s := userTypeService(t, nil)
	ctx := context.Background()

	u := &models.UserType{Name: "Guest", IsActive: models.Yes}
	require.NoError(t, s.Create(ctx, actor, u))

	active := func(u *models.UserType) models.YesNo { return u.IsActive }

	next, err := s.Toggle(ctx, actor, u.ID, active)
	require.NoError(t, err)
	assert.Equal(t, models.No, next)

	next, err = s.Toggle(ctx, actor, u.ID, active)
	require.NoError(t, err)
	assert.Equal(t, models.Yes, next)
}

func TestList_CachesAndInvalidates(t *testing.T) {
	c := newMemCache()
	s := userTypeService(t, c)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, actor, &models.UserType{Name: "One"}))

	_, total, err := s.List(ctx, crud.Query{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 0, c.hits)

	_, _, err = s.List(ctx, crud.Query{})
	require.NoError(t, err)
	assert.Equal(t, 1, c.hits)

	require.NoError(t, s.Create(ctx, actor, &models.UserType{Name: "Two"}))

	items, total, err := s.List(ctx, crud.Query{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)
	assert.Equal(t, 1, c.hits)

	// filtered lists bypass the cache
	gets := c.gets
	_, _, err = s.List(ctx, crud.Query{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, gets, c.gets)
}
