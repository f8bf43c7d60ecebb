package business

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/db/dbtest"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/infra/repository"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/catalog"
)

func ptr[T any](v T) *T { return &v }

func newTypes(db *gorm.DB) *TypeService {
	return NewTypeService(repository.NewSoftDeleteRepository[models.BusinessType](db), nil, nil, catalog.Options[models.BusinessType]{})
}

func TestTypes_DuplicateNameAndFeatures(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	s := newTypes(db)

	bt, err := s.CreateType(ctx, audit.Actor{}, TypeInput{Name: ptr("Hostel"), Features: ptr(`["rooms","meals"]`)})
	require.NoError(t, err)
	assert.Equal(t, models.Yes, bt.IsActive)
	assert.JSONEq(t, `["rooms","meals"]`, string(bt.Features))

	_, err = s.CreateType(ctx, audit.Actor{}, TypeInput{Name: ptr(" hostel ")})
	assert.True(t, httperr.IsBusiness(err, "business_type_name_exists"))

	_, err = s.CreateType(ctx, audit.Actor{}, TypeInput{Name: ptr("Garage"), Features: ptr(`{broken`)})
	assert.True(t, httperr.IsBusiness(err, "invalid_features"))

	// Renaming to itself skips the duplicate check.
	_, err = s.UpdateType(ctx, audit.Actor{}, bt.ID, TypeInput{Name: ptr("HOSTEL"), Color: ptr("#fff")})
	require.NoError(t, err)
}

func TestCategories(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	types := newTypes(db)
	s := NewCategoryService(
		repository.NewSoftDeleteRepository[models.BusinessCategory](db),
		repository.NewSoftDeleteRepository[models.BusinessType](db),
		nil, nil,
	)

	_, _, err := s.ListCategories(ctx, crud.Query{})
	assert.True(t, httperr.IsBusiness(err, "no_business_categories"))

	bt, err := types.CreateType(ctx, audit.Actor{}, TypeInput{Name: ptr("Hospital")})
	require.NoError(t, err)

	_, err = s.CreateCategory(ctx, audit.Actor{}, CategoryInput{BusinessTypeID: ptr(uint(999)), Name: ptr("Clinic")})
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, be.HTTPStatus())

	c, err := s.CreateCategory(ctx, audit.Actor{}, CategoryInput{BusinessTypeID: &bt.ID, Name: ptr("Clinic")})
	require.NoError(t, err)
	assert.Equal(t, "Clinic", c.ShortName)

	_, err = s.CreateCategory(ctx, audit.Actor{}, CategoryInput{BusinessTypeID: &bt.ID, Name: ptr("CLINIC")})
	be, ok = httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, "business_category_name_exists", be.Code)
	assert.Equal(t, http.StatusBadRequest, be.HTTPStatus())

	other, err := s.CreateCategory(ctx, audit.Actor{}, CategoryInput{BusinessTypeID: &bt.ID, Name: ptr("Pharmacy")})
	require.NoError(t, err)

	_, err = s.UpdateCategory(ctx, audit.Actor{}, other.ID, CategoryInput{Name: ptr("clinic")})
	assert.True(t, httperr.IsBusiness(err, "business_category_name_exists"))

	require.NoError(t, s.Delete(ctx, audit.Actor{}, c.ID))
	err = s.Delete(ctx, audit.Actor{}, c.ID)
	assert.True(t, httperr.IsBusiness(err, "already_deleted"))

	items, total, err := s.ListCategories(ctx, crud.Query{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Pharmacy", items[0].Name)
}

type recordNotifier struct{ businesses []string }

func (r *recordNotifier) BusinessRegistered(_ context.Context, _, _ uint, _, businessName string) {
	r.businesses = append(r.businesses, businessName)
}

func TestBusinessUsers(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	ut := models.UserType{Name: "Owner", IsActive: models.Yes}
	require.NoError(t, db.Create(&ut).Error)
	owner := models.User{FullName: "Ravi", Email: "ravi@example.com", PasswordHash: "x", UserTypeID: ut.ID, IsActive: models.Yes}
	require.NoError(t, db.Create(&owner).Error)
	bt, err := newTypes(db).CreateType(ctx, audit.Actor{}, TypeInput{Name: ptr("Catering")})
	require.NoError(t, err)

	notify := &recordNotifier{}
	s := NewUserService(
		repository.NewBusinessUserGormRepository(db),
		repository.NewSoftDeleteRepository[models.User](db),
		repository.NewSoftDeleteRepository[models.BusinessType](db),
		notify, nil, nil,
	)

	b, err := s.CreateBusinessUser(ctx, audit.Actor{}, UserInput{UserID: &owner.ID, BusinessTypeID: &bt.ID, BusinessName: ptr("Ravi Foods")})
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, b.SubscriptionPlan)
	assert.Equal(t, 1000, b.MonthlyLimit)
	assert.Equal(t, []string{"Ravi Foods"}, notify.businesses)

	_, err = s.CreateBusinessUser(ctx, audit.Actor{}, UserInput{UserID: ptr(uint(999)), BusinessTypeID: &bt.ID, BusinessName: ptr("Ghost")})
	assert.True(t, httperr.IsBusiness(err, "user_not_found"))

	// One bad entry rejects the whole batch.
	_, err = s.CreateMany(ctx, audit.Actor{}, []UserInput{
		{UserID: &owner.ID, BusinessTypeID: &bt.ID, BusinessName: ptr("Second")},
		{UserID: &owner.ID, BusinessTypeID: ptr(uint(999)), BusinessName: ptr("Third")},
	})
	assert.True(t, httperr.IsBusiness(err, "business_type_not_found"))
	n, err := s.Repo().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rows, err := s.CreateMany(ctx, audit.Actor{}, []UserInput{
		{UserID: &owner.ID, BusinessTypeID: &bt.ID, BusinessName: ptr("Second")},
		{UserID: &owner.ID, BusinessTypeID: &bt.ID, BusinessName: ptr("Third")},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.NotZero(t, rows[1].ID)

	items, _, err := s.List(ctx, crud.Query{}.Where("user_id", owner.ID))
	require.NoError(t, err)
	assert.Len(t, items, 3)
}
