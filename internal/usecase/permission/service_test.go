package permission

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/db/dbtest"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/infra/repository"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

func TestPermissions(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	ut := models.UserType{Name: "Owner", IsActive: models.Yes}
	require.NoError(t, db.Create(&ut).Error)
	page := models.Page{Name: "dashboard", DisplayText: "Dashboard", IsActive: models.Yes}
	require.NoError(t, db.Create(&page).Error)

	s := NewService(
		repository.NewSoftDeleteRepository[models.UserPermission](db),
		repository.NewSoftDeleteRepository[models.UserType](db),
		repository.NewSoftDeleteRepository[models.Page](db),
		nil,
	)
	actor := audit.Actor{}

	p, err := s.CreatePermission(ctx, actor, Input{UserTypeID: ut.ID, PageID: page.ID, CanView: models.Yes})
	require.NoError(t, err)
	assert.Equal(t, models.Yes, p.CanView)
	assert.Equal(t, models.No, p.CanDelete)

	_, err = s.CreatePermission(ctx, actor, Input{UserTypeID: ut.ID, PageID: page.ID})
	assert.True(t, httperr.IsBusiness(err, "permission_exists"))

	_, err = s.CreatePermission(ctx, actor, Input{UserTypeID: ut.ID, PageID: 999})
	assert.True(t, httperr.IsBusiness(err, "page_not_found"))

	_, err = s.CreatePermission(ctx, actor, Input{UserTypeID: 999, PageID: page.ID})
	assert.True(t, httperr.IsBusiness(err, "user_type_not_found"))

	updated, err := s.UpdatePermission(ctx, actor, p.ID, Input{UserTypeID: ut.ID, PageID: page.ID, CanDelete: models.Yes})
	require.NoError(t, err)
	assert.Equal(t, models.Yes, updated.CanDelete)
	assert.Equal(t, models.Yes, updated.CanView)

	withPages, err := s.WithPages(ctx, ut.ID)
	require.NoError(t, err)
	require.Len(t, withPages, 1)
	require.NotNil(t, withPages[0].Page)
	assert.Equal(t, "dashboard", withPages[0].Page.Name)
}
