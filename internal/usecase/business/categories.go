package business

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/cache"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/catalog"
)

type CategoryService struct {
	*catalog.Service[models.BusinessCategory, *models.BusinessCategory]

	types crud.Repository[models.BusinessType]
}

func NewCategoryService(
	repo crud.Repository[models.BusinessCategory],
	types crud.Repository[models.BusinessType],
	dispatcher *audit.Dispatcher,
	c cache.Cache,
) *CategoryService {
	return &CategoryService{
		Service: catalog.NewService[models.BusinessCategory, *models.BusinessCategory](repo, catalog.Options[models.BusinessCategory]{
			Table:              "business_categories",
			Label:              "Business category",
			NameColumn:         "name",
			Name:               func(c *models.BusinessCategory) string { return c.Name },
			DuplicateCode:      "business_category_name_exists",
			NotFoundCode:       "business_category_not_found",
			AlreadyDeletedCode: "already_deleted",
		}, dispatcher, c),
		types: types,
	}
}

type CategoryInput struct {
	BusinessTypeID *uint         `form:"business_type_id"`
	Name           *string       `form:"category_name"`
	ShortName      *string       `form:"short_name"`
	Code           *string       `form:"code"`
	Description    *string       `form:"description"`
	IsActive       *models.YesNo `form:"is_active" binding:"omitempty,oneof=Y N"`

	Media string `form:"-"`
	Icon  string `form:"-"`
}

func (in CategoryInput) apply(c *models.BusinessCategory) {
	if in.BusinessTypeID != nil {
		c.BusinessTypeID = *in.BusinessTypeID
	}
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.ShortName != nil {
		c.ShortName = strings.TrimSpace(*in.ShortName)
	}
	if in.Code != nil {
		c.Code = *in.Code
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if in.Media != "" {
		c.Media = in.Media
	}
	if in.Icon != "" {
		c.Icon = in.Icon
	}
}

func (s *CategoryService) checkType(ctx context.Context, id uint) error {
	if _, err := s.types.Get(ctx, id); err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return httperr.NotFoundErr("business_type_not_found", "Business type not found.")
		}
		return err
	}
	return nil
}

// ListCategories fails with 404 when nothing matches.
func (s *CategoryService) ListCategories(ctx context.Context, q crud.Query) ([]models.BusinessCategory, int64, error) {
	items, total, err := s.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	if len(items) == 0 {
		return nil, 0, httperr.NotFoundErr("no_business_categories", "No business categories found.")
	}
	return items, total, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, actor audit.Actor, in CategoryInput) (*models.BusinessCategory, error) {
	if in.BusinessTypeID == nil || in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, httperr.BusinessError{Code: "invalid_request", Message: "business_type_id and category_name are required."}
	}
	if err := s.checkType(ctx, *in.BusinessTypeID); err != nil {
		return nil, err
	}

	c := &models.BusinessCategory{IsActive: models.Yes}
	in.apply(c)
	if c.ShortName == "" {
		c.ShortName = c.Name
	}
	if err := s.Create(ctx, actor, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, actor audit.Actor, id uint, in CategoryInput) (*models.BusinessCategory, error) {
	if in.BusinessTypeID != nil {
		if err := s.checkType(ctx, *in.BusinessTypeID); err != nil {
			return nil, err
		}
	}
	return s.Update(ctx, actor, id, func(c *models.BusinessCategory) error {
		in.apply(c)
		return nil
	})
}
