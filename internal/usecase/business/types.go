package business

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/cache"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/catalog"
)

type TypeService struct {
	*catalog.Service[models.BusinessType, *models.BusinessType]
}

func NewTypeService(repo crud.Repository[models.BusinessType], dispatcher *audit.Dispatcher, c cache.Cache, opt catalog.Options[models.BusinessType]) *TypeService {
	opt.Table = "business_types"
	opt.Label = "Business type"
	opt.NameColumn = "name"
	opt.Name = func(t *models.BusinessType) string { return t.Name }
	opt.DuplicateCode = "business_type_name_exists"
	opt.NotFoundCode = "business_type_not_found"

	return &TypeService{
		Service: catalog.NewService[models.BusinessType, *models.BusinessType](repo, opt, dispatcher, c),
	}
}

// TypeInput is bound from a multipart form; nil fields are left unchanged
// on update. Media and Icon carry the URLs of already stored uploads.
type TypeInput struct {
	Name        *string       `form:"type_name"`
	Description *string       `form:"description"`
	Code        *string       `form:"code"`
	Status      *string       `form:"status"`
	Color       *string       `form:"color"`
	Features    *string       `form:"features"`
	IsActive    *models.YesNo `form:"is_active" binding:"omitempty,oneof=Y N"`

	Media string `form:"-"`
	Icon  string `form:"-"`
}

func features(raw string) (datatypes.JSON, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if !json.Valid([]byte(raw)) {
		return nil, httperr.BusinessError{Code: "invalid_features", Message: "features must be valid JSON."}
	}
	return datatypes.JSON(raw), nil
}

func (in TypeInput) apply(t *models.BusinessType) error {
	if in.Name != nil {
		t.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Code != nil {
		t.Code = *in.Code
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.Color != nil {
		t.Color = *in.Color
	}
	if in.Features != nil {
		f, err := features(*in.Features)
		if err != nil {
			return err
		}
		t.Features = f
	}
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
	if in.Media != "" {
		t.Media = in.Media
	}
	if in.Icon != "" {
		t.Icon = in.Icon
	}
	return nil
}

func (s *TypeService) CreateType(ctx context.Context, actor audit.Actor, in TypeInput) (*models.BusinessType, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, httperr.BusinessError{Code: "invalid_request", Message: "type_name is required."}
	}

	t := &models.BusinessType{IsActive: models.Yes}
	if err := in.apply(t); err != nil {
		return nil, err
	}
	if err := s.Create(ctx, actor, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TypeService) UpdateType(ctx context.Context, actor audit.Actor, id uint, in TypeInput) (*models.BusinessType, error) {
	return s.Update(ctx, actor, id, in.apply)
}
