package permission

import (
	"context"
	"errors"
	"net/http"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/catalog"
)

type Service struct {
	*catalog.Service[models.UserPermission, *models.UserPermission]

	userTypes crud.Repository[models.UserType]
	pages     crud.Repository[models.Page]
}

func NewService(
	repo crud.Repository[models.UserPermission],
	userTypes crud.Repository[models.UserType],
	pages crud.Repository[models.Page],
	dispatcher *audit.Dispatcher,
) *Service {
	return &Service{
		Service: catalog.NewService[models.UserPermission, *models.UserPermission](repo, catalog.Options[models.UserPermission]{
			Table:         "user_permissions",
			Label:         "User permission",
			DuplicateCode: "permission_exists",
			NotFoundCode:  "user_permission_not_found",
		}, dispatcher, nil),
		userTypes: userTypes,
		pages:     pages,
	}
}

type Input struct {
	UserTypeID uint         `json:"user_type_id" binding:"required"`
	PageID     uint         `json:"page_id" binding:"required"`
	CanView    models.YesNo `json:"can_view" binding:"omitempty,oneof=Y N"`
	CanCreate  models.YesNo `json:"can_create" binding:"omitempty,oneof=Y N"`
	CanUpdate  models.YesNo `json:"can_update" binding:"omitempty,oneof=Y N"`
	CanDelete  models.YesNo `json:"can_delete" binding:"omitempty,oneof=Y N"`
	IsActive   models.YesNo `json:"is_active" binding:"omitempty,oneof=Y N"`
}

func flag(v models.YesNo, def models.YesNo) models.YesNo {
	if v == "" {
		return def
	}
	return v
}

func (s *Service) checkRefs(ctx context.Context, userTypeID, pageID uint) error {
	if _, err := s.userTypes.Get(ctx, userTypeID); err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return httperr.NotFoundErr("user_type_not_found", "User type not found.")
		}
		return err
	}
	if _, err := s.pages.Get(ctx, pageID); err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return httperr.NotFoundErr("page_not_found", "Page not found.")
		}
		return err
	}
	return nil
}

func (s *Service) checkPair(ctx context.Context, userTypeID, pageID, excludeID uint) error {
	items, _, err := s.Repo().List(ctx, crud.Query{}.
		Where("user_type_id", userTypeID).
		Where("page_id", pageID))
	if err != nil {
		return err
	}
	for _, p := range items {
		if p.ID != excludeID {
			return httperr.E(http.StatusBadRequest, "permission_exists", "Permission for this user type and page already exists.")
		}
	}
	return nil
}

func (s *Service) CreatePermission(ctx context.Context, actor audit.Actor, in Input) (*models.UserPermission, error) {
	if err := s.checkRefs(ctx, in.UserTypeID, in.PageID); err != nil {
		return nil, err
	}
	if err := s.checkPair(ctx, in.UserTypeID, in.PageID, 0); err != nil {
		return nil, err
	}

	p := &models.UserPermission{
		UserTypeID: in.UserTypeID,
		PageID:     in.PageID,
		CanView:    flag(in.CanView, models.No),
		CanCreate:  flag(in.CanCreate, models.No),
		CanUpdate:  flag(in.CanUpdate, models.No),
		CanDelete:  flag(in.CanDelete, models.No),
		IsActive:   flag(in.IsActive, models.Yes),
	}
	if err := s.Create(ctx, actor, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdatePermission(ctx context.Context, actor audit.Actor, id uint, in Input) (*models.UserPermission, error) {
	if err := s.checkRefs(ctx, in.UserTypeID, in.PageID); err != nil {
		return nil, err
	}
	if err := s.checkPair(ctx, in.UserTypeID, in.PageID, id); err != nil {
		return nil, err
	}

	return s.Update(ctx, actor, id, func(p *models.UserPermission) error {
		p.UserTypeID = in.UserTypeID
		p.PageID = in.PageID
		p.CanView = flag(in.CanView, p.CanView)
		p.CanCreate = flag(in.CanCreate, p.CanCreate)
		p.CanUpdate = flag(in.CanUpdate, p.CanUpdate)
		p.CanDelete = flag(in.CanDelete, p.CanDelete)
		p.IsActive = flag(in.IsActive, p.IsActive)
		p.Page = nil
		return nil
	})
}

func (s *Service) ByUserType(ctx context.Context, userTypeID uint) ([]models.UserPermission, error) {
	items, _, err := s.Repo().List(ctx, crud.Query{}.Where("user_type_id", userTypeID))
	return items, err
}

// WithPages returns the active permissions of a user type with their page.
func (s *Service) WithPages(ctx context.Context, userTypeID uint) ([]models.UserPermission, error) {
	q := crud.Query{Preload: []string{"Page"}}.
		Where("user_type_id", userTypeID).
		OnlyActive(models.Yes)
	items, _, err := s.Repo().List(ctx, q)
	return items, err
}
