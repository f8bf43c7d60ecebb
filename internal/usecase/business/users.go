package business

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/business"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/storage"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/catalog"
)

// Notifier tells an owner their business was registered.
type Notifier interface {
	BusinessRegistered(ctx context.Context, userID, businessUserID uint, name, businessName string)
}

type UserService struct {
	*catalog.Service[models.BusinessUser, *models.BusinessUser]

	repo    business.UserRepository
	users   crud.Repository[models.User]
	types   crud.Repository[models.BusinessType]
	notify  Notifier
	uploads *storage.Uploader
	audit   *audit.Dispatcher
}

func NewUserService(
	repo business.UserRepository,
	users crud.Repository[models.User],
	types crud.Repository[models.BusinessType],
	notify Notifier,
	uploads *storage.Uploader,
	dispatcher *audit.Dispatcher,
) *UserService {
	return &UserService{
		Service: catalog.NewService[models.BusinessUser, *models.BusinessUser](repo, catalog.Options[models.BusinessUser]{
			Table:        "business_users",
			Label:        "Business user",
			NotFoundCode: "business_user_not_found",
		}, dispatcher, nil),
		repo:    repo,
		users:   users,
		types:   types,
		notify:  notify,
		uploads: uploads,
		audit:   dispatcher,
	}
}

type UserInput struct {
	UserID         *uint   `json:"user_id"`
	BusinessTypeID *uint   `json:"business_type_id"`
	BusinessName   *string `json:"business_name" binding:"omitempty,max=255"`
	Description    *string `json:"business_description"`
	Logo           *string `json:"business_logo"`
	Banner         *string `json:"business_banner"`
	Address        *string `json:"business_address"`
	Phone          *string `json:"business_phone" binding:"omitempty,max=20"`
	Email          *string `json:"business_email" binding:"omitempty,email"`
	Website        *string `json:"business_website"`
	GSTNumber      *string `json:"gst_number" binding:"omitempty,max=20"`
	PANNumber      *string `json:"pan_number" binding:"omitempty,max=20"`
	License        *string `json:"business_license"`

	SubscriptionPlan   *string    `json:"subscription_plan" binding:"omitempty,oneof=FREE BASIC PREMIUM ENTERPRISE"`
	SubscriptionStatus *string    `json:"subscription_status" binding:"omitempty,oneof=Active Inactive Expired Suspended"`
	SubscriptionStart  *time.Time `json:"subscription_start_date"`
	SubscriptionEnd    *time.Time `json:"subscription_end_date"`
	MonthlyLimit       *int       `json:"monthly_limit" binding:"omitempty,min=0"`
	CurrentMonthUsage  *int       `json:"current_month_usage" binding:"omitempty,min=0"`

	IsVerified   *models.YesNo `json:"is_verified" binding:"omitempty,oneof=Y N"`
	IsActive     *models.YesNo `json:"is_active" binding:"omitempty,oneof=Y N"`
	IsFeatured   *models.YesNo `json:"is_featured" binding:"omitempty,oneof=Y N"`
	Rating       *float64      `json:"rating" binding:"omitempty,min=0,max=5"`
	TotalReviews *int          `json:"total_reviews" binding:"omitempty,min=0"`
}

func (in UserInput) apply(b *models.BusinessUser) {
	str := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	flag := func(dst *models.YesNo, v *models.YesNo) {
		if v != nil {
			*dst = *v
		}
	}
	num := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}

	if in.UserID != nil {
		b.UserID = *in.UserID
	}
	if in.BusinessTypeID != nil {
		b.BusinessTypeID = *in.BusinessTypeID
	}
	str(&b.BusinessName, in.BusinessName)
	str(&b.Description, in.Description)
	str(&b.Logo, in.Logo)
	str(&b.Banner, in.Banner)
	str(&b.Address, in.Address)
	str(&b.Phone, in.Phone)
	str(&b.Email, in.Email)
	str(&b.Website, in.Website)
	str(&b.GSTNumber, in.GSTNumber)
	str(&b.PANNumber, in.PANNumber)
	str(&b.License, in.License)
	str(&b.SubscriptionPlan, in.SubscriptionPlan)
	str(&b.SubscriptionStatus, in.SubscriptionStatus)
	if in.SubscriptionStart != nil {
		b.SubscriptionStart = in.SubscriptionStart
	}
	if in.SubscriptionEnd != nil {
		b.SubscriptionEnd = in.SubscriptionEnd
	}
	num(&b.MonthlyLimit, in.MonthlyLimit)
	num(&b.CurrentMonthUsage, in.CurrentMonthUsage)
	flag(&b.IsVerified, in.IsVerified)
	flag(&b.IsActive, in.IsActive)
	flag(&b.IsFeatured, in.IsFeatured)
	if in.Rating != nil {
		b.Rating = *in.Rating
	}
	num(&b.TotalReviews, in.TotalReviews)
}

func (s *UserService) checkRefs(ctx context.Context, userID, typeID uint) error {
	if _, err := s.users.Get(ctx, userID); err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return httperr.NotFoundErr("user_not_found", "User not found.")
		}
		return err
	}
	return s.CheckTypes(ctx, []uint{typeID})
}

// CheckTypes fails on the first business type id that does not exist.
func (s *UserService) CheckTypes(ctx context.Context, ids []uint) error {
	for _, id := range ids {
		if _, err := s.types.Get(ctx, id); err != nil {
			if errors.Is(err, crud.ErrNotFound) {
				return httperr.NotFoundErr("business_type_not_found", "Business type not found.")
			}
			return err
		}
	}
	return nil
}

func (s *UserService) build(ctx context.Context, in UserInput) (*models.BusinessUser, error) {
	if in.UserID == nil || in.BusinessTypeID == nil || in.BusinessName == nil || strings.TrimSpace(*in.BusinessName) == "" {
		return nil, httperr.BusinessError{Code: "invalid_request", Message: "user_id, business_type_id and business_name are required."}
	}
	if err := s.checkRefs(ctx, *in.UserID, *in.BusinessTypeID); err != nil {
		return nil, err
	}

	b := &models.BusinessUser{
		SubscriptionPlan:   models.PlanFree,
		SubscriptionStatus: models.SubscriptionActive,
		MonthlyLimit:       1000,
		IsVerified:         models.No,
		IsActive:           models.Yes,
		IsFeatured:         models.No,
	}
	in.apply(b)
	return b, nil
}

func (s *UserService) CreateBusinessUser(ctx context.Context, actor audit.Actor, in UserInput) (*models.BusinessUser, error) {
	b, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.Create(ctx, actor, b); err != nil {
		return nil, err
	}

	s.registered(ctx, b)
	return b, nil
}

// CreateMany validates every input before writing any of them.
func (s *UserService) CreateMany(ctx context.Context, actor audit.Actor, in []UserInput) ([]models.BusinessUser, error) {
	if len(in) == 0 {
		return nil, httperr.BusinessError{Code: "invalid_request", Message: "At least one business user is required."}
	}

	rows := make([]models.BusinessUser, 0, len(in))
	for _, item := range in {
		b, err := s.build(ctx, item)
		if err != nil {
			return nil, err
		}
		b.StampCreated(actor.UserID)
		rows = append(rows, *b)
	}

	if err := s.repo.CreateMany(ctx, rows); err != nil {
		return nil, err
	}

	for i := range rows {
		s.audit.Record(actor, audit.ActionCreate, "business_users", rows[i].ID, rows[i])
		s.registered(ctx, &rows[i])
	}
	return rows, nil
}

func (s *UserService) registered(ctx context.Context, b *models.BusinessUser) {
	if s.notify == nil {
		return
	}
	var name string
	if u, err := s.users.Get(ctx, b.UserID); err == nil {
		name = u.FullName
	}
	s.notify.BusinessRegistered(ctx, b.UserID, b.ID, name, b.BusinessName)
}

func (s *UserService) UpdateBusinessUser(ctx context.Context, actor audit.Actor, id uint, in UserInput) (*models.BusinessUser, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	userID, typeID := current.UserID, current.BusinessTypeID
	if in.UserID != nil {
		userID = *in.UserID
	}
	if in.BusinessTypeID != nil {
		typeID = *in.BusinessTypeID
	}
	if in.UserID != nil || in.BusinessTypeID != nil {
		if err := s.checkRefs(ctx, userID, typeID); err != nil {
			return nil, err
		}
	}

	return s.Update(ctx, actor, id, func(b *models.BusinessUser) error {
		in.apply(b)
		return nil
	})
}

func (s *UserService) SetLogo(ctx context.Context, actor audit.Actor, id uint, fh *multipart.FileHeader) (*models.BusinessUser, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	url, err := s.uploads.Save(ctx, "business_logos", fh)
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, actor, id, func(b *models.BusinessUser) error {
		b.Logo = url
		return nil
	})
}

// Exists reports whether id names a live business user.
func (s *UserService) Exists(ctx context.Context, id uint) error {
	_, err := s.Get(ctx, id)
	return err
}
