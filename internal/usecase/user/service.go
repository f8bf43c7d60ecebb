package user

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/cache"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	domain "github.com/BruksfildServices01/appointmenttech-api/internal/domain/user"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/mailer"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/storage"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/catalog"
)

type Config struct {
	JWTSecret   string
	TokenTTL    time.Duration
	ResetTTL    time.Duration
	MaxFailures int
	LockFor     time.Duration
	BcryptCost  int

	// EmailDomainCheck rejects registrations whose domain does not resolve.
	// Nil disables the check.
	EmailDomainCheck func(email string) bool
}

type Deps struct {
	Users       domain.Repository
	UserTypes   crud.Repository[models.UserType]
	Permissions PermissionSource
	Security    SecurityLog
	Notify      Notifier
	Mailer      mailer.Mailer
	Uploads     *storage.Uploader
	Audit       *audit.Dispatcher
	Cache       cache.Cache
	Log         zerolog.Logger

	// Google is nil when Google sign-in is not configured.
	Google     IdentityVerifier
	Businesses BusinessCreator
}

type Service struct {
	*catalog.Service[models.User, *models.User]

	users      domain.Repository
	userTypes  crud.Repository[models.UserType]
	perms      PermissionSource
	security   SecurityLog
	notify     Notifier
	mail       mailer.Mailer
	uploads    *storage.Uploader
	audit      *audit.Dispatcher
	cache      cache.Cache
	google     IdentityVerifier
	businesses BusinessCreator
	cfg        Config
	log        zerolog.Logger
	now        func() time.Time
}

func NewService(d Deps, cfg Config) *Service {
	if d.Cache == nil {
		d.Cache = cache.Noop{}
	}
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}
	if cfg.LockFor <= 0 {
		cfg.LockFor = time.Hour
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = time.Hour
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}

	return &Service{
		Service: catalog.NewService[models.User, *models.User](d.Users, catalog.Options[models.User]{
			Table:         "users",
			Label:         "User",
			NotFoundCode:  "user_not_found",
			DuplicateCode: "email_already_registered",
		}, d.Audit, nil),
		users:      d.Users,
		userTypes:  d.UserTypes,
		perms:      d.Permissions,
		security:   d.Security,
		notify:     d.Notify,
		mail:       d.Mailer,
		uploads:    d.Uploads,
		audit:      d.Audit,
		cache:      d.Cache,
		google:     d.Google,
		businesses: d.Businesses,
		cfg:        cfg,
		log:        d.Log,
		now:        time.Now,
	}
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// ======================================================
// Registration / creation
// ======================================================

type ProfileInput struct {
	AltPhone    *string    `json:"alt_phone" binding:"omitempty,max=20"`
	Bio         *string    `json:"bio"`
	Website     *string    `json:"website" binding:"omitempty,max=255"`
	Gender      *string    `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	DOB         *time.Time `json:"dob"`
	Occupation  *string    `json:"occupation" binding:"omitempty,max=100"`
	CompanyName *string    `json:"company_name" binding:"omitempty,max=255"`
	Address     *string    `json:"address"`
	City        *string    `json:"city" binding:"omitempty,max=100"`
	State       *string    `json:"state" binding:"omitempty,max=100"`
	Country     *string    `json:"country" binding:"omitempty,max=100"`
	PostalCode  *string    `json:"postal_code" binding:"omitempty,max=20"`
	Language    *string    `json:"preferred_language" binding:"omitempty,max=50"`
}

func (p ProfileInput) apply(u *models.User) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&u.AltPhone, p.AltPhone)
	set(&u.Bio, p.Bio)
	set(&u.Website, p.Website)
	set(&u.Gender, p.Gender)
	set(&u.Occupation, p.Occupation)
	set(&u.CompanyName, p.CompanyName)
	set(&u.Address, p.Address)
	set(&u.City, p.City)
	set(&u.State, p.State)
	set(&u.Country, p.Country)
	set(&u.PostalCode, p.PostalCode)
	set(&u.Language, p.Language)
	if p.DOB != nil {
		u.DOB = p.DOB
	}
}

type RegisterInput struct {
	FullName        string `json:"full_name" binding:"required,min=2,max=255"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"omitempty,max=20"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	UserTypeID      uint   `json:"user_type_id" binding:"required"`
	ProfileInput
}

// CreateInput is the administrative variant of RegisterInput.
type CreateInput struct {
	FullName   string       `json:"full_name" binding:"required,min=2,max=255"`
	Email      string       `json:"email" binding:"required,email"`
	Phone      string       `json:"phone" binding:"omitempty,max=20"`
	Password   string       `json:"password" binding:"required"`
	UserTypeID uint         `json:"user_type_id" binding:"required"`
	IsActive   models.YesNo `json:"is_active" binding:"omitempty,oneof=Y N"`
	ProfileInput

	// Set by identity-provider sign-ups.
	verified bool
	picture  string
}

func (s *Service) Register(ctx context.Context, actor audit.Actor, in RegisterInput) (*models.User, error) {
	if in.Password != in.ConfirmPassword {
		return nil, httperr.BusinessError{Code: "password_mismatch", Message: "Passwords do not match."}
	}

	u, err := s.create(ctx, actor, CreateInput{
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		Password:     in.Password,
		UserTypeID:   in.UserTypeID,
		IsActive:     models.Yes,
		ProfileInput: in.ProfileInput,
	})
	if err != nil {
		return nil, err
	}

	s.notify.Registration(ctx, u.ID, u.FullName)
	return u, nil
}

func (s *Service) CreateUser(ctx context.Context, actor audit.Actor, in CreateInput) (*models.User, error) {
	if in.IsActive == "" {
		in.IsActive = models.Yes
	}
	return s.create(ctx, actor, in)
}

func (s *Service) create(ctx context.Context, actor audit.Actor, in CreateInput) (*models.User, error) {
	email := normalizeEmail(in.Email)

	if err := ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	if err := s.checkUserType(ctx, in.UserTypeID); err != nil {
		return nil, err
	}
	if err := s.checkContact(ctx, email, in.Phone, 0); err != nil {
		return nil, err
	}
	if s.cfg.EmailDomainCheck != nil && !s.cfg.EmailDomainCheck(email) {
		return nil, httperr.BusinessError{Code: "invalid_email_domain", Message: "The email domain does not appear to be valid."}
	}

	hash, err := hashPassword(in.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		PasswordHash: hash,
		UserTypeID:   in.UserTypeID,
		IsActive:     in.IsActive,
		Country:      "India",
		Language:     "en",
		Currency:     "INR",
	}
	if p := strings.TrimSpace(in.Phone); p != "" {
		u.Phone = &p
	}
	u.IsVerified = in.verified
	u.ProfileImage = in.picture
	in.ProfileInput.apply(u)

	if err := s.Create(ctx, actor, u); err != nil {
		return nil, s.contactConflict(ctx, err, email, in.Phone, 0)
	}
	return u, nil
}

func errEmailTaken() error {
	return httperr.BusinessError{Code: "email_already_registered", Message: "Email is already registered."}
}

// contactConflict names the column behind a unique-index violation that
// raced checkContact. Other errors pass through.
func (s *Service) contactConflict(ctx context.Context, err error, email, phone string, excludeID uint) error {
	if !httperr.IsBusiness(err, "email_already_registered") {
		return err
	}
	if cerr := s.checkContact(ctx, email, phone, excludeID); cerr != nil {
		return cerr
	}
	return errEmailTaken()
}

func (s *Service) checkUserType(ctx context.Context, id uint) error {
	if _, err := s.userTypes.Get(ctx, id); err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return httperr.NotFoundErr("user_type_not_found", "User type not found.")
		}
		return err
	}
	return nil
}

func (s *Service) checkContact(ctx context.Context, email, phone string, excludeID uint) error {
	if email != "" {
		taken, err := s.users.Exists(ctx, "email", email, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return errEmailTaken()
		}
	}
	if p := strings.TrimSpace(phone); p != "" {
		taken, err := s.users.Exists(ctx, "phone", p, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return httperr.BusinessError{Code: "phone_already_registered", Message: "Phone number is already registered."}
		}
	}
	return nil
}

// ======================================================
// Reads / updates
// ======================================================

func (s *Service) SearchByName(ctx context.Context, name string) ([]models.User, error) {
	items, _, err := s.List(ctx, crud.Query{Search: name, SearchColumn: "full_name"})
	return items, err
}

type UpdateInput struct {
	FullName   *string       `json:"full_name" binding:"omitempty,min=2,max=255"`
	Email      *string       `json:"email" binding:"omitempty,email"`
	Phone      *string       `json:"phone" binding:"omitempty,max=20"`
	UserTypeID *uint         `json:"user_type_id"`
	IsActive   *models.YesNo `json:"is_active" binding:"omitempty,oneof=Y N"`
	ProfileInput
}

func (s *Service) UpdateUser(ctx context.Context, actor audit.Actor, id uint, in UpdateInput) (*models.User, error) {
	var email, phone string
	if in.Email != nil {
		email = normalizeEmail(*in.Email)
	}
	if in.Phone != nil {
		phone = *in.Phone
	}
	if err := s.checkContact(ctx, email, phone, id); err != nil {
		return nil, err
	}
	if in.UserTypeID != nil {
		if err := s.checkUserType(ctx, *in.UserTypeID); err != nil {
			return nil, err
		}
	}

	u, err := s.Update(ctx, actor, id, func(u *models.User) error {
		if in.FullName != nil {
			u.FullName = strings.TrimSpace(*in.FullName)
		}
		if in.Email != nil {
			u.Email = email
		}
		if in.Phone != nil {
			if p := strings.TrimSpace(*in.Phone); p != "" {
				u.Phone = &p
			} else {
				u.Phone = nil
			}
		}
		if in.UserTypeID != nil {
			u.UserTypeID = *in.UserTypeID
		}
		if in.IsActive != nil {
			u.IsActive = *in.IsActive
		}
		in.ProfileInput.apply(u)
		return nil
	})
	if err != nil {
		return nil, s.contactConflict(ctx, err, email, phone, id)
	}
	return u, nil
}

func (s *Service) UpdateProfile(ctx context.Context, actor audit.Actor, id uint, in ProfileInput) (*models.User, error) {
	return s.Update(ctx, actor, id, func(u *models.User) error {
		in.apply(u)
		return nil
	})
}

func (s *Service) SetProfileImage(ctx context.Context, actor audit.Actor, id uint, fh *multipart.FileHeader) (*models.User, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	url, err := s.uploads.Save(ctx, "profile_images", fh)
	if err != nil {
		return nil, err
	}

	return s.Update(ctx, actor, id, func(u *models.User) error {
		u.ProfileImage = url
		return nil
	})
}

// ======================================================
// Me
// ======================================================

type Profile struct {
	User        *models.User            `json:"user"`
	UserType    *models.UserType        `json:"user_type"`
	Permissions []models.UserPermission `json:"permissions"`
	DefaultPage string                  `json:"default_page"`
}

func (s *Service) Me(ctx context.Context, userID uint) (*Profile, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profile(ctx, u)
}

func (s *Service) profile(ctx context.Context, u *models.User) (*Profile, error) {
	out := &Profile{User: u, Permissions: []models.UserPermission{}}

	ut, err := s.userTypes.Get(ctx, u.UserTypeID)
	switch {
	case err == nil:
		out.UserType = ut
		out.DefaultPage = ut.DefaultPage
	case !errors.Is(err, crud.ErrNotFound):
		return nil, err
	}

	if s.perms != nil {
		perms, err := s.perms.WithPages(ctx, u.UserTypeID)
		if err != nil {
			return nil, err
		}
		if perms != nil {
			out.Permissions = perms
		}
	}
	return out, nil
}

func (s *Service) Sessions(ctx context.Context, userID uint) ([]models.SecuritySession, error) {
	return s.security.ActiveSessions(ctx, userID)
}

func (s *Service) RevokeSession(ctx context.Context, userID uint, sessionID string) error {
	return s.security.RevokeSession(ctx, userID, sessionID)
}

// badRequest is a 400 with a fixed message.
func badRequest(code, msg string) error {
	return httperr.E(http.StatusBadRequest, code, msg)
}
