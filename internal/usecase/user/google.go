package user

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/auth"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/security"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/business"
)

var (
	errGoogleDisabled = httperr.E(http.StatusServiceUnavailable, "google_signin_disabled", "Google sign-in is not configured.")
	errGoogleToken    = httperr.E(http.StatusUnauthorized, "invalid_google_token", "Invalid Google token.")
)

// GoogleSignInInput signs a new account up from a Google ID token. Business
// owners send the business types they run under one brand name.
type GoogleSignInInput struct {
	Token           string `json:"token" binding:"required"`
	UserTypeID      uint   `json:"user_type_id" binding:"required"`
	BusinessTypeIDs []uint `json:"business_type_ids"`
	BrandName       string `json:"brand_name" binding:"omitempty,max=255"`
	ProfileInput
}

// GoogleSignIn creates the account named by a verified Google token and
// logs it in. An email that already has an account is refused.
func (s *Service) GoogleSignIn(ctx context.Context, in GoogleSignInInput, cl Client) (*LoginResult, error) {
	if s.google == nil {
		return nil, errGoogleDisabled
	}

	id, err := s.google.Verify(ctx, in.Token)
	if err != nil {
		s.security.Log(security.Event{
			Type:      models.EventLoginFailed,
			Request:   cl.Request,
			RequestID: cl.RequestID,
			Metadata:  map[string]any{"reason": "invalid_google_token"},
		})
		return nil, errGoogleToken
	}

	email := normalizeEmail(id.Email)
	if email == "" {
		return nil, httperr.BusinessError{Code: "google_email_missing", Message: "Email not found in the Google token."}
	}
	brand := strings.TrimSpace(in.BrandName)
	if len(in.BusinessTypeIDs) > 0 && (brand == "" || s.businesses == nil) {
		return nil, httperr.BusinessError{Code: "business_details_required", Message: "Business sign-up requires business_type_ids and brand_name."}
	}

	if len(in.BusinessTypeIDs) > 0 {
		if err := s.businesses.CheckTypes(ctx, in.BusinessTypeIDs); err != nil {
			return nil, err
		}
	}

	taken, err := s.users.Exists(ctx, "email", email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.BusinessError{Code: "email_already_registered", Message: "User with this email already exists. Please sign in instead."}
	}

	name := strings.TrimSpace(id.Name)
	if name == "" {
		name = email[:strings.IndexByte(email+"@", '@')]
	}

	actor := audit.Actor{IP: cl.ip(), UserAgent: cl.device()}
	u, err := s.create(ctx, actor, CreateInput{
		FullName:     name,
		Email:        email,
		Password:     randomPassword(),
		UserTypeID:   in.UserTypeID,
		IsActive:     models.Yes,
		ProfileInput: in.ProfileInput,
		verified:     true,
		picture:      id.Picture,
	})
	if err != nil {
		return nil, err
	}

	if len(in.BusinessTypeIDs) > 0 {
		if err := s.signUpBusinesses(ctx, actor, u, brand, in); err != nil {
			return nil, err
		}
	}

	s.notify.Registration(ctx, u.ID, u.FullName)
	return s.startSession(ctx, u, cl, s.now())
}

func (s *Service) signUpBusinesses(ctx context.Context, actor audit.Actor, u *models.User, brand string, in GoogleSignInInput) error {
	actor.UserID = &u.ID

	rows := make([]business.UserInput, 0, len(in.BusinessTypeIDs))
	for i := range in.BusinessTypeIDs {
		rows = append(rows, business.UserInput{
			UserID:         &u.ID,
			BusinessTypeID: &in.BusinessTypeIDs[i],
			BusinessName:   &brand,
			Address:        in.Address,
		})
	}
	_, err := s.businesses.CreateMany(ctx, actor, rows)
	return err
}

// randomPassword satisfies ValidatePassword; nobody is told it.
func randomPassword() string {
	return "G" + strings.ReplaceAll(uuid.NewString(), "-", "") + "7"
}

var _ IdentityVerifier = (*auth.GoogleVerifier)(nil)
