package user

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/auth"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/security"
)

const lockKeyPrefix = "login_lock:"

var errInvalidCredentials = httperr.E(http.StatusUnauthorized, "invalid_credentials", "Invalid email or password.")

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Client describes the request a login came from.
type Client struct {
	Request   *http.Request
	RequestID string
}

func (c Client) ip() string {
	if c.Request == nil {
		return ""
	}
	return security.ClientIP(c.Request)
}

func (c Client) device() string {
	if c.Request == nil {
		return ""
	}
	return security.DeviceInfo(c.Request)
}

type LoginResult struct {
	AccessToken string                  `json:"access_token"`
	TokenType   string                  `json:"token_type"`
	ExpiresIn   int64                   `json:"expires_in"`
	User        *models.User            `json:"user"`
	UserType    *models.UserType        `json:"user_type"`
	Permissions []models.UserPermission `json:"permissions"`
	DefaultPage string                  `json:"default_page"`
}

func (s *Service) Login(ctx context.Context, in LoginInput, cl Client) (*LoginResult, error) {
	email := normalizeEmail(in.Email)
	now := s.now()

	var until time.Time
	if hit, _ := s.cache.Get(ctx, lockKeyPrefix+email, &until); hit && until.After(now) {
		s.security.Log(security.Event{
			Type:      models.EventAccountLocked,
			Severity:  models.SeverityHigh,
			UserEmail: email,
			Request:   cl.Request,
			RequestID: cl.RequestID,
			Metadata:  map[string]any{"locked_until": until},
		})
		return nil, errLocked(until)
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			s.security.Log(security.Event{
				Type:      models.EventLoginFailed,
				UserEmail: email,
				Request:   cl.Request,
				RequestID: cl.RequestID,
				Metadata:  map[string]any{"reason": "unknown_email"},
			})
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if u.IsDeleted == models.Yes {
		return nil, httperr.BusinessError{Code: "account_deleted", Message: "This account has been deleted."}
	}
	if u.IsActive != models.Yes {
		return nil, httperr.E(http.StatusForbidden, "account_inactive", "This account is inactive.")
	}
	if u.Locked(now) {
		s.security.Log(security.Event{
			Type:      models.EventAccountLocked,
			Severity:  models.SeverityHigh,
			UserID:    &u.ID,
			UserEmail: u.Email,
			Request:   cl.Request,
			RequestID: cl.RequestID,
			Metadata:  map[string]any{"locked_until": u.AccountLockedUntil},
		})
		return nil, errLocked(*u.AccountLockedUntil)
	}

	if !checkPassword(u.PasswordHash, in.Password) {
		return nil, s.failedLogin(ctx, u, cl)
	}
	return s.startSession(ctx, u, cl, now)
}

// startSession records the login, issues the token and opens its session.
func (s *Service) startSession(ctx context.Context, u *models.User, cl Client, now time.Time) (*LoginResult, error) {
	if err := s.users.RecordLogin(ctx, u.ID, now, cl.ip()); err != nil {
		return nil, err
	}
	u.FailedLoginAttempts = 0
	u.AccountLockedUntil = nil
	u.LastLoginAt = &now
	u.LastLoginIP = cl.ip()
	_ = s.cache.Delete(ctx, lockKeyPrefix+u.Email)

	token, _, err := auth.Issue(s.cfg.JWTSecret, auth.Subject{
		ID:         u.ID,
		Email:      u.Email,
		UserTypeID: u.UserTypeID,
	}, s.cfg.TokenTTL, now)
	if err != nil {
		return nil, err
	}

	var risks []string
	sessionID := auth.SessionID(token)
	if cl.Request != nil {
		risks = s.security.DeviceConsistency(ctx, u.ID, security.Fingerprint(cl.Request, cl.ip()), cl.ip())
		if _, err := s.security.CreateSession(ctx, security.NewSession{
			ID:          sessionID,
			UserID:      u.ID,
			UserEmail:   u.Email,
			Request:     cl.Request,
			RiskFactors: risks,
		}); err != nil {
			return nil, err
		}
	}

	severity := models.SeverityLow
	if len(risks) > 0 {
		severity = models.SeverityMedium
	}
	s.security.Log(security.Event{
		Type:        models.EventLoginSuccess,
		Severity:    severity,
		UserID:      &u.ID,
		UserEmail:   u.Email,
		Request:     cl.Request,
		SessionID:   sessionID,
		RequestID:   cl.RequestID,
		RiskFactors: risks,
	})
	s.security.Log(security.Event{
		Type:      models.EventSessionCreated,
		Severity:  models.SeverityLow,
		UserID:    &u.ID,
		UserEmail: u.Email,
		Request:   cl.Request,
		SessionID: sessionID,
		RequestID: cl.RequestID,
	})
	s.notify.Login(ctx, u.ID, u.FullName, cl.ip(), cl.device(), len(risks) > 0)
	s.audit.Dispatch(audit.Event{
		Actor:    audit.Actor{UserID: &u.ID, IP: cl.ip(), UserAgent: cl.device(), SessionID: sessionID},
		Action:   audit.ActionLogin,
		Table:    "users",
		RecordID: &u.ID,
	})

	p, err := s.profile(ctx, u)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.cfg.TokenTTL / time.Second),
		User:        p.User,
		UserType:    p.UserType,
		Permissions: p.Permissions,
		DefaultPage: p.DefaultPage,
	}, nil
}

// failedLogin bumps the counter and locks the account once it reaches
// MaxFailures. The attempt that triggers the lock still answers 401.
func (s *Service) failedLogin(ctx context.Context, u *models.User, cl Client) error {
	attempts := u.FailedLoginAttempts + 1

	var lockedUntil *time.Time
	if attempts >= s.cfg.MaxFailures {
		t := s.now().Add(s.cfg.LockFor)
		lockedUntil = &t
	}

	if err := s.users.RecordFailedLogin(ctx, u.ID, attempts, lockedUntil); err != nil {
		return err
	}

	s.security.Log(security.Event{
		Type:      models.EventLoginFailed,
		UserID:    &u.ID,
		UserEmail: u.Email,
		Request:   cl.Request,
		RequestID: cl.RequestID,
		Metadata:  map[string]any{"attempts": attempts},
	})

	if lockedUntil != nil {
		_ = s.cache.Set(ctx, lockKeyPrefix+u.Email, *lockedUntil, s.cfg.LockFor)
		s.security.Log(security.Event{
			Type:      models.EventAccountLocked,
			Severity:  models.SeverityHigh,
			UserID:    &u.ID,
			UserEmail: u.Email,
			Request:   cl.Request,
			RequestID: cl.RequestID,
			Metadata:  map[string]any{"attempts": attempts, "locked_until": *lockedUntil},
		})
		s.notify.AccountLocked(ctx, u.ID, u.FullName, "too many failed login attempts", *lockedUntil)
	}

	return errInvalidCredentials
}

func errLocked(until time.Time) error {
	return httperr.E(http.StatusLocked, "account_locked",
		"Account is locked until "+until.UTC().Format(time.RFC3339)+".")
}

// Logout revokes the session behind token.
func (s *Service) Logout(ctx context.Context, userID uint, token string, cl Client) error {
	sessionID := auth.SessionID(token)
	if err := s.security.RevokeSession(ctx, userID, sessionID); err != nil && !errors.Is(err, crud.ErrNotFound) {
		return err
	}

	s.security.Log(security.Event{
		Type:      models.EventLogout,
		Severity:  models.SeverityLow,
		UserID:    &userID,
		Request:   cl.Request,
		SessionID: sessionID,
		RequestID: cl.RequestID,
	})
	s.security.Log(security.Event{
		Type:      models.EventSessionDestroyed,
		Severity:  models.SeverityLow,
		UserID:    &userID,
		Request:   cl.Request,
		SessionID: sessionID,
		RequestID: cl.RequestID,
	})
	s.audit.Dispatch(audit.Event{
		Actor:    audit.Actor{UserID: &userID, IP: cl.ip(), UserAgent: cl.device(), SessionID: sessionID},
		Action:   audit.ActionLogout,
		Table:    "users",
		RecordID: &userID,
	})
	return nil
}

// ======================================================
// Passwords
// ======================================================

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func (s *Service) ChangePassword(ctx context.Context, actor audit.Actor, userID uint, in ChangePasswordInput, cl Client) error {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !checkPassword(u.PasswordHash, in.CurrentPassword) {
		return httperr.E(http.StatusUnauthorized, "invalid_current_password", "Current password is incorrect.")
	}
	if in.NewPassword != in.ConfirmPassword {
		return httperr.BusinessError{Code: "password_mismatch", Message: "Passwords do not match."}
	}
	if err := ValidatePassword(in.NewPassword); err != nil {
		return err
	}

	hash, err := hashPassword(in.NewPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.security.Log(security.Event{
		Type:      models.EventPasswordChange,
		Severity:  models.SeverityMedium,
		UserID:    &u.ID,
		UserEmail: u.Email,
		Request:   cl.Request,
		RequestID: cl.RequestID,
	})
	s.notify.PasswordChanged(ctx, u.ID, u.FullName)
	s.audit.Record(actor, audit.ActionUpdate, "users", u.ID, map[string]any{"password": "changed"})
	return nil
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword answers the same way whether or not the email is known.
func (s *Service) ForgotPassword(ctx context.Context, in ForgotPasswordInput) error {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return nil
		}
		return err
	}
	if u.IsDeleted == models.Yes || u.IsActive != models.Yes {
		return nil
	}

	token := uuid.NewString()
	expiry := s.now().Add(s.cfg.ResetTTL)
	if err := s.users.SetResetToken(ctx, u.ID, hashToken(token), &expiry); err != nil {
		return err
	}

	if err := s.mail.SendPasswordReset(ctx, u.Email, token); err != nil {
		s.log.Error().Err(err).Uint("user_id", u.ID).Msg("password reset email failed")
	}
	return nil
}

type ResetPasswordInput struct {
	Token           string `json:"token" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func (s *Service) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	u, err := s.users.FindByResetToken(ctx, hashToken(in.Token))
	if err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return errInvalidResetToken
		}
		return err
	}
	if u.ResetTokenExpiry == nil || !u.ResetTokenExpiry.After(s.now()) {
		return errInvalidResetToken
	}
	if in.NewPassword != in.ConfirmPassword {
		return httperr.BusinessError{Code: "password_mismatch", Message: "Passwords do not match."}
	}
	if err := ValidatePassword(in.NewPassword); err != nil {
		return err
	}

	hash, err := hashPassword(in.NewPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}
	// Clears any lock left by the failures that led to the reset.
	if err := s.users.RecordFailedLogin(ctx, u.ID, 0, nil); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, lockKeyPrefix+u.Email)

	s.security.Log(security.Event{
		Type:      models.EventPasswordChange,
		Severity:  models.SeverityMedium,
		UserID:    &u.ID,
		UserEmail: u.Email,
		Metadata:  map[string]any{"via": "reset_token"},
	})
	s.notify.PasswordChanged(ctx, u.ID, u.FullName)
	return nil
}

var errInvalidResetToken = badRequest("invalid_reset_token", "Reset token is invalid or expired.")
