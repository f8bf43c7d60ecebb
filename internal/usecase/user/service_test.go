package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/auth"
	domain "github.com/BruksfildServices01/appointmenttech-api/internal/domain/user"
	"github.com/BruksfildServices01/appointmenttech-api/internal/db/dbtest"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/infra/repository"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/security"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/business"
)

type fakeSecurity struct {
	mu       sync.Mutex
	events   []string
	sessions []security.NewSession
	revoked  []string
}

func (f *fakeSecurity) Log(ev security.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev.Type)
}

func (f *fakeSecurity) DeviceConsistency(context.Context, uint, string, string) []string { return nil }

func (f *fakeSecurity) CreateSession(_ context.Context, in security.NewSession) (*models.SecuritySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = append(f.sessions, in)
	return &models.SecuritySession{ID: in.ID, UserID: in.UserID}, nil
}

func (f *fakeSecurity) RevokeSession(_ context.Context, _ uint, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked = append(f.revoked, id)
	return nil
}

func (f *fakeSecurity) ActiveSessions(context.Context, uint) ([]models.SecuritySession, error) {
	return nil, nil
}

func (f *fakeSecurity) has(kind string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e == kind {
			return true
		}
	}
	return false
}

type fakeNotifier struct {
	registered []uint
	logins     []uint
	locked     []uint
	changed    []uint
}

func (f *fakeNotifier) Registration(_ context.Context, id uint, _ string) {
	f.registered = append(f.registered, id)
}

func (f *fakeNotifier) Login(_ context.Context, id uint, _, _, _ string, _ bool) {
	f.logins = append(f.logins, id)
}

func (f *fakeNotifier) PasswordChanged(_ context.Context, id uint, _ string) {
	f.changed = append(f.changed, id)
}

func (f *fakeNotifier) AccountLocked(_ context.Context, id uint, _, _ string, _ time.Time) {
	f.locked = append(f.locked, id)
}

type fakeMailer struct {
	to, token string
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, to, token string) error {
	m.to, m.token = to, token
	return nil
}

type fixture struct {
	db     *gorm.DB
	svc    *Service
	sec    *fakeSecurity
	notify *fakeNotifier
	mail   *fakeMailer
	typeID uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)

	ut := models.UserType{Name: "Customer", DefaultPage: "/home", IsActive: models.Yes}
	require.NoError(t, db.Create(&ut).Error)

	f := &fixture{
		db:     db,
		sec:    &fakeSecurity{},
		notify: &fakeNotifier{},
		mail:   &fakeMailer{},
		typeID: ut.ID,
	}
	f.svc = NewService(Deps{
		Users:     repository.NewUserGormRepository(db),
		UserTypes: repository.NewSoftDeleteRepository[models.UserType](db),
		Security:  f.sec,
		Notify:    f.notify,
		Mailer:    f.mail,
		Log:       zerolog.Nop(),
	}, Config{
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
		MaxFailures: 3,
		LockFor:     time.Hour,
		BcryptCost:  bcrypt.MinCost,
	})
	return f
}

func (f *fixture) register(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := f.svc.Register(context.Background(), audit.Actor{}, RegisterInput{
		FullName:        "Asha Rao",
		Email:           email,
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
		UserTypeID:      f.typeID,
	})
	require.NoError(t, err)
	return u
}

func client() Client {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	r.Header.Set("User-Agent", "test-agent")
	return Client{Request: r, RequestID: "req-1"}
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "  Asha@Example.com ")

	assert.Equal(t, "asha@example.com", u.Email)
	assert.Equal(t, models.Yes, u.IsActive)
	assert.NotEqual(t, "Secret123", u.PasswordHash)
	assert.Equal(t, []uint{u.ID}, f.notify.registered)
}

// lateUsers reports columns free for the first blind lookups, as if a
// concurrent insert landed between the check and the write.
type lateUsers struct {
	domain.Repository
	blind int
}

func (r *lateUsers) Exists(ctx context.Context, column, value string, excludeID uint) (bool, error) {
	if r.blind > 0 {
		r.blind--
		return false, nil
	}
	return r.Repository.Exists(ctx, column, value, excludeID)
}

func TestRegister_UniqueIndexRaceNamesColumn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, audit.Actor{}, RegisterInput{
		FullName: "First", Email: "first@example.com", Phone: "9000000001",
		Password: "Secret123", ConfirmPassword: "Secret123", UserTypeID: f.typeID,
	})
	require.NoError(t, err)

	f.svc.users = &lateUsers{Repository: f.svc.users, blind: 2}
	_, err = f.svc.Register(ctx, audit.Actor{}, RegisterInput{
		FullName: "Second", Email: "second@example.com", Phone: "9000000001",
		Password: "Secret123", ConfirmPassword: "Secret123", UserTypeID: f.typeID,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "phone_already_registered"), "got %v", err)
}

func TestRegister_Rejections(t *testing.T) {
	f := newFixture(t)
	f.register(t, "taken@example.com")
	ctx := context.Background()

	cases := []struct {
		name string
		in   RegisterInput
		code string
	}{
		{"taken email", RegisterInput{Email: "TAKEN@example.com", Password: "Secret123", ConfirmPassword: "Secret123", UserTypeID: f.typeID}, "email_already_registered"},
		{"mismatch", RegisterInput{Email: "a@example.com", Password: "Secret123", ConfirmPassword: "Secret124", UserTypeID: f.typeID}, "password_mismatch"},
		{"weak", RegisterInput{Email: "b@example.com", Password: "secret", ConfirmPassword: "secret", UserTypeID: f.typeID}, "weak_password"},
		{"unknown type", RegisterInput{Email: "c@example.com", Password: "Secret123", ConfirmPassword: "Secret123", UserTypeID: 999}, "user_type_not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.FullName = "Someone"
			_, err := f.svc.Register(ctx, audit.Actor{}, tc.in)
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
		})
	}

	_, err := f.svc.Register(ctx, audit.Actor{}, RegisterInput{
		FullName: "Someone", Email: "taken@example.com", Password: "Secret123", ConfirmPassword: "Secret123", UserTypeID: f.typeID,
	})
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, be.HTTPStatus())
}

func TestRegister_PhoneTaken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := RegisterInput{FullName: "A", Email: "a@example.com", Phone: "9999", Password: "Secret123", ConfirmPassword: "Secret123", UserTypeID: f.typeID}
	_, err := f.svc.Register(ctx, audit.Actor{}, in)
	require.NoError(t, err)

	in.Email = "b@example.com"
	_, err = f.svc.Register(ctx, audit.Actor{}, in)
	assert.True(t, httperr.IsBusiness(err, "phone_already_registered"))
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "asha@example.com")

	res, err := f.svc.Login(context.Background(), LoginInput{Email: "ASHA@example.com", Password: "Secret123"}, client())
	require.NoError(t, err)

	assert.Equal(t, "bearer", res.TokenType)
	assert.Equal(t, int64(3600), res.ExpiresIn)
	assert.Equal(t, "/home", res.DefaultPage)
	require.NotNil(t, res.UserType)
	assert.NotNil(t, res.Permissions)

	claims, err := auth.Parse("test-secret", res.AccessToken)
	require.NoError(t, err)
	id, _ := claims.UserID()
	assert.Equal(t, u.ID, id)

	require.Len(t, f.sec.sessions, 1)
	assert.Equal(t, auth.SessionID(res.AccessToken), f.sec.sessions[0].ID)
	assert.True(t, f.sec.has(models.EventLoginSuccess))
	assert.True(t, f.sec.has(models.EventSessionCreated))
	assert.Equal(t, []uint{u.ID}, f.notify.logins)
}

func TestLogin_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "x"}, client())
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))

	u := f.register(t, "asha@example.com")
	require.NoError(t, f.svc.SetActive(ctx, audit.Actor{}, u.ID, models.No))
	_, err = f.svc.Login(ctx, LoginInput{Email: u.Email, Password: "Secret123"}, client())
	assert.True(t, httperr.IsBusiness(err, "account_inactive"))

	require.NoError(t, f.svc.Delete(ctx, audit.Actor{}, u.ID))
	_, err = f.svc.Login(ctx, LoginInput{Email: u.Email, Password: "Secret123"}, client())
	assert.True(t, httperr.IsBusiness(err, "account_deleted"))
}

func TestLogin_Lockout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "asha@example.com")
	bad := LoginInput{Email: u.Email, Password: "Wrong1234"}

	for i := 0; i < 3; i++ {
		_, err := f.svc.Login(ctx, bad, client())
		assert.True(t, httperr.IsBusiness(err, "invalid_credentials"), "attempt %d", i+1)
	}
	assert.Equal(t, []uint{u.ID}, f.notify.locked)
	assert.True(t, f.sec.has(models.EventAccountLocked))

	// Even the right password is refused while locked.
	_, err := f.svc.Login(ctx, LoginInput{Email: u.Email, Password: "Secret123"}, client())
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, "account_locked", be.Code)
	assert.Equal(t, http.StatusLocked, be.HTTPStatus())

	f.svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = f.svc.Login(ctx, LoginInput{Email: u.Email, Password: "Secret123"}, client())
	require.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "asha@example.com")

	err := f.svc.ChangePassword(ctx, audit.Actor{}, u.ID, ChangePasswordInput{
		CurrentPassword: "nope", NewPassword: "Newpass123", ConfirmPassword: "Newpass123",
	}, client())
	assert.True(t, httperr.IsBusiness(err, "invalid_current_password"))

	require.NoError(t, f.svc.ChangePassword(ctx, audit.Actor{}, u.ID, ChangePasswordInput{
		CurrentPassword: "Secret123", NewPassword: "Newpass123", ConfirmPassword: "Newpass123",
	}, client()))
	assert.True(t, f.sec.has(models.EventPasswordChange))

	_, err = f.svc.Login(ctx, LoginInput{Email: u.Email, Password: "Newpass123"}, client())
	require.NoError(t, err)
}

func TestPasswordReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "asha@example.com")

	require.NoError(t, f.svc.ForgotPassword(ctx, ForgotPasswordInput{Email: "unknown@example.com"}))
	assert.Empty(t, f.mail.token)

	require.NoError(t, f.svc.ForgotPassword(ctx, ForgotPasswordInput{Email: u.Email}))
	require.NotEmpty(t, f.mail.token)
	assert.Equal(t, u.Email, f.mail.to)

	err := f.svc.ResetPassword(ctx, ResetPasswordInput{Token: "bogus", NewPassword: "Reset1234", ConfirmPassword: "Reset1234"})
	assert.True(t, httperr.IsBusiness(err, "invalid_reset_token"))

	require.NoError(t, f.svc.ResetPassword(ctx, ResetPasswordInput{Token: f.mail.token, NewPassword: "Reset1234", ConfirmPassword: "Reset1234"}))

	// Tokens are single use.
	err = f.svc.ResetPassword(ctx, ResetPasswordInput{Token: f.mail.token, NewPassword: "Reset1234", ConfirmPassword: "Reset1234"})
	assert.True(t, httperr.IsBusiness(err, "invalid_reset_token"))

	_, err = f.svc.Login(ctx, LoginInput{Email: u.Email, Password: "Reset1234"}, client())
	require.NoError(t, err)
}

func TestLogout_RevokesSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "asha@example.com")

	res, err := f.svc.Login(ctx, LoginInput{Email: "asha@example.com", Password: "Secret123"}, client())
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, res.User.ID, res.AccessToken, client()))
	assert.Equal(t, []string{auth.SessionID(res.AccessToken)}, f.sec.revoked)
	assert.True(t, f.sec.has(models.EventLogout))
	assert.True(t, f.sec.has(models.EventSessionDestroyed))
}

func TestSearchByName(t *testing.T) {
	f := newFixture(t)
	f.register(t, "asha@example.com")

	found, err := f.svc.SearchByName(context.Background(), "ASHA")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.True(t, strings.HasPrefix(found[0].FullName, "Asha"))
}

// ======================================================
// Google sign-in
// ======================================================

type stubGoogle map[string]*auth.GoogleIdentity

func (g stubGoogle) Verify(_ context.Context, token string) (*auth.GoogleIdentity, error) {
	if id, ok := g[token]; ok {
		return id, nil
	}
	return nil, auth.ErrInvalidToken
}

func (f *fixture) withGoogle(t *testing.T) uint {
	t.Helper()
	bt := models.BusinessType{Name: "Hostel", IsActive: models.Yes}
	require.NoError(t, f.db.Create(&bt).Error)

	f.svc.google = stubGoogle{
		"good":    {Email: "Asha@Gmail.com", Name: "Asha Rao", Picture: "https://img/asha", EmailVerified: true},
		"owner":   {Email: "owner@gmail.com", Name: "Ravi"},
		"noemail": {Name: "Nobody"},
	}
	f.svc.businesses = business.NewUserService(
		repository.NewBusinessUserGormRepository(f.db),
		repository.NewSoftDeleteRepository[models.User](f.db),
		repository.NewSoftDeleteRepository[models.BusinessType](f.db),
		nil, nil, nil,
	)
	return bt.ID
}

func TestGoogleSignIn_CreatesVerifiedUserAndSession(t *testing.T) {
	f := newFixture(t)
	f.withGoogle(t)
	ctx := context.Background()

	city := "Pune"
	res, err := f.svc.GoogleSignIn(ctx, GoogleSignInInput{
		Token:        "good",
		UserTypeID:   f.typeID,
		ProfileInput: ProfileInput{City: &city},
	}, client())
	require.NoError(t, err)

	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "/home", res.DefaultPage)
	assert.Equal(t, "asha@gmail.com", res.User.Email)
	assert.Equal(t, "Asha Rao", res.User.FullName)
	assert.Equal(t, "https://img/asha", res.User.ProfileImage)
	assert.Equal(t, "Pune", res.User.City)
	assert.True(t, res.User.IsVerified)

	assert.Equal(t, []uint{res.User.ID}, f.notify.registered)
	assert.Equal(t, []uint{res.User.ID}, f.notify.logins)
	require.Len(t, f.sec.sessions, 1)
	assert.Equal(t, auth.SessionID(res.AccessToken), f.sec.sessions[0].ID)
	assert.True(t, f.sec.has(models.EventLoginSuccess))

	_, err = f.svc.GoogleSignIn(ctx, GoogleSignInInput{Token: "good", UserTypeID: f.typeID}, client())
	assert.True(t, httperr.IsBusiness(err, "email_already_registered"))
}

func TestGoogleSignIn_CreatesBusinesses(t *testing.T) {
	f := newFixture(t)
	typeID := f.withGoogle(t)
	ctx := context.Background()

	addr := "MG Road"
	res, err := f.svc.GoogleSignIn(ctx, GoogleSignInInput{
		Token:           "owner",
		UserTypeID:      f.typeID,
		BusinessTypeIDs: []uint{typeID},
		BrandName:       " Ravi Stays ",
		ProfileInput:    ProfileInput{Address: &addr},
	}, client())
	require.NoError(t, err)

	var rows []models.BusinessUser
	require.NoError(t, f.db.Where("user_id = ?", res.User.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ravi Stays", rows[0].BusinessName)
	assert.Equal(t, typeID, rows[0].BusinessTypeID)
	assert.Equal(t, "MG Road", rows[0].Address)
}

func TestGoogleSignIn_Rejections(t *testing.T) {
	f := newFixture(t)
	typeID := f.withGoogle(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   GoogleSignInInput
		code string
	}{
		{"bad token", GoogleSignInInput{Token: "forged", UserTypeID: f.typeID}, "invalid_google_token"},
		{"no email", GoogleSignInInput{Token: "noemail", UserTypeID: f.typeID}, "google_email_missing"},
		{"no brand", GoogleSignInInput{Token: "owner", UserTypeID: f.typeID, BusinessTypeIDs: []uint{typeID}}, "business_details_required"},
		{"unknown business type", GoogleSignInInput{Token: "owner", UserTypeID: f.typeID, BusinessTypeIDs: []uint{999}, BrandName: "X"}, "business_type_not_found"},
		{"unknown user type", GoogleSignInInput{Token: "owner", UserTypeID: 999}, "user_type_not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.GoogleSignIn(ctx, tc.in, client())
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
		})
	}

	var n int64
	require.NoError(t, f.db.Model(&models.User{}).Where("email = ?", "owner@gmail.com").Count(&n).Error)
	assert.Zero(t, n)
	assert.True(t, f.sec.has(models.EventLoginFailed))
}

func TestGoogleSignIn_Disabled(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GoogleSignIn(context.Background(), GoogleSignInInput{Token: "x", UserTypeID: f.typeID}, client())
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, "google_signin_disabled", be.Code)
	assert.Equal(t, http.StatusServiceUnavailable, be.Status)
}
