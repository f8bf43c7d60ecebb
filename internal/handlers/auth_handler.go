package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httpresp"
	"github.com/BruksfildServices01/appointmenttech-api/internal/middleware"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/user"
)

type AuthHandler struct {
	users *user.Service
}

func NewAuthHandler(users *user.Service) *AuthHandler {
	return &AuthHandler{users: users}
}

func client(c *gin.Context) user.Client {
	return user.Client{Request: c.Request, RequestID: middleware.RequestIDFrom(c)}
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	u, err := h.users.Register(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, "User registered successfully", u)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	res, err := h.users.Login(c.Request.Context(), req, client(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Login successful", res)
}

func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req user.GoogleSignInInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	res, err := h.users.GoogleSignIn(c.Request.Context(), req, client(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Login successful", res)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.ContextToken)
	if err := h.users.Logout(c.Request.Context(), middleware.MustUserID(c), token, client(c)); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Logged out successfully", nil)
}

// ChangePassword changes the caller's own password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	h.changePassword(c, middleware.MustUserID(c))
}

// ChangePasswordByID is the secret-key variant addressed by path id.
func (h *AuthHandler) ChangePasswordByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.changePassword(c, id)
}

func (h *AuthHandler) changePassword(c *gin.Context, userID uint) {
	var req user.ChangePasswordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	if err := h.users.ChangePassword(c.Request.Context(), middleware.Actor(c), userID, req, client(c)); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Password changed successfully", nil)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req user.ForgotPasswordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	if err := h.users.ForgotPassword(c.Request.Context(), req); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "If the email is registered, a reset link has been sent", nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req user.ResetPasswordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	if err := h.users.ResetPassword(c.Request.Context(), req); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Password reset successfully", nil)
}
