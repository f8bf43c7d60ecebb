package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httpresp"
	"github.com/BruksfildServices01/appointmenttech-api/internal/middleware"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/user"
)

type MeHandler struct {
	users *user.Service
}

func NewMeHandler(users *user.Service) *MeHandler {
	return &MeHandler{users: users}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	profile, err := h.users.Me(c.Request.Context(), middleware.MustUserID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Profile retrieved successfully", profile)
}

func (h *MeHandler) Sessions(c *gin.Context) {
	sessions, err := h.users.Sessions(c.Request.Context(), middleware.MustUserID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, "Active sessions retrieved successfully", sessions)
}

func (h *MeHandler) RevokeSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	if err := h.users.RevokeSession(c.Request.Context(), middleware.MustUserID(c), sessionID); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Session revoked successfully", gin.H{"session_id": sessionID})
}
