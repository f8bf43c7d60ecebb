package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httpresp"
	"github.com/BruksfildServices01/appointmenttech-api/internal/middleware"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/notification"
)

// NotificationHandler serves the caller's own notifications.
type NotificationHandler struct {
	svc *notification.Service
}

func NewNotificationHandler(svc *notification.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	limit := queryInt(c, "limit", notification.DefaultLimit)
	offset := queryInt(c, "offset", 0)
	unreadOnly := queryBool(c, "unread_only")

	res, err := h.svc.List(c.Request.Context(), middleware.MustUserID(c), limit, offset, unreadOnly != nil && *unreadOnly)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Notifications retrieved successfully", res)
}

func (h *NotificationHandler) Count(c *gin.Context) {
	res, err := h.svc.Count(c.Request.Context(), middleware.MustUserID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Notification count retrieved successfully", res)
}

func (h *NotificationHandler) Unread(c *gin.Context) {
	items, err := h.svc.Unread(c.Request.Context(), middleware.MustUserID(c), queryInt(c, "limit", 0))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, "Unread notifications retrieved successfully", items)
}

func (h *NotificationHandler) HighPriority(c *gin.Context) {
	items, err := h.svc.HighPriority(c.Request.Context(), middleware.MustUserID(c), queryInt(c, "limit", 0))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, "High priority notifications retrieved successfully", items)
}

func (h *NotificationHandler) ByType(c *gin.Context) {
	items, err := h.svc.ByType(c.Request.Context(), middleware.MustUserID(c), c.Param("type"), queryInt(c, "limit", 0))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, "Notifications retrieved successfully", items)
}

func (h *NotificationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	n, err := h.svc.Get(c.Request.Context(), middleware.MustUserID(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Notification retrieved successfully", n)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	n, err := h.svc.MarkRead(c.Request.Context(), middleware.MustUserID(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Notification marked as read", n)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	n, err := h.svc.MarkAllRead(c.Request.Context(), middleware.MustUserID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "All notifications marked as read", gin.H{"updated": n})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.MustUserID(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Notification deleted successfully", gin.H{"id": id})
}

type bulkRequest struct {
	IDs    []uint `json:"notification_ids" binding:"required"`
	Action string `json:"action" binding:"required"`
}

func (h *NotificationHandler) Bulk(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	n, err := h.svc.Bulk(c.Request.Context(), middleware.MustUserID(c), req.IDs, req.Action)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Bulk action applied successfully", gin.H{"action": req.Action, "affected": n})
}
