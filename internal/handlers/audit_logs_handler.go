package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httpresp"
	"github.com/BruksfildServices01/appointmenttech-api/internal/middleware"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/business"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs       *audit.Logger
	businesses *business.UserService
}

func NewAuditLogsHandler(logs *audit.Logger, businesses *business.UserService) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, businesses: businesses}
}

// List returns the caller's own entries, or the entries of a business the
// caller owns when business_user_id is given.
func (h *AuditLogsHandler) List(c *gin.Context) {
	uid := middleware.MustUserID(c)

	f := audit.Filter{
		Action: c.Query("action"),
		Table:  c.Query("table"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", audit.DefaultLimit),
	}

	if bid := queryUint(c, "business_user_id"); bid != 0 {
		b, err := h.businesses.Get(c.Request.Context(), bid)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		if b.UserID != uid {
			httperr.Forbidden(c, "not_business_owner", "Only the business owner can read its audit log.")
			return
		}
		f.BusinessUserID = &bid
	} else {
		f.UserID = &uid
	}

	// --------------------------------------------------
	// Date range (inclusive days)
	// --------------------------------------------------

	if s := c.Query("from"); s != "" {
		from, err := parseDate(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "from must be YYYY-MM-DD.")
			return
		}
		f.From = &from
	}
	if s := c.Query("to"); s != "" {
		to, err := parseDate(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "to must be YYYY-MM-DD.")
			return
		}
		end := to.Add(24 * time.Hour)
		f.To = &end
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	f.Normalize()
	httpresp.OK(c, "Audit logs retrieved successfully", gin.H{
		"page":  f.Page,
		"limit": f.Limit,
		"total": total,
		"logs":  logs,
	})
}
