package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httpresp"
	"github.com/BruksfildServices01/appointmenttech-api/internal/middleware"
	"github.com/BruksfildServices01/appointmenttech-api/internal/security"
)

type SecurityHandler struct {
	svc *security.Service
}

func NewSecurityHandler(svc *security.Service) *SecurityHandler {
	return &SecurityHandler{svc: svc}
}

func (h *SecurityHandler) Report(c *gin.Context) {
	rep, err := h.svc.Report(c.Request.Context(), middleware.MustUserID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Security report generated successfully", rep)
}

func (h *SecurityHandler) ReportPDF(c *gin.Context) {
	uid := middleware.MustUserID(c)
	rep, err := h.svc.Report(c.Request.Context(), uid)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	pdf, err := security.RenderReportPDF(rep, c.GetString(middleware.ContextUserEmail))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="security-report-%d.pdf"`, uid))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *SecurityHandler) Events(c *gin.Context) {
	limit, offset := paging(c, 50, 200)
	items, total, err := h.svc.Events(c.Request.Context(), middleware.MustUserID(c), limit, offset)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Paged(c, "Security events retrieved successfully", items, total, limit, offset)
}

func (h *SecurityHandler) Blocks(c *gin.Context) {
	limit, offset := paging(c, 50, 200)
	items, total, err := h.svc.Blocks(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Paged(c, "Security blocks retrieved successfully", items, total, limit, offset)
}

func (h *SecurityHandler) CreateBlock(c *gin.Context) {
	var req security.BlockInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	uid := middleware.MustUserID(c)
	b, err := h.svc.CreateBlock(c.Request.Context(), req, &uid)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, "Security block recorded successfully", b)
}

func (h *SecurityHandler) Unblock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := h.svc.Unblock(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Security block lifted successfully", b)
}
