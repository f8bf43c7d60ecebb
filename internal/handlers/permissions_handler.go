package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httpresp"
	"github.com/BruksfildServices01/appointmenttech-api/internal/middleware"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/permission"
)

type PermissionsHandler struct {
	*CatalogHandler[models.UserPermission, *models.UserPermission]
	svc *permission.Service
}

func NewPermissionsHandler(svc *permission.Service) *PermissionsHandler {
	return &PermissionsHandler{
		CatalogHandler: NewCatalogHandler(svc.Service, "User permission", nil),
		svc:            svc,
	}
}

func (h *PermissionsHandler) ByUserType(c *gin.Context) {
	id, ok := pathID(c, "user_type_id")
	if !ok {
		return
	}
	items, err := h.svc.ByUserType(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, "User permissions retrieved successfully", items)
}

func (h *PermissionsHandler) WithPages(c *gin.Context) {
	id, ok := pathID(c, "user_type_id")
	if !ok {
		return
	}
	items, err := h.svc.WithPages(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, "User permissions retrieved successfully", items)
}

func (h *PermissionsHandler) List(c *gin.Context) {
	q := crud.Query{Active: activeFlag(c)}
	if id := queryUint(c, "user_type_id"); id != 0 {
		q = q.Where("user_type_id", id)
	}
	items, _, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, "User permissions retrieved successfully", items)
}

func (h *PermissionsHandler) Create(c *gin.Context) {
	var req permission.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	p, err := h.svc.CreatePermission(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, "User permission created successfully", p)
}

func (h *PermissionsHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req permission.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	p, err := h.svc.UpdatePermission(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "User permission updated successfully", p)
}
