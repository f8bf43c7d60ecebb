package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httpresp"
	"github.com/BruksfildServices01/appointmenttech-api/internal/middleware"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/catalog"
)

// CatalogHandler serves the plain catalogue tables (user types, pages)
// whose request body is the row itself.
type CatalogHandler[T any, PT interface {
	*T
	catalog.Record
}] struct {
	svc      *catalog.Service[T, PT]
	label    string
	validate func(*T) error
}

func NewCatalogHandler[T any, PT interface {
	*T
	catalog.Record
}](svc *catalog.Service[T, PT], label string, validate func(*T) error) *CatalogHandler[T, PT] {
	if validate == nil {
		validate = func(*T) error { return nil }
	}
	return &CatalogHandler[T, PT]{svc: svc, label: label, validate: validate}
}

func (h *CatalogHandler[T, PT]) List(c *gin.Context) {
	h.list(c, activeFlag(c))
}

func (h *CatalogHandler[T, PT]) Active(c *gin.Context) {
	f := models.Yes
	h.list(c, &f)
}

func (h *CatalogHandler[T, PT]) Inactive(c *gin.Context) {
	f := models.No
	h.list(c, &f)
}

func (h *CatalogHandler[T, PT]) list(c *gin.Context, active *models.YesNo) {
	items, _, err := h.svc.List(c.Request.Context(), crud.Query{Active: active})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, h.label+" list retrieved successfully", items)
}

func (h *CatalogHandler[T, PT]) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	e, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, h.label+" retrieved successfully", e)
}

func (h *CatalogHandler[T, PT]) Create(c *gin.Context) {
	var e T
	if err := bindCreate(c, &e); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	if err := h.validate(&e); err != nil {
		httperr.FromError(c, err)
		return
	}

	if err := h.svc.Create(c.Request.Context(), middleware.Actor(c), PT(&e)); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, h.label+" created successfully", &e)
}

func (h *CatalogHandler[T, PT]) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	e, err := h.svc.Update(c.Request.Context(), middleware.Actor(c), id, func(e PT) error {
		if err := mergeJSON(body, e); err != nil {
			return invalid(err)
		}
		return h.validate((*T)(e))
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, h.label+" updated successfully", e)
}

func (h *CatalogHandler[T, PT]) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.Actor(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, h.label+" deleted successfully", gin.H{"id": id})
}

func (h *CatalogHandler[T, PT]) Activate(c *gin.Context) {
	h.setActive(c, models.Yes, "activated")
}

func (h *CatalogHandler[T, PT]) Deactivate(c *gin.Context) {
	h.setActive(c, models.No, "deactivated")
}

func (h *CatalogHandler[T, PT]) setActive(c *gin.Context, flag models.YesNo, verb string) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.SetActive(c.Request.Context(), middleware.Actor(c), id, flag); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, h.label+" "+verb+" successfully", gin.H{"id": id, "is_active": flag})
}

// --------------------------------------------------
// Validators for the catalogue rows
// --------------------------------------------------

func ValidateUserType(t *models.UserType) error {
	if t.Name == "" {
		return httperr.BusinessError{Code: "invalid_request", Message: "name is required."}
	}
	return validFlags(map[string]models.YesNo{"is_member": t.IsMember, "is_active": t.IsActive})
}

func ValidatePage(p *models.Page) error {
	if p.Name == "" || p.DisplayText == "" {
		return httperr.BusinessError{Code: "invalid_request", Message: "name and display_text are required."}
	}
	return validFlags(map[string]models.YesNo{"is_internal": p.IsInternal, "is_active": p.IsActive})
}

func validFlags(flags map[string]models.YesNo) error {
	for name, f := range flags {
		if f != "" && !f.Valid() {
			return httperr.BusinessError{Code: "invalid_request", Message: name + " must be Y or N."}
		}
	}
	return nil
}
