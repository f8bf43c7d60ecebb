package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httpresp"
	"github.com/BruksfildServices01/appointmenttech-api/internal/middleware"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/storage"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/business"
)

// mediaFiles stores the optional business_media / icon uploads of a
// multipart request and returns their URLs.
func mediaFiles(c *gin.Context, uploads *storage.Uploader, module string) (media, icon string, err error) {
	form, ferr := c.MultipartForm()
	if ferr != nil && ferr != http.ErrNotMultipart {
		return "", "", invalid(ferr)
	}
	ctx := c.Request.Context()
	if media, err = uploads.Optional(ctx, form, "business_media", module); err != nil {
		return "", "", err
	}
	if icon, err = uploads.Optional(ctx, form, "icon", module+"_icons"); err != nil {
		return "", "", err
	}
	return media, icon, nil
}

// ==========================
// Business types
// ==========================

type BusinessTypesHandler struct {
	*CatalogHandler[models.BusinessType, *models.BusinessType]
	svc     *business.TypeService
	uploads *storage.Uploader
}

func NewBusinessTypesHandler(svc *business.TypeService, uploads *storage.Uploader) *BusinessTypesHandler {
	return &BusinessTypesHandler{
		CatalogHandler: NewCatalogHandler(svc.Service, "Business type", nil),
		svc:            svc,
		uploads:        uploads,
	}
}

func (h *BusinessTypesHandler) bind(c *gin.Context) (business.TypeInput, bool) {
	var req business.TypeInput
	if err := c.ShouldBind(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return req, false
	}
	media, icon, err := mediaFiles(c, h.uploads, "business_types")
	if err != nil {
		httperr.FromError(c, err)
		return req, false
	}
	req.Media, req.Icon = media, icon
	return req, true
}

func (h *BusinessTypesHandler) Create(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	t, err := h.svc.CreateType(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, "Business type created successfully", t)
}

func (h *BusinessTypesHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req, ok := h.bind(c)
	if !ok {
		return
	}
	t, err := h.svc.UpdateType(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Business type updated successfully", t)
}

// ==========================
// Business categories
// ==========================

type BusinessCategoriesHandler struct {
	*CatalogHandler[models.BusinessCategory, *models.BusinessCategory]
	svc     *business.CategoryService
	uploads *storage.Uploader
}

func NewBusinessCategoriesHandler(svc *business.CategoryService, uploads *storage.Uploader) *BusinessCategoriesHandler {
	return &BusinessCategoriesHandler{
		CatalogHandler: NewCatalogHandler(svc.Service, "Business category", nil),
		svc:            svc,
		uploads:        uploads,
	}
}

func (h *BusinessCategoriesHandler) List(c *gin.Context) {
	q := crud.Query{Active: activeFlag(c)}
	if id := queryUint(c, "business_type_id"); id != 0 {
		q = q.Where("business_type_id", id)
	}
	items, _, err := h.svc.ListCategories(c.Request.Context(), q)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, "Business categories retrieved successfully", items)
}

func (h *BusinessCategoriesHandler) bind(c *gin.Context) (business.CategoryInput, bool) {
	var req business.CategoryInput
	if err := c.ShouldBind(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return req, false
	}
	media, icon, err := mediaFiles(c, h.uploads, "business_categories")
	if err != nil {
		httperr.FromError(c, err)
		return req, false
	}
	req.Media, req.Icon = media, icon
	return req, true
}

func (h *BusinessCategoriesHandler) Create(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	cat, err := h.svc.CreateCategory(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, "Business category created successfully", cat)
}

func (h *BusinessCategoriesHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req, ok := h.bind(c)
	if !ok {
		return
	}
	cat, err := h.svc.UpdateCategory(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Business category updated successfully", cat)
}

// ==========================
// Business users
// ==========================

type BusinessUsersHandler struct {
	svc *business.UserService
}

func NewBusinessUsersHandler(svc *business.UserService) *BusinessUsersHandler {
	return &BusinessUsersHandler{svc: svc}
}

func (h *BusinessUsersHandler) List(c *gin.Context) {
	limit, offset := paging(c, 100, 1000)
	q := crud.Query{Active: activeFlag(c), Limit: limit, Offset: offset}
	if id := queryUint(c, "business_type_id"); id != 0 {
		q = q.Where("business_type_id", id)
	}
	if id := queryUint(c, "user_id"); id != 0 {
		q = q.Where("user_id", id)
	}

	items, total, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Paged(c, "Business users retrieved successfully", items, total, limit, offset)
}

func (h *BusinessUsersHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Business user retrieved successfully", b)
}

func (h *BusinessUsersHandler) Create(c *gin.Context) {
	var req business.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	b, err := h.svc.CreateBusinessUser(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, "Business user created successfully", b)
}

func (h *BusinessUsersHandler) CreateMany(c *gin.Context) {
	var req []business.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	rows, err := h.svc.CreateMany(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, "Business users created successfully", rows)
}

func (h *BusinessUsersHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req business.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	b, err := h.svc.UpdateBusinessUser(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Business user updated successfully", b)
}

func (h *BusinessUsersHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.Actor(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Business user deleted successfully", gin.H{"id": id})
}

func (h *BusinessUsersHandler) Logo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "invalid_file", "A file field named \"file\" is required.")
		return
	}
	b, err := h.svc.SetLogo(c.Request.Context(), middleware.Actor(c), id, fh)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Business logo updated successfully", b)
}
