package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httpresp"
	"github.com/BruksfildServices01/appointmenttech-api/internal/middleware"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/location"
)

// ======================================================
// Location master
// ======================================================

type LocationHandler struct {
	*CatalogHandler[models.LocationMaster, *models.LocationMaster]
	svc *location.MasterService
}

func NewLocationHandler(svc *location.MasterService) *LocationHandler {
	return &LocationHandler{
		CatalogHandler: NewCatalogHandler(svc.Service, "Location", nil),
		svc:            svc,
	}
}

func (h *LocationHandler) Create(c *gin.Context) {
	var req location.MasterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	l, err := h.svc.CreateLocation(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, "Location created successfully", l)
}

func (h *LocationHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req location.MasterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	l, err := h.svc.UpdateLocation(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Location updated successfully", l)
}

func (h *LocationHandler) Toggle(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	flag, err := h.svc.ToggleLocation(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Location status toggled successfully", gin.H{"id": id, "is_active": flag})
}

// ======================================================
// Active pincodes
// ======================================================

type PincodeHandler struct {
	*CatalogHandler[models.LocationActivePincode, *models.LocationActivePincode]
	svc *location.PincodeService
}

func NewPincodeHandler(svc *location.PincodeService) *PincodeHandler {
	return &PincodeHandler{
		CatalogHandler: NewCatalogHandler(svc.Service, "Pincode", nil),
		svc:            svc,
	}
}

func (h *PincodeHandler) List(c *gin.Context) {
	q := crud.Query{Active: activeFlag(c)}
	if id := queryUint(c, "location_id"); id != 0 {
		q = q.Where("location_id", id)
	}
	items, _, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, "Pincodes retrieved successfully", items)
}

func (h *PincodeHandler) Create(c *gin.Context) {
	var req location.PincodeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	p, err := h.svc.CreatePincode(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, "Pincode created successfully", p)
}

func (h *PincodeHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req location.PincodeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	p, err := h.svc.UpdatePincode(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Pincode updated successfully", p)
}

func (h *PincodeHandler) Toggle(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	flag, err := h.svc.TogglePincode(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Pincode status toggled successfully", gin.H{"id": id, "is_active": flag})
}

// ======================================================
// User addresses
// ======================================================

type AddressHandler struct {
	*CatalogHandler[models.LocationUserAddress, *models.LocationUserAddress]
	svc *location.AddressService
}

func NewAddressHandler(svc *location.AddressService) *AddressHandler {
	return &AddressHandler{
		CatalogHandler: NewCatalogHandler(svc.Service, "Address", nil),
		svc:            svc,
	}
}

func (h *AddressHandler) List(c *gin.Context) {
	q := crud.Query{Active: activeFlag(c)}
	if id := queryUint(c, "user_id"); id != 0 {
		q = q.Where("user_id", id)
	}
	items, _, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, "Addresses retrieved successfully", items)
}

func (h *AddressHandler) Create(c *gin.Context) {
	var req location.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	a, err := h.svc.CreateAddress(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, "Address created successfully", a)
}

func (h *AddressHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req location.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	a, err := h.svc.UpdateAddress(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Address updated successfully", a)
}
