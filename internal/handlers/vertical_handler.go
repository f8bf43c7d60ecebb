package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httpresp"
	"github.com/BruksfildServices01/appointmenttech-api/internal/middleware"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/vertical"
)

// ======================================================
// Hostel
// ======================================================

type HostelHandler struct {
	Rooms     *ResourceHandler[models.Room, *models.Room]
	Customers *ResourceHandler[models.Customer, *models.Customer]
	Bookings  *ResourceHandler[models.Booking, *models.Booking]

	svc *vertical.Hostel
}

func NewHostelHandler(svc *vertical.Hostel) *HostelHandler {
	return &HostelHandler{
		Rooms: NewResourceHandler(svc.Rooms, "Room").
			WithCreate(svc.CreateRoom).
			WithUpdate(svc.UpdateRoom),
		Customers: NewResourceHandler(svc.Customers, "Customer"),
		Bookings: NewResourceHandler(svc.Bookings, "Booking").
			WithUpdate(svc.UpdateBooking),
		svc: svc,
	}
}

func (h *HostelHandler) CreateBooking(c *gin.Context) {
	var req vertical.BookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	b, err := h.svc.CreateBooking(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, "Booking created successfully", b)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *HostelHandler) CancelBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req cancelRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.InvalidRequest(c, err)
			return
		}
	}
	b, err := h.svc.CancelBooking(c.Request.Context(), middleware.Actor(c), queryUint(c, "business_user_id"), id, req.Reason)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Booking cancelled successfully", b)
}

func (h *HostelHandler) CheckIn(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := h.svc.CheckIn(c.Request.Context(), middleware.Actor(c), queryUint(c, "business_user_id"), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Guest checked in successfully", b)
}

func (h *HostelHandler) CheckOut(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := h.svc.CheckOut(c.Request.Context(), middleware.Actor(c), queryUint(c, "business_user_id"), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Guest checked out successfully", b)
}

// ======================================================
// Hospital staff and patients
// ======================================================

type HospitalHandler struct {
	Staff    *ResourceHandler[models.Staff, *models.Staff]
	Patients *ResourceHandler[models.Patient, *models.Patient]
}

func NewHospitalHandler(svc *vertical.Hospital) *HospitalHandler {
	return &HospitalHandler{
		Staff: NewResourceHandler(svc.Staff, "Staff").
			WithCreate(svc.CreateStaff).
			WithUpdate(svc.UpdateStaff),
		Patients: NewResourceHandler(svc.Patients, "Patient").
			WithCreate(svc.CreatePatient).
			WithUpdate(svc.UpdatePatient),
	}
}

// ======================================================
// Garage
// ======================================================

type GarageHandler struct {
	Vehicles *ResourceHandler[models.Vehicle, *models.Vehicle]
	Services *ResourceHandler[models.GarageService, *models.GarageService]
	Bookings *ResourceHandler[models.GarageBooking, *models.GarageBooking]

	svc *vertical.Garage
}

func NewGarageHandler(svc *vertical.Garage) *GarageHandler {
	return &GarageHandler{
		Vehicles: NewResourceHandler(svc.Vehicles, "Vehicle").
			WithCreate(svc.CreateVehicle).
			WithUpdate(svc.UpdateVehicle),
		Services: NewResourceHandler(svc.Services, "Service"),
		Bookings: NewResourceHandler(svc.Bookings, "Garage booking").
			WithUpdate(svc.UpdateBooking),
		svc: svc,
	}
}

func (h *GarageHandler) CreateBooking(c *gin.Context) {
	var req vertical.GarageBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	b, err := h.svc.CreateBooking(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, "Garage booking created successfully", b)
}

// ======================================================
// Catering
// ======================================================

type CateringHandler struct {
	MenuItems *ResourceHandler[models.MenuItem, *models.MenuItem]
	Orders    *ResourceHandler[models.CateringOrder, *models.CateringOrder]

	svc *vertical.Catering
}

func NewCateringHandler(svc *vertical.Catering) *CateringHandler {
	return &CateringHandler{
		MenuItems: NewResourceHandler(svc.MenuItems, "Menu item").
			WithCreate(svc.CreateMenuItem),
		Orders: NewResourceHandler(svc.Orders, "Order").
			WithUpdate(svc.UpdateOrder),
		svc: svc,
	}
}

func (h *CateringHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	o, err := h.svc.GetOrder(c.Request.Context(), queryUint(c, "business_user_id"), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Order retrieved successfully", o)
}

func (h *CateringHandler) CreateOrder(c *gin.Context) {
	var req vertical.OrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	o, err := h.svc.CreateOrder(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, "Order created successfully", o)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *CateringHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	o, err := h.svc.SetStatus(c.Request.Context(), middleware.Actor(c), queryUint(c, "business_user_id"), id, req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Order status updated successfully", o)
}
