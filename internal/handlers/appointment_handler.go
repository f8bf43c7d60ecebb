package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/appointmenttech-api/internal/domain/appointment"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httpresp"
	"github.com/BruksfildServices01/appointmenttech-api/internal/middleware"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/appointment"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/vertical"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	*ResourceHandler[models.Appointment, *models.Appointment]

	create       *appointment.CreateAppointment
	cancel       *appointment.Transition
	complete     *appointment.Transition
	byDate       *appointment.ListAppointmentsByDate
	byMonth      *appointment.ListAppointmentsByMonth
	availability *appointment.GetAvailability
}

func NewAppointmentHandler(
	repo domain.Repository,
	hospital *vertical.Hospital,
	create *appointment.CreateAppointment,
) *AppointmentHandler {
	update := appointment.NewUpdateAppointment(repo, hospital.Appointments)

	return &AppointmentHandler{
		ResourceHandler: NewResourceHandler(hospital.Appointments, "Appointment").
			WithUpdate(update.Execute),
		create:       create,
		cancel:       appointment.NewCancelAppointment(hospital.Appointments),
		complete:     appointment.NewCompleteAppointment(hospital.Appointments),
		byDate:       appointment.NewListAppointmentsByDate(repo),
		byMonth:      appointment.NewListAppointmentsByMonth(repo),
		availability: appointment.NewGetAvailability(repo),
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req appointment.CreateAppointmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, "Appointment created successfully", ap)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ap, err := h.cancel.Execute(c.Request.Context(), middleware.Actor(c), queryUint(c, "business_user_id"), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Appointment cancelled successfully", ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ap, err := h.complete.Execute(c.Request.Context(), middleware.Actor(c), queryUint(c, "business_user_id"), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Appointment completed successfully", ap)
}

// ======================================================
// CALENDAR
// ======================================================

func (h *AppointmentHandler) ByDate(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	items, err := h.byDate.Execute(c.Request.Context(), queryUint(c, "business_user_id"), queryUint(c, "doctor_id"), date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, "Appointments retrieved successfully", items)
}

func (h *AppointmentHandler) ByMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		httperr.BadRequest(c, "invalid_year", "year is required.")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "month is required.")
		return
	}

	items, err := h.byMonth.Execute(c.Request.Context(), queryUint(c, "business_user_id"), queryUint(c, "doctor_id"), year, month)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, "Appointments retrieved successfully", items)
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}
	doctorID := queryUint(c, "doctor_id")
	if doctorID == 0 {
		httperr.BadRequest(c, "doctor_id_required", "doctor_id is required.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BusinessUserID: queryUint(c, "business_user_id"),
		DoctorID:       doctorID,
		Date:           date,
		SlotMinutes:    queryInt(c, "slot_minutes", 0),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, "Available slots retrieved successfully", slots)
}
