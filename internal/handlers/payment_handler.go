package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httpresp"
	"github.com/BruksfildServices01/appointmenttech-api/internal/middleware"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/payment"
)

type PaymentHandler struct {
	svc *payment.Service
}

func NewPaymentHandler(svc *payment.Service) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) Checkout(c *gin.Context) {
	var req payment.CheckoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	res, err := h.svc.Checkout(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, "Checkout created successfully", res)
}

// webhookBody is the subset of the gateway notification we read.
type webhookBody struct {
	Type string `json:"type"`
	Data struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
}

// paymentID reads data.id from the body, falling back to the
// data.id / id query params used by the older notification format.
func paymentID(c *gin.Context) string {
	var body webhookBody
	if err := c.ShouldBindJSON(&body); err == nil && len(body.Data.ID) > 0 {
		var s string
		if json.Unmarshal(body.Data.ID, &s) == nil {
			return s
		}
		return string(body.Data.ID)
	}
	if id := c.Query("data.id"); id != "" {
		return id
	}
	return c.Query("id")
}

// Webhook always acknowledges known payloads so the gateway stops retrying.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	id := paymentID(c)
	if id == "" {
		httperr.BadRequest(c, "invalid_notification", "Payment id is missing.")
		return
	}

	tx, err := h.svc.HandleNotification(c.Request.Context(), id)
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("payment_id", id).Msg("payment notification failed")
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Notification processed", tx)
}

func (h *PaymentHandler) Transactions(c *gin.Context) {
	limit, offset := paging(c, 50, 200)
	items, total, err := h.svc.Transactions(c.Request.Context(), queryUint(c, "business_user_id"), limit, offset)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Paged(c, "Transactions retrieved successfully", items, total, limit, offset)
}
