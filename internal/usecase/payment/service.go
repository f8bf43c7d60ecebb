package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	domain "github.com/BruksfildServices01/appointmenttech-api/internal/domain/payment"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/payments"
)

var tracer = otel.Tracer("appointmenttech-api/payments")

const refPrefix = "tx-"

type Notifier interface {
	Payment(ctx context.Context, ownerID, businessUserID uint, reference, status string, amount float64)
}

type CheckoutInput struct {
	BusinessUserID uint   `json:"business_user_id" binding:"required"`
	ReferenceType  string `json:"reference_type" binding:"required"`
	ReferenceID    uint   `json:"reference_id" binding:"required"`
}

type CheckoutResult struct {
	Transaction *models.PaymentTransaction `json:"transaction"`
	payments.Checkout
}

type Service struct {
	repo       domain.Repository
	businesses crud.Repository[models.BusinessUser]
	gateway    payments.Gateway
	notify     Notifier
	audit      *audit.Dispatcher
	currency   string
}

// NewService accepts a nil gateway; checkout then reports payments_disabled.
func NewService(
	repo domain.Repository,
	businesses crud.Repository[models.BusinessUser],
	gateway payments.Gateway,
	notify Notifier,
	dispatcher *audit.Dispatcher,
	currency string,
) *Service {
	if currency == "" {
		currency = "INR"
	}
	return &Service{
		repo:       repo,
		businesses: businesses,
		gateway:    gateway,
		notify:     notify,
		audit:      dispatcher,
		currency:   currency,
	}
}

// ======================================================
// CHECKOUT
// ======================================================

func (s *Service) Checkout(ctx context.Context, actor audit.Actor, in CheckoutInput) (*CheckoutResult, error) {
	ctx, span := tracer.Start(ctx, "payments.checkout")
	defer span.End()
	span.SetAttributes(
		attribute.String("payment.reference_type", in.ReferenceType),
		attribute.Int64("payment.reference_id", int64(in.ReferenceID)),
	)

	if s.gateway == nil {
		return nil, httperr.E(http.StatusServiceUnavailable, "payments_disabled", "Payments are not configured.")
	}
	if !domain.ValidReference(in.ReferenceType) {
		return nil, httperr.BusinessError{Code: "invalid_reference_type", Message: "reference_type must be booking, appointment, garage_booking or catering_order."}
	}

	ref, err := s.repo.LoadReference(ctx, in.ReferenceType, in.ReferenceID)
	if errors.Is(err, crud.ErrNotFound) || (err == nil && ref.BusinessUserID != in.BusinessUserID) {
		return nil, httperr.NotFoundErr("reference_not_found", "Payment reference not found.")
	}
	if err != nil {
		return nil, err
	}
	if ref.Amount <= 0 {
		return nil, httperr.BusinessError{Code: "nothing_to_pay", Message: "The reference has no amount due."}
	}

	tx := &models.PaymentTransaction{
		BusinessUserID:  in.BusinessUserID,
		CustomerID:      ref.CustomerID,
		ReferenceType:   in.ReferenceType,
		ReferenceID:     in.ReferenceID,
		TransactionType: "PAYMENT",
		Amount:          ref.Amount,
		Currency:        s.currency,
		Status:          models.TxPending,
		Description:     fmt.Sprintf("Payment for %s %s", strings.ReplaceAll(in.ReferenceType, "_", " "), ref.Number),
	}
	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, err
	}

	checkout, err := s.gateway.CreateCheckout(ctx, payments.CheckoutRequest{
		Title:             tx.Description,
		Amount:            tx.Amount,
		Currency:          tx.Currency,
		ExternalReference: refPrefix + strconv.FormatUint(uint64(tx.ID), 10),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create checkout")

		tx.Status = models.TxFailed
		if uerr := s.repo.Update(ctx, tx); uerr != nil {
			zerolog.Ctx(ctx).Error().Err(uerr).Uint("transaction_id", tx.ID).Msg("failed to mark transaction FAILED")
		}
		return nil, httperr.E(http.StatusBadGateway, "payment_gateway_error", "The payment provider rejected the checkout.")
	}

	tx.GatewayPreferenceID = checkout.PreferenceID
	if err := s.repo.Update(ctx, tx); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		Actor:          actor,
		BusinessUserID: &tx.BusinessUserID,
		Action:         audit.ActionPayment,
		Table:          "payment_transactions",
		RecordID:       &tx.ID,
		Values:         tx,
	})

	return &CheckoutResult{Transaction: tx, Checkout: checkout}, nil
}

// ======================================================
// WEBHOOK
// ======================================================

// HandleNotification settles the transaction behind a gateway payment.
// Payments that do not carry one of our references are ignored.
func (s *Service) HandleNotification(ctx context.Context, paymentID string) (*models.PaymentTransaction, error) {
	ctx, span := tracer.Start(ctx, "payments.webhook")
	defer span.End()
	span.SetAttributes(attribute.String("payment.gateway_id", paymentID))

	if s.gateway == nil {
		return nil, httperr.E(http.StatusServiceUnavailable, "payments_disabled", "Payments are not configured.")
	}

	p, err := s.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "get payment")
		return nil, err
	}

	log := zerolog.Ctx(ctx)

	id, ok := parseReference(p.ExternalReference)
	if !ok {
		log.Warn().Str("payment_id", paymentID).Str("external_reference", p.ExternalReference).Msg("payment without transaction reference")
		return nil, nil
	}

	tx, err := s.repo.Get(ctx, id)
	if errors.Is(err, crud.ErrNotFound) {
		log.Warn().Str("payment_id", paymentID).Uint("transaction_id", id).Msg("payment for unknown transaction")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	previous := tx.Status
	tx.Status = payments.TransactionStatus(p.Status)
	tx.GatewayTransactionID = p.ID
	tx.PaymentMethod = p.Method
	if raw, err := json.Marshal(p); err == nil {
		tx.GatewayResponse = raw
	}

	if err := s.repo.Update(ctx, tx); err != nil {
		return nil, err
	}
	if err := s.repo.SetReferencePaymentStatus(ctx, tx.ReferenceType, tx.ReferenceID, payments.ReferencePaymentStatus(tx.Status)); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		BusinessUserID: &tx.BusinessUserID,
		Action:         audit.ActionPayment,
		Table:          "payment_transactions",
		RecordID:       &tx.ID,
		Values:         map[string]any{"status": tx.Status, "gateway_status": p.Status},
	})

	if previous != tx.Status && s.notify != nil {
		if b, err := s.businesses.Get(ctx, tx.BusinessUserID); err == nil {
			s.notify.Payment(ctx, b.UserID, b.ID, tx.Description, tx.Status, tx.Amount)
		}
	}

	return tx, nil
}

func parseReference(ref string) (uint, bool) {
	if !strings.HasPrefix(ref, refPrefix) {
		return 0, false
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(ref, refPrefix), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// ======================================================
// LISTING
// ======================================================

func (s *Service) Transactions(ctx context.Context, businessUserID uint, limit, offset int) ([]models.PaymentTransaction, int64, error) {
	if businessUserID == 0 {
		return nil, 0, httperr.BusinessError{Code: "business_user_id_required", Message: "business_user_id is required."}
	}
	return s.repo.List(ctx, crud.Query{
		Order:  "created_at DESC",
		Limit:  limit,
		Offset: offset,
	}.Where("business_user_id", businessUserID))
}
