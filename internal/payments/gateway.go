package payments

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

var ErrDisabled = errors.New("payments are not configured")

type CheckoutRequest struct {
	Title             string
	Amount            float64
	Currency          string
	ExternalReference string
}

type Checkout struct {
	PreferenceID     string `json:"preference_id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point,omitempty"`
}

type Payment struct {
	ID                string
	Status            string
	StatusDetail      string
	ExternalReference string
	Amount            float64
	Method            string
}

// Gateway is the card processor seen by the payment flows.
type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (Checkout, error)
	GetPayment(ctx context.Context, id string) (Payment, error)
}

// TransactionStatus maps a gateway payment status to a transaction status.
func TransactionStatus(gatewayStatus string) string {
	switch gatewayStatus {
	case "approved", "authorized":
		return models.TxSuccess
	case "rejected":
		return models.TxFailed
	case "cancelled":
		return models.TxCancelled
	case "refunded", "charged_back":
		return models.TxRefunded
	}
	return models.TxPending
}

// ReferencePaymentStatus is the payment_status written back on the
// booking, appointment or order.
func ReferencePaymentStatus(txStatus string) string {
	switch txStatus {
	case models.TxSuccess:
		return models.PaymentPaid
	case models.TxRefunded:
		return models.PaymentRefunded
	}
	return models.PaymentPending
}
