package payment

import (
	"context"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

const (
	RefBooking       = "booking"
	RefAppointment   = "appointment"
	RefGarageBooking = "garage_booking"
	RefCateringOrder = "catering_order"
)

var refTypes = map[string]bool{
	RefBooking: true, RefAppointment: true, RefGarageBooking: true, RefCateringOrder: true,
}

func ValidReference(t string) bool { return refTypes[t] }

// Reference is the payable row a transaction settles.
type Reference struct {
	BusinessUserID uint
	CustomerID     *uint
	Number         string
	Amount         float64
}

type Repository interface {
	crud.Repository[models.PaymentTransaction]

	// LoadReference returns crud.ErrNotFound when the row is missing.
	LoadReference(ctx context.Context, refType string, refID uint) (*Reference, error)
	SetReferencePaymentStatus(ctx context.Context, refType string, refID uint, status string) error
}
