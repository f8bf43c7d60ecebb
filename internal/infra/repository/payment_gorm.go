package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/payment"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type PaymentGormRepository struct {
	*CrudGormRepository[models.PaymentTransaction]
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{NewRepository[models.PaymentTransaction](db)}
}

var _ payment.Repository = (*PaymentGormRepository)(nil)

func (r *PaymentGormRepository) LoadReference(ctx context.Context, refType string, refID uint) (*payment.Reference, error) {
	q := r.db.WithContext(ctx)

	switch refType {
	case payment.RefBooking:
		var b models.Booking
		if err := q.First(&b, refID).Error; err != nil {
			return nil, translate(err)
		}
		return &payment.Reference{BusinessUserID: b.BusinessUserID, CustomerID: &b.CustomerID, Number: b.BookingNumber, Amount: b.TotalAmount - b.AdvanceAmount}, nil

	case payment.RefAppointment:
		var a models.Appointment
		if err := q.First(&a, refID).Error; err != nil {
			return nil, translate(err)
		}
		return &payment.Reference{BusinessUserID: a.BusinessUserID, Number: a.AppointmentNumber, Amount: a.ConsultationFee}, nil

	case payment.RefGarageBooking:
		var g models.GarageBooking
		if err := q.First(&g, refID).Error; err != nil {
			return nil, translate(err)
		}
		return &payment.Reference{BusinessUserID: g.BusinessUserID, CustomerID: &g.CustomerID, Number: g.BookingNumber, Amount: g.TotalAmount}, nil

	case payment.RefCateringOrder:
		var o models.CateringOrder
		if err := q.First(&o, refID).Error; err != nil {
			return nil, translate(err)
		}
		return &payment.Reference{BusinessUserID: o.BusinessUserID, CustomerID: &o.CustomerID, Number: o.OrderNumber, Amount: o.FinalAmount}, nil
	}

	return nil, fmt.Errorf("unknown reference type %q", refType)
}

func (r *PaymentGormRepository) SetReferencePaymentStatus(ctx context.Context, refType string, refID uint, status string) error {
	var model any
	switch refType {
	case payment.RefBooking:
		model = &models.Booking{}
	case payment.RefAppointment:
		model = &models.Appointment{}
	case payment.RefGarageBooking:
		model = &models.GarageBooking{}
	case payment.RefCateringOrder:
		model = &models.CateringOrder{}
	default:
		return fmt.Errorf("unknown reference type %q", refType)
	}

	return r.db.WithContext(ctx).
		Model(model).
		Where("id = ?", refID).
		Update("payment_status", status).Error
}
