package catering

import (
	"math"

	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

var statuses = map[string]bool{
	models.OrderPending:    true,
	models.OrderConfirmed:  true,
	models.OrderInProgress: true,
	models.OrderDelivered:  true,
	models.OrderCancelled:  true,
}

func ValidStatus(s string) bool { return statuses[s] }

// Totals fills line totals, the item subtotal and the final amount.
func Totals(o *models.CateringOrder) {
	var sum float64
	for i := range o.Items {
		it := &o.Items[i]
		it.TotalPrice = round(it.UnitPrice * float64(it.Quantity))
		sum += it.TotalPrice
	}
	o.TotalAmount = round(sum)
	o.FinalAmount = Final(o)
}

// Final is subtotal + delivery + tax - discount, never below zero.
func Final(o *models.CateringOrder) float64 {
	f := round(o.TotalAmount + o.DeliveryCharges + o.TaxAmount - o.DiscountAmount)
	if f < 0 {
		return 0
	}
	return f
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
