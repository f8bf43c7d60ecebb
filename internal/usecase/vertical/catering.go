package vertical

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/catering"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type OrderItemInput struct {
	MenuItemID          uint   `json:"item_id" binding:"required"`
	Quantity            int    `json:"quantity" binding:"required,min=1"`
	SpecialInstructions string `json:"special_instructions"`
}

type OrderInput struct {
	BusinessUserID      uint             `json:"business_user_id" binding:"required"`
	CustomerID          uint             `json:"customer_id" binding:"required"`
	DeliveryDate        *time.Time       `json:"delivery_date"`
	DeliveryAddress     string           `json:"delivery_address"`
	GuestCount          int              `json:"guest_count" binding:"min=0"`
	SpecialInstructions string           `json:"special_instructions"`
	DeliveryCharges     float64          `json:"delivery_charges" binding:"min=0"`
	TaxAmount           float64          `json:"tax_amount" binding:"min=0"`
	DiscountAmount      float64          `json:"discount_amount" binding:"min=0"`
	Items               []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

type Catering struct {
	MenuItems *Resource[models.MenuItem, *models.MenuItem]
	Orders    *Resource[models.CateringOrder, *models.CateringOrder]

	repo      catering.Repository
	customers *Resource[models.Customer, *models.Customer]
	notify    BookingNotifier
	now       func() time.Time
}

func NewCatering(
	menu crud.Repository[models.MenuItem],
	orders catering.Repository,
	customers *Resource[models.Customer, *models.Customer],
	businesses crud.Repository[models.BusinessUser],
	notify BookingNotifier,
	dispatcher *audit.Dispatcher,
) *Catering {
	return &Catering{
		MenuItems: NewResource[models.MenuItem, *models.MenuItem](menu, businesses, Options{
			Table: "menu_items", Label: "Menu item", NotFoundCode: "menu_item_not_found", Order: "name ASC",
		}, dispatcher),
		Orders: NewResource[models.CateringOrder, *models.CateringOrder](orders, businesses, Options{
			Table: "catering_orders", Label: "Order", NotFoundCode: "order_not_found", Order: "order_date DESC",
		}, dispatcher),
		repo:      orders,
		customers: customers,
		notify:    notify,
		now:       time.Now,
	}
}

func (c *Catering) CreateMenuItem(ctx context.Context, actor audit.Actor, businessUserID uint, m *models.MenuItem) error {
	if m.IsAvailable == "" {
		m.IsAvailable = models.Yes
	}
	if m.IsVegetarian == "" {
		m.IsVegetarian = models.No
	}
	if m.IsFeatured == "" {
		m.IsFeatured = models.No
	}
	return c.MenuItems.Create(ctx, actor, businessUserID, m)
}

// GetOrder returns the order with its lines.
func (c *Catering) GetOrder(ctx context.Context, businessUserID, id uint) (*models.CateringOrder, error) {
	o, err := c.repo.GetWithItems(ctx, id)
	if errors.Is(err, crud.ErrNotFound) || (err == nil && businessUserID != 0 && o.BusinessUserID != businessUserID) {
		return nil, c.Orders.NotFound()
	}
	return o, err
}

// CreateOrder prices every line from the menu; unavailable items reject
// the whole order.
func (c *Catering) CreateOrder(ctx context.Context, actor audit.Actor, in OrderInput) (*models.CateringOrder, error) {
	business, err := c.Orders.Business(ctx, in.BusinessUserID)
	if err != nil {
		return nil, err
	}
	if _, err := c.customers.Get(ctx, in.BusinessUserID, in.CustomerID); err != nil {
		return nil, err
	}

	now := c.now()
	o := &models.CateringOrder{
		CustomerID:          in.CustomerID,
		OrderNumber:         Number("CO", now),
		OrderDate:           now,
		DeliveryDate:        in.DeliveryDate,
		DeliveryAddress:     in.DeliveryAddress,
		GuestCount:          in.GuestCount,
		SpecialInstructions: in.SpecialInstructions,
		DeliveryCharges:     in.DeliveryCharges,
		TaxAmount:           in.TaxAmount,
		DiscountAmount:      in.DiscountAmount,
		Status:              models.OrderPending,
		PaymentStatus:       models.PaymentPending,
	}

	for _, line := range in.Items {
		item, err := c.MenuItems.Get(ctx, in.BusinessUserID, line.MenuItemID)
		if err != nil {
			return nil, err
		}
		if item.IsAvailable != models.Yes {
			return nil, httperr.BusinessError{Code: "menu_item_unavailable", Message: item.Name + " is not available."}
		}
		o.Items = append(o.Items, models.OrderItem{
			MenuItemID:          item.ID,
			Quantity:            line.Quantity,
			UnitPrice:           item.Price,
			SpecialInstructions: line.SpecialInstructions,
		})
	}
	catering.Totals(o)

	if err := c.Orders.Create(ctx, actor, in.BusinessUserID, o); err != nil {
		return nil, err
	}
	c.Orders.record(actor, o, audit.ActionBooking)

	if c.notify != nil {
		c.notify.Booking(ctx, business.UserID, business.ID, "catering order", o.OrderNumber)
	}
	return o, nil
}

// UpdateOrder changes the order header; the lines stay as ordered and the
// final amount is recomputed from the charges.
func (c *Catering) UpdateOrder(ctx context.Context, actor audit.Actor, businessUserID, id uint, apply func(*models.CateringOrder) error) (*models.CateringOrder, error) {
	return c.Orders.Update(ctx, actor, businessUserID, id, func(o *models.CateringOrder) error {
		number, subtotal := o.OrderNumber, o.TotalAmount
		if err := apply(o); err != nil {
			return err
		}
		o.Items = nil
		o.OrderNumber, o.TotalAmount = number, subtotal

		if !catering.ValidStatus(o.Status) {
			return httperr.BusinessError{Code: "invalid_status", Message: "Invalid order status."}
		}
		o.FinalAmount = catering.Final(o)
		return nil
	})
}

func (c *Catering) SetStatus(ctx context.Context, actor audit.Actor, businessUserID, id uint, status string) (*models.CateringOrder, error) {
	if !catering.ValidStatus(status) {
		return nil, httperr.BusinessError{Code: "invalid_status", Message: "Invalid order status."}
	}
	o, err := c.GetOrder(ctx, businessUserID, id)
	if err != nil {
		return nil, err
	}
	if err := c.repo.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}
	o.Status = status

	action := audit.ActionUpdate
	if status == models.OrderCancelled {
		action = audit.ActionCancellation
	}
	c.Orders.record(actor, o, action)
	return o, nil
}
