package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	OrderPending    = "Pending"
	OrderConfirmed  = "Confirmed"
	OrderInProgress = "In Progress"
	OrderDelivered  = "Delivered"
	OrderCancelled  = "Cancelled"
)

type MenuItem struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	BusinessUserID uint `gorm:"not null;index" json:"business_user_id"`

	Name            string         `gorm:"size:255;not null" json:"item_name" binding:"required"`
	Description     string         `gorm:"type:text" json:"item_description"`
	Category        string         `gorm:"size:100" json:"category"`
	Price           float64        `gorm:"type:numeric(10,2)" json:"price" binding:"min=0"`
	PreparationTime int            `json:"preparation_time"`
	IsVegetarian    YesNo          `gorm:"type:char(1);not null;default:'N'" json:"is_vegetarian"`
	IsAvailable     YesNo          `gorm:"type:char(1);not null;default:'Y'" json:"is_available"`
	ImageURL        string         `gorm:"size:500" json:"image_url"`
	Ingredients     datatypes.JSON `gorm:"type:json" json:"ingredients"`
	NutritionalInfo datatypes.JSON `gorm:"type:json" json:"nutritional_info"`
	IsFeatured      YesNo          `gorm:"type:char(1);not null;default:'N'" json:"is_featured"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CateringOrder struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	BusinessUserID uint `gorm:"not null;index" json:"business_user_id"`

	CustomerID uint     `gorm:"not null;index" json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	OrderNumber         string     `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	OrderDate           time.Time  `json:"order_date"`
	DeliveryDate        *time.Time `json:"delivery_date"`
	DeliveryAddress     string     `gorm:"type:text" json:"delivery_address"`
	GuestCount          int        `json:"guest_count"`
	SpecialInstructions string     `gorm:"type:text" json:"special_instructions"`

	TotalAmount     float64 `gorm:"type:numeric(10,2)" json:"total_amount"`
	DeliveryCharges float64 `gorm:"type:numeric(10,2);default:0" json:"delivery_charges"`
	TaxAmount       float64 `gorm:"type:numeric(10,2);default:0" json:"tax_amount"`
	DiscountAmount  float64 `gorm:"type:numeric(10,2);default:0" json:"discount_amount"`
	FinalAmount     float64 `gorm:"type:numeric(10,2)" json:"final_amount"`

	Status        string `gorm:"size:20;not null;default:'Pending';index" json:"order_status"`
	PaymentStatus string `gorm:"size:20;default:'Pending'" json:"payment_status"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`

	MenuItemID uint     `gorm:"not null;index" json:"item_id"`
	MenuItem   MenuItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Quantity            int     `gorm:"not null" json:"quantity"`
	UnitPrice           float64 `gorm:"type:numeric(10,2)" json:"unit_price"`
	TotalPrice          float64 `gorm:"type:numeric(10,2)" json:"total_price"`
	SpecialInstructions string  `gorm:"type:text" json:"special_instructions"`

	CreatedAt time.Time `json:"created_at"`
}

func (OrderItem) TableName() string { return "catering_order_items" }
