package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TxPending   = "PENDING"
	TxSuccess   = "SUCCESS"
	TxFailed    = "FAILED"
	TxCancelled = "CANCELLED"
	TxRefunded  = "REFUNDED"
)

type PaymentTransaction struct {
	ID             uint  `gorm:"primaryKey" json:"id"`
	BusinessUserID uint  `gorm:"not null;index" json:"business_user_id"`
	CustomerID     *uint `gorm:"index" json:"customer_id"`

	ReferenceType string `gorm:"size:30;not null;index:idx_payment_reference" json:"reference_type"`
	ReferenceID   uint   `gorm:"not null;index:idx_payment_reference" json:"reference_id"`

	TransactionType string  `gorm:"size:20;not null;default:'PAYMENT'" json:"transaction_type"`
	PaymentMethod   string  `gorm:"size:20" json:"payment_method"`
	Amount          float64 `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency        string  `gorm:"size:10;default:'INR'" json:"currency"`
	Status          string  `gorm:"size:20;not null;default:'PENDING';index" json:"transaction_status"`

	GatewayPreferenceID  string         `gorm:"size:255;index" json:"gateway_preference_id"`
	GatewayTransactionID string         `gorm:"size:255;index" json:"gateway_transaction_id"`
	GatewayResponse      datatypes.JSON `gorm:"type:json" json:"gateway_response"`
	Description          string         `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
