package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	GarageScheduled  = "Scheduled"
	GarageInProgress = "In Progress"
	GarageCompleted  = "Completed"
	GarageCancelled  = "Cancelled"
)

type Vehicle struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	BusinessUserID uint `gorm:"not null;index" json:"business_user_id"`
	CustomerID     uint `gorm:"not null;index" json:"customer_id" binding:"required"`

	VehicleNumber    string     `gorm:"size:20;not null;index" json:"vehicle_number" binding:"required"`
	VehicleType      string     `gorm:"size:50" json:"vehicle_type"`
	Make             string     `gorm:"size:100" json:"make"`
	Model            string     `gorm:"size:100" json:"model"`
	Year             int        `json:"year"`
	Color            string     `gorm:"size:50" json:"color"`
	EngineNumber     string     `gorm:"size:100" json:"engine_number"`
	ChassisNumber    string     `gorm:"size:100" json:"chassis_number"`
	FuelType         string     `gorm:"size:10" json:"fuel_type" binding:"omitempty,oneof=Petrol Diesel Electric Hybrid CNG"`
	RegistrationDate *time.Time `json:"registration_date"`
	InsuranceExpiry  *time.Time `json:"insurance_expiry"`
	FitnessExpiry    *time.Time `json:"fitness_expiry"`
	Condition        string     `gorm:"type:text" json:"vehicle_condition"`
	IsActive         YesNo      `gorm:"type:char(1);not null;default:'Y'" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GarageService struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	BusinessUserID uint `gorm:"not null;index" json:"business_user_id"`

	Name            string         `gorm:"size:255;not null" json:"service_name" binding:"required"`
	Description     string         `gorm:"type:text" json:"service_description"`
	Category        string         `gorm:"size:100" json:"service_category"`
	Price           float64        `gorm:"type:numeric(10,2)" json:"price" binding:"min=0"`
	DurationMinutes int            `json:"duration_minutes" binding:"min=0"`
	Features        datatypes.JSON `gorm:"type:json" json:"service_features"`
	IsActive        YesNo          `gorm:"type:char(1);not null;default:'Y'" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GarageBooking struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	BusinessUserID uint `gorm:"not null;index" json:"business_user_id"`

	CustomerID   uint          `gorm:"not null;index" json:"customer_id"`
	Customer     Customer      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	VehicleID    uint          `gorm:"not null;index" json:"vehicle_id"`
	Vehicle      Vehicle       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	ServiceID    uint          `gorm:"not null;index" json:"service_id"`
	Service      GarageService `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	TechnicianID *uint         `gorm:"index" json:"technician_id"`

	BookingNumber     string    `gorm:"size:50;uniqueIndex;not null" json:"booking_number"`
	BookingTime       time.Time `gorm:"not null;index" json:"booking_time"`
	EstimatedDuration int       `json:"estimated_duration"`
	TotalAmount       float64   `gorm:"type:numeric(10,2)" json:"total_amount"`
	Status            string    `gorm:"size:20;not null;default:'Scheduled';index" json:"status"`
	PaymentStatus     string    `gorm:"size:20;default:'Pending'" json:"payment_status"`
	Notes             string    `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
