package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	BookingConfirmed  = "Confirmed"
	BookingCancelled  = "Cancelled"
	BookingCompleted  = "Completed"
	BookingNoShow     = "No-show"
	BookingCheckedIn  = "Checked-in"
	BookingCheckedOut = "Checked-out"

	PaymentPending  = "Pending"
	PaymentPaid     = "Paid"
	PaymentPartial  = "Partial"
	PaymentRefunded = "Refunded"
)

type Room struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	BusinessUserID uint `gorm:"not null;uniqueIndex:idx_room_business_number" json:"business_user_id"`

	RoomNumber    string         `gorm:"size:50;not null;uniqueIndex:idx_room_business_number" json:"room_number" binding:"required"`
	RoomType      string         `gorm:"size:20" json:"room_type" binding:"omitempty,oneof=Single Double Triple Dormitory Suite Deluxe"`
	Capacity      int            `gorm:"not null" json:"capacity" binding:"required,min=1"`
	PricePerNight float64        `gorm:"type:numeric(10,2)" json:"price_per_night" binding:"min=0"`
	Amenities     datatypes.JSON `gorm:"type:json" json:"amenities"`
	RoomStatus    string         `gorm:"size:20;default:'Available'" json:"room_status" binding:"omitempty,oneof=Available Occupied Maintenance Reserved Cleaning"`
	FloorNumber   int            `json:"floor_number"`
	RoomFeatures  datatypes.JSON `gorm:"type:json" json:"room_features"`
	IsActive      YesNo          `gorm:"type:char(1);not null;default:'Y'" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Customer is shared by the hostel, garage and catering verticals.
type Customer struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	BusinessUserID uint `gorm:"not null;index" json:"business_user_id"`

	FullName             string     `gorm:"size:255;not null" json:"full_name" binding:"required"`
	Email                string     `gorm:"size:255" json:"email" binding:"omitempty,email"`
	Phone                string     `gorm:"size:20;not null" json:"phone" binding:"required"`
	IDProofType          string     `gorm:"size:50" json:"id_proof_type"`
	IDProofNumber        string     `gorm:"size:100" json:"id_proof_number"`
	Address              string     `gorm:"type:text" json:"address"`
	EmergencyContact     string     `gorm:"size:20" json:"emergency_contact"`
	EmergencyContactName string     `gorm:"size:255" json:"emergency_contact_name"`
	CustomerType         string     `gorm:"size:20;default:'Regular'" json:"customer_type" binding:"omitempty,oneof=Regular VIP Student Corporate"`
	TotalBookings        int        `gorm:"default:0" json:"total_bookings"`
	TotalSpent           float64    `gorm:"type:numeric(10,2);default:0" json:"total_spent"`
	LastVisitDate        *time.Time `json:"last_visit_date"`
	IsActive             YesNo      `gorm:"type:char(1);not null;default:'Y'" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Booking struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	BusinessUserID uint `gorm:"not null;index" json:"business_user_id"`

	CustomerID uint     `gorm:"not null;index" json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	RoomID     uint     `gorm:"not null;index" json:"room_id"`
	Room       Room     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	BookingNumber string     `gorm:"size:50;uniqueIndex;not null" json:"booking_number"`
	CheckInDate   time.Time  `gorm:"not null;index" json:"check_in_date"`
	CheckOutDate  time.Time  `gorm:"not null;index" json:"check_out_date"`
	CheckInTime   *time.Time `json:"check_in_time"`
	CheckOutTime  *time.Time `json:"check_out_time"`
	TotalNights   int        `json:"total_nights"`
	TotalAmount   float64    `gorm:"type:numeric(10,2)" json:"total_amount"`
	AdvanceAmount float64    `gorm:"type:numeric(10,2);default:0" json:"advance_amount"`
	PaymentStatus string     `gorm:"size:20;default:'Pending'" json:"payment_status"`
	BookingStatus string     `gorm:"size:20;default:'Confirmed';index" json:"booking_status"`

	SpecialRequests    string     `gorm:"type:text" json:"special_requests"`
	CancellationReason string     `gorm:"type:text" json:"cancellation_reason"`
	CancelledBy        *uint      `json:"cancelled_by"`
	CancelledAt        *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
