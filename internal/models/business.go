package models

import (
	"time"

	"gorm.io/datatypes"
)

type BusinessType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Code        string `gorm:"size:100" json:"code"`
	Status      string `gorm:"size:50" json:"status"`
	Color       string `gorm:"size:20" json:"color"`

	Features datatypes.JSON `gorm:"type:json" json:"features"`

	Media string `gorm:"size:500" json:"media"`
	Icon  string `gorm:"size:500" json:"icon"`

	IsActive YesNo `gorm:"type:char(1);not null;default:'Y'" json:"is_active"`

	Audit
}

type BusinessCategory struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessTypeID uint         `gorm:"not null;index" json:"business_type_id"`
	BusinessType   BusinessType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	ShortName   string `gorm:"size:300;not null" json:"short_name"`
	Code        string `gorm:"size:100" json:"code"`
	Description string `gorm:"type:text" json:"description"`
	Media       string `gorm:"size:500" json:"media"`
	Icon        string `gorm:"size:500" json:"icon"`

	IsActive YesNo `gorm:"type:char(1);not null;default:'Y'" json:"is_active"`

	Audit
}

// ===============================
// Business user (a registered business)
// ===============================

const (
	PlanFree       = "FREE"
	PlanBasic      = "BASIC"
	PlanPremium    = "PREMIUM"
	PlanEnterprise = "ENTERPRISE"

	SubscriptionActive    = "Active"
	SubscriptionInactive  = "Inactive"
	SubscriptionExpired   = "Expired"
	SubscriptionSuspended = "Suspended"
)

type BusinessUser struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID         uint         `gorm:"not null;index" json:"user_id"`
	User           User         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	BusinessTypeID uint         `gorm:"not null;index" json:"business_type_id"`
	BusinessType   BusinessType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	BusinessName string `gorm:"size:255;not null" json:"business_name"`
	Description  string `gorm:"type:text" json:"business_description"`
	Logo         string `gorm:"size:500" json:"business_logo"`
	Banner       string `gorm:"size:500" json:"business_banner"`
	Address      string `gorm:"type:text" json:"business_address"`
	Phone        string `gorm:"size:20" json:"business_phone"`
	Email        string `gorm:"size:255" json:"business_email"`
	Website      string `gorm:"size:255" json:"business_website"`
	GSTNumber    string `gorm:"size:20" json:"gst_number"`
	PANNumber    string `gorm:"size:20" json:"pan_number"`
	License      string `gorm:"size:100" json:"business_license"`

	SubscriptionPlan   string     `gorm:"size:20;default:'FREE'" json:"subscription_plan"`
	SubscriptionStatus string     `gorm:"size:20;default:'Active'" json:"subscription_status"`
	SubscriptionStart  *time.Time `json:"subscription_start_date"`
	SubscriptionEnd    *time.Time `json:"subscription_end_date"`
	MonthlyLimit       int        `gorm:"default:1000" json:"monthly_limit"`
	CurrentMonthUsage  int        `gorm:"default:0" json:"current_month_usage"`

	IsVerified   YesNo   `gorm:"type:char(1);not null;default:'N'" json:"is_verified"`
	IsActive     YesNo   `gorm:"type:char(1);not null;default:'Y'" json:"is_active"`
	IsFeatured   YesNo   `gorm:"type:char(1);not null;default:'N'" json:"is_featured"`
	Rating       float64 `gorm:"type:numeric(3,2);default:0" json:"rating"`
	TotalReviews int     `gorm:"default:0" json:"total_reviews"`

	Audit
}
