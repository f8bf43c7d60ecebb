package models

import (
	"time"

	"gorm.io/datatypes"
)

const StaffDoctor = "DOCTOR"

type Staff struct {
	ID             uint  `gorm:"primaryKey" json:"id"`
	BusinessUserID uint  `gorm:"not null;index" json:"business_user_id"`
	UserID         *uint `gorm:"index" json:"user_id"`

	StaffCode       string         `gorm:"size:50;uniqueIndex" json:"staff_code" binding:"required"`
	FullName        string         `gorm:"size:255;not null" json:"full_name" binding:"required"`
	Designation     string         `gorm:"size:100" json:"designation"`
	Department      string         `gorm:"size:100" json:"department"`
	Specialization  string         `gorm:"size:100" json:"specialization"`
	Phone           string         `gorm:"size:20" json:"phone"`
	Email           string         `gorm:"size:255" json:"email"`
	Qualification   string         `gorm:"size:100" json:"qualification"`
	ExperienceYears int            `json:"experience_years"`
	Salary          float64        `gorm:"type:numeric(10,2)" json:"salary"`
	JoiningDate     *time.Time     `json:"joining_date"`
	WorkSchedule    datatypes.JSON `gorm:"type:json" json:"work_schedule"`
	StaffType       string         `gorm:"size:20;not null;default:'GENERAL'" json:"staff_type" binding:"omitempty,oneof=DOCTOR NURSE TECHNICIAN RECEPTIONIST MANAGER CLEANER SECURITY COOK WAITER DRIVER GENERAL"`
	IsActive        YesNo          `gorm:"type:char(1);not null;default:'Y'" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Staff) TableName() string { return "staff" }
