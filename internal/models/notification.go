package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID         uint  `gorm:"not null;index" json:"user_id"`
	BusinessUserID *uint `gorm:"index" json:"business_user_id"`

	Title    string `gorm:"size:255;not null" json:"title"`
	Message  string `gorm:"type:text;not null" json:"message"`
	Type     string `gorm:"size:20;not null;index" json:"notification_type"`
	Priority string `gorm:"size:10;not null;default:'MEDIUM'" json:"priority"`

	IsRead YesNo      `gorm:"type:char(1);not null;default:'N';index" json:"is_read"`
	ReadAt *time.Time `json:"read_at"`

	ActionURL  string         `gorm:"size:500" json:"action_url"`
	ActionData datatypes.JSON `gorm:"type:json" json:"action_data"`
	ExpiresAt  *time.Time     `json:"expires_at"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
