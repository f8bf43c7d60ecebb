package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID         *uint  `gorm:"index" json:"user_id"`
	BusinessUserID *uint  `gorm:"index" json:"business_user_id"`
	ActionType     string `gorm:"size:20;not null;index" json:"action_type"`

	Table     string         `gorm:"column:table_name;size:100;index" json:"table_name"`
	RecordID  *uint          `json:"record_id"`
	NewValues datatypes.JSON `gorm:"type:json" json:"new_values"`

	IPAddress string `gorm:"size:45" json:"ip_address"`
	UserAgent string `gorm:"type:text" json:"user_agent"`
	SessionID string `gorm:"size:255" json:"session_id"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
