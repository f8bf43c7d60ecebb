package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	EventLoginSuccess      = "LOGIN_SUCCESS"
	EventLoginFailed       = "LOGIN_FAILED"
	EventLoginAttempt      = "LOGIN_ATTEMPT"
	EventLogout            = "LOGOUT"
	EventPasswordChange    = "PASSWORD_CHANGE"
	EventAccountLocked     = "ACCOUNT_LOCKED"
	EventSessionCreated    = "SESSION_CREATED"
	EventSessionDestroyed  = "SESSION_DESTROYED"
	EventRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	EventAPIAccess         = "API_ACCESS"
	EventSuspicious        = "SUSPICIOUS_ACTIVITY"

	SeverityLow      = "LOW"
	SeverityMedium   = "MEDIUM"
	SeverityHigh     = "HIGH"
	SeverityCritical = "CRITICAL"

	SessionActive  = "ACTIVE"
	SessionExpired = "EXPIRED"
	SessionRevoked = "REVOKED"

	BlockIP     = "IP"
	BlockUser   = "USER"
	BlockDevice = "DEVICE"

	BlockActive        = "ACTIVE"
	BlockExpired       = "EXPIRED"
	BlockManualUnblock = "MANUAL_UNBLOCK"
)

type SecurityEvent struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EventType   string `gorm:"size:40;not null;index" json:"event_type"`
	Severity    string `gorm:"size:10;not null;default:'MEDIUM'" json:"severity"`
	Description string `gorm:"type:text" json:"description"`

	UserID            *uint  `gorm:"index" json:"user_id"`
	UserEmail         string `gorm:"size:255;index" json:"user_email"`
	IPAddress         string `gorm:"size:45;not null;index" json:"ip_address"`
	UserAgent         string `gorm:"type:text" json:"user_agent"`
	DeviceFingerprint string `gorm:"size:255;index" json:"device_fingerprint"`
	SessionID         string `gorm:"size:255;index" json:"session_id"`
	RequestID         string `gorm:"size:255;index" json:"request_id"`

	SuspiciousScore int            `gorm:"not null;default:0" json:"suspicious_score"`
	RiskFactors     datatypes.JSON `gorm:"type:json" json:"risk_factors"`
	Metadata        datatypes.JSON `gorm:"type:json" json:"event_metadata"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

type SecuritySession struct {
	// sha256 of the access token
	ID string `gorm:"primaryKey;size:64" json:"session_id"`

	UserID    uint   `gorm:"not null;index" json:"user_id"`
	UserEmail string `gorm:"size:255;not null;index" json:"user_email"`
	TokenType string `gorm:"size:20;default:'bearer'" json:"token_type"`

	ExpiresAt         time.Time      `gorm:"not null;index" json:"expires_at"`
	DeviceFingerprint string         `gorm:"size:255;not null;index" json:"device_fingerprint"`
	DeviceInfo        string         `gorm:"type:text" json:"device_info"`
	IPAddress         string         `gorm:"size:45;not null;index" json:"ip_address"`
	Status            string         `gorm:"size:20;not null;default:'ACTIVE';index" json:"session_status"`
	SuspiciousScore   int            `gorm:"not null;default:0" json:"suspicious_score"`
	RiskFactors       datatypes.JSON `gorm:"type:json" json:"risk_factors"`
	CreatedFrom       string         `gorm:"size:100" json:"created_from"`

	LastActivity  time.Time  `json:"last_activity"`
	ActivityCount int        `gorm:"not null;default:0" json:"activity_count"`
	RevokedAt     *time.Time `json:"revoked_at"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SecurityBlock struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BlockType   string `gorm:"size:10;not null;index" json:"block_type"`
	BlockReason string `gorm:"size:40;not null" json:"block_reason"`
	Status      string `gorm:"size:20;not null;default:'ACTIVE'" json:"block_status"`
	TargetValue string `gorm:"size:255;not null;index" json:"target_value"`

	UserID      *uint          `gorm:"index" json:"user_id"`
	UserEmail   string         `gorm:"size:255" json:"user_email"`
	Description string         `gorm:"type:text" json:"description"`
	Evidence    datatypes.JSON `gorm:"type:json" json:"evidence"`
	RiskScore   int            `gorm:"default:0" json:"risk_score"`

	DurationHours   int        `gorm:"default:24" json:"block_duration_hours"`
	ExpiresAt       time.Time  `gorm:"not null;index" json:"expires_at"`
	CreatedBySystem bool       `gorm:"default:true" json:"created_by_system"`
	CreatedByUserID *uint      `json:"created_by_user_id"`
	UnblockedAt     *time.Time `json:"unblocked_at"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
