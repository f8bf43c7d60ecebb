package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FullName     string  `gorm:"size:255;not null" json:"full_name"`
	Email        string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone        *string `gorm:"size:20;uniqueIndex" json:"phone"`
	AltPhone     string  `gorm:"size:20" json:"alt_phone"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`

	UserTypeID uint     `gorm:"not null;index" json:"user_type_id"`
	UserType   UserType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	ProfileImage    string     `gorm:"size:500" json:"profile_image"`
	BackgroundImage string     `gorm:"size:500" json:"background_image"`
	Bio             string     `gorm:"type:text" json:"bio"`
	Website         string     `gorm:"size:255" json:"website"`
	Gender          string     `gorm:"size:10" json:"gender"`
	DOB             *time.Time `json:"dob"`
	Occupation      string     `gorm:"size:100" json:"occupation"`
	CompanyName     string     `gorm:"size:255" json:"company_name"`
	Address         string     `gorm:"type:text" json:"address"`
	City            string     `gorm:"size:100" json:"city"`
	State           string     `gorm:"size:100" json:"state"`
	Country         string     `gorm:"size:100;default:'India'" json:"country"`
	PostalCode      string     `gorm:"size:20" json:"postal_code"`
	Language        string     `gorm:"size:50;default:'en'" json:"preferred_language"`

	IsVerified bool  `gorm:"not null;default:false" json:"is_verified"`
	IsActive   YesNo `gorm:"type:char(1);not null;default:'N'" json:"is_active"`

	WalletBalance float64 `gorm:"type:numeric(10,2);not null;default:0" json:"wallet_balance"`
	Currency      string  `gorm:"size:10;default:'INR'" json:"currency"`

	FailedLoginAttempts int        `gorm:"not null;default:0" json:"-"`
	AccountLockedUntil  *time.Time `json:"account_locked_until,omitempty"`
	LastLoginAt         *time.Time `json:"last_login_at"`
	LastLoginIP         string     `gorm:"size:45" json:"last_login_ip"`

	ResetTokenHash   string     `gorm:"size:255;index" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	Audit
}

// Locked reports whether the account is locked at the given instant.
func (u *User) Locked(now time.Time) bool {
	return u.AccountLockedUntil != nil && u.AccountLockedUntil.After(now)
}
