package models

type LocationMaster struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	City        string `gorm:"size:100;not null" json:"city"`
	District    string `gorm:"size:100;not null" json:"district"`
	State       string `gorm:"size:100;not null" json:"state"`
	Country     string `gorm:"size:100;not null" json:"country"`
	Description string `gorm:"size:255" json:"description"`
	IsActive    YesNo  `gorm:"type:char(1);not null;default:'Y'" json:"is_active"`

	Audit
}

type LocationActivePincode struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Pincode string `gorm:"size:10;uniqueIndex;not null" json:"pincode"`

	LocationID uint           `gorm:"not null;index" json:"location_id"`
	Location   LocationMaster `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	LocationStatus string `gorm:"size:10;not null" json:"location_status"`
	IsActive       YesNo  `gorm:"type:char(1);not null;default:'Y'" json:"is_active"`

	Audit
}

type LocationUserAddress struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID     uint                  `gorm:"not null;index" json:"user_id"`
	User       User                  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	LocationID uint                  `gorm:"not null;index" json:"location_id"`
	Location   LocationMaster        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	PincodeID  uint                  `gorm:"not null;index" json:"pincode_id"`
	PincodeRef LocationActivePincode `gorm:"foreignKey:PincodeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	AddressLine1 string `gorm:"size:255;uniqueIndex;not null" json:"address_line1"`
	AddressLine2 string `gorm:"size:255" json:"address_line2"`
	City         string `gorm:"size:100;not null" json:"city"`
	Pincode      string `gorm:"size:10;not null" json:"pincode"`
	Longitude    string `gorm:"size:20;not null" json:"longitude"`
	Latitude     string `gorm:"size:20;not null" json:"latitude"`
	MapURL       string `gorm:"size:255" json:"map_url"`
	AddressType  string `gorm:"size:50;not null" json:"address_type"`
	IsDefault    YesNo  `gorm:"type:char(1);not null;default:'N'" json:"is_default"`
	IsActive     YesNo  `gorm:"type:char(1);not null;default:'Y'" json:"is_active"`

	Audit
}
