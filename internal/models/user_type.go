package models

type UserType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	DefaultPage string `gorm:"size:255" json:"default_page"`
	IsMember    YesNo  `gorm:"type:char(1);not null;default:'Y'" json:"is_member"`
	IsActive    YesNo  `gorm:"type:char(1);not null;default:'Y'" json:"is_active"`

	Audit
}

type Page struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	DisplayText   string `gorm:"size:255;not null" json:"display_text"`
	NavigationURL string `gorm:"type:text" json:"navigation_url"`
	ParentID      *uint  `json:"parent_id"`
	IsInternal    YesNo  `gorm:"type:char(1);not null;default:'Y'" json:"is_internal"`
	IsActive      YesNo  `gorm:"type:char(1);not null;default:'Y'" json:"is_active"`

	Audit
}

type UserPermission struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserTypeID uint     `gorm:"not null;uniqueIndex:idx_permission_type_page" json:"user_type_id"`
	UserType   UserType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	PageID     uint     `gorm:"not null;uniqueIndex:idx_permission_type_page" json:"page_id"`
	Page       *Page    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"page,omitempty"`

	CanView   YesNo `gorm:"type:char(1);not null;default:'N'" json:"can_view"`
	CanCreate YesNo `gorm:"type:char(1);not null;default:'N'" json:"can_create"`
	CanUpdate YesNo `gorm:"type:char(1);not null;default:'N'" json:"can_update"`
	CanDelete YesNo `gorm:"type:char(1);not null;default:'N'" json:"can_delete"`
	IsActive  YesNo `gorm:"type:char(1);not null;default:'Y'" json:"is_active"`

	Audit
}
