package models

import "time"

// YesNo is the Y/N flag used by every is_* column.
type YesNo string

const (
	Yes YesNo = "Y"
	No  YesNo = "N"
)

func (f YesNo) Bool() bool { return f == Yes }

func (f YesNo) Valid() bool { return f == Yes || f == No }

func (f YesNo) Toggle() YesNo {
	if f == Yes {
		return No
	}
	return Yes
}

func FlagOf(b bool) YesNo {
	if b {
		return Yes
	}
	return No
}

// Audit holds the bookkeeping columns shared by the catalogue tables.
// Rows are never removed: deletion flips IsDeleted.
type Audit struct {
	AddedBy    *uint     `json:"added_by"`
	AddedOn    time.Time `gorm:"autoCreateTime" json:"added_on"`
	ModifiedBy *uint     `json:"modified_by"`
	ModifiedOn time.Time `gorm:"autoUpdateTime" json:"modified_on"`

	DeletedBy *uint      `json:"deleted_by,omitempty"`
	DeletedOn *time.Time `json:"deleted_on,omitempty"`
	IsDeleted YesNo      `gorm:"type:char(1);not null;default:'N';index" json:"is_deleted"`
}

// StampCreated fills the creator columns of a new row.
func (a *Audit) StampCreated(by *uint) {
	a.AddedBy = by
	a.ModifiedBy = by
	a.IsDeleted = No
}

func (a *Audit) StampModified(by *uint) {
	a.ModifiedBy = by
}
