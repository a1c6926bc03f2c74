package models

import (
	"github.com/google/uuid"
)

// Letter records a generated piece of correspondence. The code is the
// canonical identity (COMPANY-TYPE-YEAR-SEQ); CodeLocalized is the same code
// with ASCII digits rendered in Persian and carries no independent meaning.
type Letter struct {
	BaseModel
	Code          string `json:"code" gorm:"uniqueIndex;not null;size:64" validate:"required"`
	CodeLocalized string `json:"code_localized" gorm:"uniqueIndex;not null;size:64" validate:"required"`
	TypeAbbr      string `json:"type_abbr" gorm:"not null;size:10" validate:"required"`
	TypeLabel     string `json:"type_label" gorm:"not null;size:50" validate:"required"`
	DateGregorian string `json:"date_gregorian" gorm:"not null;size:10" validate:"required"` // YYYY-MM-DD
	DateJalali    string `json:"date_jalali" gorm:"not null;size:10" validate:"required"`    // YYYY/MM/DD in Persian digits
	Subject       string `json:"subject" gorm:"not null;type:text" validate:"required"`
	Body          string `json:"body" gorm:"type:text"`
	FilePath      string `json:"file_path" gorm:"not null;type:text" validate:"required"`

	// Weak references, lookup only. The letter stays valid when they go away.
	OrganizationID *uuid.UUID `json:"organization_id,omitempty" gorm:"type:uuid;index"`
	ContactID      *uuid.UUID `json:"contact_id,omitempty" gorm:"type:uuid;index"`
	UserID         *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid;index"`

	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	Contact      *Contact      `json:"contact,omitempty" gorm:"foreignKey:ContactID;constraint:OnDelete:SET NULL"`
	User         *User         `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for Letter
func (Letter) TableName() string {
	return "letters"
}
