package models

import (
	"strings"

	"github.com/google/uuid"
)

// Contact represents a person, optionally attached to an organization
type Contact struct {
	BaseModel
	OrganizationID *uuid.UUID `json:"organization_id,omitempty" gorm:"type:uuid;index"`
	FirstName      string     `json:"first_name" gorm:"not null;size:100" validate:"required,max=100"`
	LastName       string     `json:"last_name" gorm:"not null;size:100" validate:"required,max=100"`
	Title          string     `json:"title" gorm:"size:100"`
	Phone          string     `json:"phone" gorm:"size:50"`
	Email          string     `json:"email" gorm:"size:255"`
	Notes          string     `json:"notes" gorm:"type:text"`

	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}

// FullName returns the display name used in letter substitutions
func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// TableName returns the table name for Contact
func (Contact) TableName() string {
	return "contacts"
}
