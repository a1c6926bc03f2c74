package models

// Organization represents an external organization the office corresponds with
type Organization struct {
	BaseModel
	Name        string `json:"name" gorm:"uniqueIndex;not null;size:200" validate:"required,min=1,max=200"`
	Industry    string `json:"industry" gorm:"size:100"`
	Phone       string `json:"phone" gorm:"size:50"`
	Email       string `json:"email" gorm:"size:255"`
	Address     string `json:"address" gorm:"type:text"`
	Description string `json:"description" gorm:"type:text"`

	// Relationships. Deleting an organization detaches its contacts and
	// letters rather than deleting them.
	Contacts []Contact `json:"contacts,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:SET NULL"`
	Letters  []Letter  `json:"letters,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for Organization
func (Organization) TableName() string {
	return "organizations"
}
