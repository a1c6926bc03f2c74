package repository

import (
	"letter-office-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactRepository handles database operations for contacts
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create creates a new contact
func (r *ContactRepository) Create(contact *models.Contact) error {
	return r.db.Create(contact).Error
}

// GetByID retrieves a contact by ID with its organization preloaded
func (r *ContactRepository) GetByID(id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.Preload("Organization").First(&contact, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// List retrieves contacts ordered by last then first name, optionally scoped
// to an organization and filtered by a case-insensitive substring match over
// first name, last name, title and email.
func (r *ContactRepository) List(organizationID *uuid.UUID, search string) ([]models.Contact, error) {
	var contacts []models.Contact
	query := r.db.Preload("Organization").Order("last_name ASC, first_name ASC")
	if organizationID != nil {
		query = query.Where("organization_id = ?", *organizationID)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR title ILIKE ? OR email ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if err := query.Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// Update updates a contact
func (r *ContactRepository) Update(contact *models.Contact) error {
	return r.db.Save(contact).Error
}

// Delete deletes a contact. Letters referencing it keep their rows with a
// nulled contact reference.
func (r *ContactRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Contact{}, "id = ?", id).Error
}
