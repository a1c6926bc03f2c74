package repository

import (
	"letter-office-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LetterRepository handles database operations for letters
type LetterRepository struct {
	db *gorm.DB
}

// NewLetterRepository creates a new letter repository
func NewLetterRepository(db *gorm.DB) *LetterRepository {
	return &LetterRepository{db: db}
}

// Create creates a new letter record
func (r *LetterRepository) Create(letter *models.Letter) error {
	return r.db.Create(letter).Error
}

// GetByCode retrieves a letter by its canonical code
func (r *LetterRepository) GetByCode(code string) (*models.Letter, error) {
	var letter models.Letter
	err := r.db.Preload("Organization").Preload("Contact").First(&letter, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &letter, nil
}

// List retrieves letters newest first, optionally scoped to an organization
// or contact and filtered by a case-insensitive substring match over both
// code forms, subject and type label.
func (r *LetterRepository) List(organizationID, contactID *uuid.UUID, search string) ([]models.Letter, error) {
	var letters []models.Letter
	query := r.db.Preload("Organization").Preload("Contact").
		Order("date_gregorian DESC, created_at DESC")
	if organizationID != nil {
		query = query.Where("organization_id = ?", *organizationID)
	}
	if contactID != nil {
		query = query.Where("contact_id = ?", *contactID)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"code ILIKE ? OR code_localized ILIKE ? OR subject ILIKE ? OR type_label ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if err := query.Find(&letters).Error; err != nil {
		return nil, err
	}
	return letters, nil
}

// CodesByPrefix returns the canonical codes starting with prefix. The code
// allocator derives the next sequence number from them.
func (r *LetterRepository) CodesByPrefix(prefix string) ([]string, error) {
	var codes []string
	err := r.db.Model(&models.Letter{}).
		Where("code LIKE ?", prefix+"%").
		Pluck("code", &codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}
