package repository

import (
	"letter-office-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrganizationRepository handles database operations for organizations
type OrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create creates a new organization
func (r *OrganizationRepository) Create(org *models.Organization) error {
	return r.db.Create(org).Error
}

// GetByID retrieves an organization by ID
func (r *OrganizationRepository) GetByID(id uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	err := r.db.First(&org, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// GetByName retrieves an organization by name
func (r *OrganizationRepository) GetByName(name string) (*models.Organization, error) {
	var org models.Organization
	err := r.db.First(&org, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// List retrieves organizations ordered by name, optionally filtered by a
// case-insensitive substring match over name and industry.
func (r *OrganizationRepository) List(search string) ([]models.Organization, error) {
	var orgs []models.Organization
	query := r.db.Order("name ASC")
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR industry ILIKE ?", pattern, pattern)
	}
	if err := query.Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

// Update updates an organization
func (r *OrganizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// Delete deletes an organization. Dependent contacts and letters keep their
// rows with a nulled organization reference (DB referential action).
func (r *OrganizationRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Organization{}, "id = ?", id).Error
}

// Count returns the number of organizations
func (r *OrganizationRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Organization{}).Count(&total).Error
	return total, err
}
