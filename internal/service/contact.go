package service

import (
	"errors"
	"fmt"

	"letter-office-backend/internal/database/models"
	apperrors "letter-office-backend/internal/errors"
	"letter-office-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactService handles business logic for contacts
type ContactService struct {
	repo      repository.ContactRepositoryInterface
	orgRepo   repository.OrganizationRepositoryInterface
	validator *validator.Validate
}

// NewContactService creates a new contact service
func NewContactService(repo repository.ContactRepositoryInterface, orgRepo repository.OrganizationRepositoryInterface, validator *validator.Validate) *ContactService {
	return &ContactService{
		repo:      repo,
		orgRepo:   orgRepo,
		validator: validator,
	}
}

// CreateContactRequest represents the request to create a contact
type CreateContactRequest struct {
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	FirstName      string     `json:"first_name" validate:"required,max=100"`
	LastName       string     `json:"last_name" validate:"required,max=100"`
	Title          string     `json:"title,omitempty" validate:"max=100"`
	Phone          string     `json:"phone,omitempty" validate:"max=50"`
	Email          string     `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Notes          string     `json:"notes,omitempty"`
}

// UpdateContactRequest represents the request to update a contact
type UpdateContactRequest struct {
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	FirstName      string     `json:"first_name" validate:"required,max=100"`
	LastName       string     `json:"last_name" validate:"required,max=100"`
	Title          string     `json:"title,omitempty" validate:"max=100"`
	Phone          string     `json:"phone,omitempty" validate:"max=50"`
	Email          string     `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Notes          string     `json:"notes,omitempty"`
}

// ContactResponse represents the response for contact operations
type ContactResponse struct {
	ID               uuid.UUID  `json:"id"`
	OrganizationID   *uuid.UUID `json:"organization_id,omitempty"`
	OrganizationName string     `json:"organization_name,omitempty"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	FullName         string     `json:"full_name"`
	Title            string     `json:"title"`
	Phone            string     `json:"phone"`
	Email            string     `json:"email"`
	Notes            string     `json:"notes"`
	CreatedAt        string     `json:"created_at"`
	UpdatedAt        string     `json:"updated_at"`
}

// Create creates a new contact
func (s *ContactService) Create(req *CreateContactRequest) (*ContactResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.checkOrganization(req.OrganizationID); err != nil {
		return nil, err
	}

	contact := &models.Contact{
		OrganizationID: req.OrganizationID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Title:          req.Title,
		Phone:          req.Phone,
		Email:          req.Email,
		Notes:          req.Notes,
	}

	if err := s.repo.Create(contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return s.toResponse(contact), nil
}

// GetByID retrieves a contact by ID
func (s *ContactService) GetByID(id uuid.UUID) (*ContactResponse, error) {
	contact, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return s.toResponse(contact), nil
}

// List retrieves contacts, optionally scoped to an organization and filtered
// by a search term
func (s *ContactService) List(organizationID *uuid.UUID, search string) ([]ContactResponse, error) {
	contacts, err := s.repo.List(organizationID, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	responses := make([]ContactResponse, len(contacts))
	for i, contact := range contacts {
		responses[i] = *s.toResponse(&contact)
	}
	return responses, nil
}

// Update updates a contact
func (s *ContactService) Update(id uuid.UUID, req *UpdateContactRequest) (*ContactResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	contact, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	if err := s.checkOrganization(req.OrganizationID); err != nil {
		return nil, err
	}

	contact.OrganizationID = req.OrganizationID
	contact.FirstName = req.FirstName
	contact.LastName = req.LastName
	contact.Title = req.Title
	contact.Phone = req.Phone
	contact.Email = req.Email
	contact.Notes = req.Notes

	if err := s.repo.Update(contact); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	return s.toResponse(contact), nil
}

// Delete deletes a contact
func (s *ContactService) Delete(id uuid.UUID) error {
	_, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrContactNotFound
		}
		return fmt.Errorf("failed to get contact: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	return nil
}

// checkOrganization verifies a referenced organization exists
func (s *ContactService) checkOrganization(id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := s.orgRepo.GetByID(*id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to check organization: %w", err)
	}
	return nil
}

// toResponse converts a contact model to response
func (s *ContactService) toResponse(contact *models.Contact) *ContactResponse {
	resp := &ContactResponse{
		ID:             contact.ID,
		OrganizationID: contact.OrganizationID,
		FirstName:      contact.FirstName,
		LastName:       contact.LastName,
		FullName:       contact.FullName(),
		Title:          contact.Title,
		Phone:          contact.Phone,
		Email:          contact.Email,
		Notes:          contact.Notes,
		CreatedAt:      contact.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      contact.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if contact.Organization != nil {
		resp.OrganizationName = contact.Organization.Name
	}
	return resp
}
