package repository

import (
	"letter-office-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// OrganizationRepositoryInterface defines the interface for organization repository operations
type OrganizationRepositoryInterface interface {
	Create(org *models.Organization) error
	GetByID(id uuid.UUID) (*models.Organization, error)
	GetByName(name string) (*models.Organization, error)
	List(search string) ([]models.Organization, error)
	Update(org *models.Organization) error
	Delete(id uuid.UUID) error
	Count() (int64, error)
}

// ContactRepositoryInterface defines the interface for contact repository operations
type ContactRepositoryInterface interface {
	Create(contact *models.Contact) error
	GetByID(id uuid.UUID) (*models.Contact, error)
	List(organizationID *uuid.UUID, search string) ([]models.Contact, error)
	Update(contact *models.Contact) error
	Delete(id uuid.UUID) error
}

// LetterRepositoryInterface defines the interface for letter repository operations
type LetterRepositoryInterface interface {
	Create(letter *models.Letter) error
	GetByCode(code string) (*models.Letter, error)
	List(organizationID, contactID *uuid.UUID, search string) ([]models.Letter, error)
	CodesByPrefix(prefix string) ([]string, error)
}

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	List() ([]models.User, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) error
	Count() (int64, error)
}
