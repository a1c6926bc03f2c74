package service

import (
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// OrganizationServiceInterface defines the interface for organization service
type OrganizationServiceInterface interface {
	Create(req *CreateOrganizationRequest) (*OrganizationResponse, error)
	GetByID(id uuid.UUID) (*OrganizationResponse, error)
	List(search string) ([]OrganizationResponse, error)
	Update(id uuid.UUID, req *UpdateOrganizationRequest) (*OrganizationResponse, error)
	Delete(id uuid.UUID) error
}

// ContactServiceInterface defines the interface for contact service
type ContactServiceInterface interface {
	Create(req *CreateContactRequest) (*ContactResponse, error)
	GetByID(id uuid.UUID) (*ContactResponse, error)
	List(organizationID *uuid.UUID, search string) ([]ContactResponse, error)
	Update(id uuid.UUID, req *UpdateContactRequest) (*ContactResponse, error)
	Delete(id uuid.UUID) error
}

// LetterServiceInterface defines the interface for the letter workflow
type LetterServiceInterface interface {
	Generate(req *GenerateLetterRequest, userID *uuid.UUID) (*GenerateLetterResponse, error)
	List(organizationID, contactID *uuid.UUID, search string) ([]LetterResponse, error)
	GetByCode(code string) (*LetterResponse, error)
	ResolveFile(code string) (string, error)
	TypeLabels() []string
}

// UserServiceInterface defines the interface for user service
type UserServiceInterface interface {
	Create(req *CreateUserRequest) (*UserResponse, error)
	GetByID(id uuid.UUID) (*UserResponse, error)
	List() ([]UserResponse, error)
	Update(id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error)
	Delete(id uuid.UUID) error
}
