package testutils

import (
	"fmt"
	"time"

	"letter-office-backend/internal/database/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// OrganizationFactory provides methods to create test Organization data
type OrganizationFactory struct{}

// NewOrganizationFactory creates a new OrganizationFactory
func NewOrganizationFactory() *OrganizationFactory {
	return &OrganizationFactory{}
}

// Create creates a test Organization with default values. The name is
// uniquified so repeated inserts do not trip the unique constraint.
func (f *OrganizationFactory) Create() *models.Organization {
	id := uuid.New()
	return &models.Organization{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:        "Test Organization " + id.String()[:8],
		Industry:    "Testing",
		Phone:       "+98-21-555-0100",
		Email:       "info@test-org.example",
		Address:     "1 Test Street",
		Description: "An organization created by the test factory",
	}
}

// WithName sets a custom name for the organization
func (f *OrganizationFactory) WithName(name string) *models.Organization {
	org := f.Create()
	org.Name = name
	return org
}

// ContactFactory provides methods to create test Contact data
type ContactFactory struct{}

// NewContactFactory creates a new ContactFactory
func NewContactFactory() *ContactFactory {
	return &ContactFactory{}
}

// Create creates a test Contact with default values
func (f *ContactFactory) Create() *models.Contact {
	return &models.Contact{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		FirstName: "Sara",
		LastName:  "Ahmadi",
		Title:     "Procurement Manager",
		Phone:     "+98-912-555-0101",
		Email:     "sara.ahmadi@test.example",
		Notes:     "Created by the test factory",
	}
}

// WithOrganization attaches the contact to an organization
func (f *ContactFactory) WithOrganization(organizationID uuid.UUID) *models.Contact {
	contact := f.Create()
	contact.OrganizationID = &organizationID
	return contact
}

// WithName sets a custom first and last name
func (f *ContactFactory) WithName(first, last string) *models.Contact {
	contact := f.Create()
	contact.FirstName = first
	contact.LastName = last
	return contact
}

// LetterFactory provides methods to create test Letter data
type LetterFactory struct {
	sequence int
}

// NewLetterFactory creates a new LetterFactory
func NewLetterFactory() *LetterFactory {
	return &LetterFactory{}
}

// Create creates a test Letter with a fresh code each call
func (f *LetterFactory) Create() *models.Letter {
	f.sequence++
	code := fmt.Sprintf("NGRR-GEN-1403-%03d", f.sequence)
	return &models.Letter{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Code:          code,
		CodeLocalized: code,
		TypeAbbr:      "GEN",
		TypeLabel:     "عمومی",
		DateGregorian: "2026-09-01",
		DateJalali:    "۱۴۰۵/۰۶/۱۰",
		Subject:       "Test letter " + code,
		Body:          "Body of the test letter",
		FilePath:      "/tmp/" + code + ".docx",
	}
}

// WithCode sets a custom canonical code
func (f *LetterFactory) WithCode(code string) *models.Letter {
	letter := f.Create()
	letter.Code = code
	letter.CodeLocalized = code
	return letter
}

// WithOrganization attaches the letter to an organization
func (f *LetterFactory) WithOrganization(organizationID uuid.UUID) *models.Letter {
	letter := f.Create()
	letter.OrganizationID = &organizationID
	return letter
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with a bcrypt hash of "test-password"
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	hash, _ := bcrypt.GenerateFromPassword([]byte("test-password"), bcrypt.MinCost)
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Username:     "user-" + id.String()[:8],
		PasswordHash: string(hash),
		Role:         models.UserRoleUser,
	}
}

// WithRole sets a custom role
func (f *UserFactory) WithRole(role models.UserRole) *models.User {
	user := f.Create()
	user.Role = role
	return user
}

// WithUsername sets a custom username
func (f *UserFactory) WithUsername(username string) *models.User {
	user := f.Create()
	user.Username = username
	return user
}
