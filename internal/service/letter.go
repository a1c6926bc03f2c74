package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"letter-office-backend/internal/database/models"
	"letter-office-backend/internal/docgen"
	apperrors "letter-office-backend/internal/errors"
	"letter-office-backend/internal/logger"
	"letter-office-backend/internal/repository"
	"letter-office-backend/internal/settings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	ptime "github.com/yaa110/go-persian-calendar"
	"gorm.io/gorm"
)

// SettingsProvider yields the current office settings snapshot.
type SettingsProvider interface {
	Get() settings.Settings
}

// LetterService orchestrates the letter generation workflow: allocate a
// code, materialize the document, persist the record.
type LetterService struct {
	repo             repository.LetterRepositoryInterface
	orgRepo          repository.OrganizationRepositoryInterface
	contactRepo      repository.ContactRepositoryInterface
	settings         SettingsProvider
	validator        *validator.Validate
	requireRecipient bool
	log              *logger.Logger
}

// NewLetterService creates a new letter service. requireRecipient controls
// whether a letter must reference at least one of organization or contact.
func NewLetterService(
	repo repository.LetterRepositoryInterface,
	orgRepo repository.OrganizationRepositoryInterface,
	contactRepo repository.ContactRepositoryInterface,
	settingsProvider SettingsProvider,
	validator *validator.Validate,
	requireRecipient bool,
) *LetterService {
	return &LetterService{
		repo:             repo,
		orgRepo:          orgRepo,
		contactRepo:      contactRepo,
		settings:         settingsProvider,
		validator:        validator,
		requireRecipient: requireRecipient,
		log:              logger.New(),
	}
}

// GenerateLetterRequest represents the request to generate a letter
type GenerateLetterRequest struct {
	Subject        string     `json:"subject" validate:"required"`
	Body           string     `json:"body" validate:"required"`
	Type           string     `json:"type"` // abbreviation or display label; unknown falls back to GEN
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	ContactID      *uuid.UUID `json:"contact_id,omitempty"`
}

// LetterResponse represents a persisted letter
type LetterResponse struct {
	ID               uuid.UUID  `json:"id"`
	Code             string     `json:"code"`
	CodeLocalized    string     `json:"code_localized"`
	TypeAbbr         string     `json:"type_abbr"`
	TypeLabel        string     `json:"type_label"`
	DateGregorian    string     `json:"date_gregorian"`
	DateJalali       string     `json:"date_jalali"`
	Subject          string     `json:"subject"`
	Body             string     `json:"body"`
	OrganizationID   *uuid.UUID `json:"organization_id,omitempty"`
	OrganizationName string     `json:"organization_name"`
	ContactID        *uuid.UUID `json:"contact_id,omitempty"`
	ContactName      string     `json:"contact_name"`
	FilePath         string     `json:"file_path"`
	CreatedAt        string     `json:"created_at"`
}

// GenerateLetterResponse reports the outcome of a generation run. Warning is
// set when the document was written but the database record could not be
// inserted; the file on disk is authoritative in that case.
type GenerateLetterResponse struct {
	Letter   *LetterResponse `json:"letter,omitempty"`
	FilePath string          `json:"file_path"`
	Warning  string          `json:"warning,omitempty"`
}

// Generate validates the request, allocates the next letter code, fills the
// letterhead template and records the letter. See the partial-failure notes
// on GenerateLetterResponse.
func (s *LetterService) Generate(req *GenerateLetterRequest, userID *uuid.UUID) (*GenerateLetterResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if s.requireRecipient && req.OrganizationID == nil && req.ContactID == nil {
		return nil, apperrors.ErrRecipientRequired
	}

	cfg := s.settings.Get()
	if cfg.TemplatePath == "" {
		return nil, apperrors.ErrTemplateNotConfigured
	}
	if _, err := os.Stat(cfg.TemplatePath); err != nil {
		return nil, apperrors.NewTemplateMissingError(cfg.TemplatePath)
	}

	orgName, err := s.resolveOrganizationName(req.OrganizationID)
	if err != nil {
		return nil, err
	}
	contactName, err := s.resolveContactName(req.ContactID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	jalaliNow := ptime.New(now)
	dateGregorian := now.Format("2006-01-02")
	dateJalali := fmt.Sprintf("%04d/%02d/%02d", jalaliNow.Year(), int(jalaliNow.Month()), jalaliNow.Day())
	dateJalaliLocalized := ToPersianDigits(dateJalali)

	typeAbbr, typeLabel := ResolveLetterType(req.Type)
	prefix := CodePrefix(cfg.CompanyAbbr, typeAbbr, jalaliNow.Year())
	existing, err := s.repo.CodesByPrefix(prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to scan existing letter codes: %w", err)
	}
	code := FormatCode(prefix, NextSequence(prefix, existing))
	codeLocalized := ToPersianDigits(code)

	outputDir := cfg.OutputDir
	if outputDir == "" {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, fmt.Errorf("no output directory configured: %w", wdErr)
		}
		s.log.WithField("output_dir", wd).
			Warn("output directory not configured, falling back to the working directory")
		outputDir = wd
	}
	filePath := filepath.Join(outputDir, docgen.FileName(code, req.Subject))

	replacements := map[string]string{
		docgen.TokenDate:             dateJalaliLocalized,
		docgen.TokenCode:             codeLocalized,
		docgen.TokenOrganizationName: orgName,
		docgen.TokenContactName:      contactName,
		docgen.TokenSubject:          req.Subject,
		docgen.TokenBody:             req.Body,
		docgen.TokenCompanyName:      cfg.CompanyName,
	}

	if err := docgen.Materialize(cfg.TemplatePath, filePath, replacements); err != nil {
		return nil, err
	}

	letter := &models.Letter{
		Code:           code,
		CodeLocalized:  codeLocalized,
		TypeAbbr:       typeAbbr,
		TypeLabel:      typeLabel,
		DateGregorian:  dateGregorian,
		DateJalali:     dateJalaliLocalized,
		Subject:        req.Subject,
		Body:           req.Body,
		FilePath:       filePath,
		OrganizationID: req.OrganizationID,
		ContactID:      req.ContactID,
		UserID:         userID,
	}

	if err := s.repo.Create(letter); err != nil {
		// The document is already on disk and is kept. Report the
		// persistence failure as a warning instead of undoing the file.
		recordErr := fmt.Errorf("failed to record letter: %w", err)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			recordErr = apperrors.ErrLetterCodeExists
		}
		s.log.WithField("code", code).WithError(recordErr).
			Warn("letter file generated but database insert failed")
		return &GenerateLetterResponse{
			FilePath: filePath,
			Warning:  recordErr.Error(),
		}, nil
	}

	resp := s.toResponse(letter)
	resp.OrganizationName = orgName
	resp.ContactName = contactName
	return &GenerateLetterResponse{Letter: resp, FilePath: filePath}, nil
}

// List retrieves letters, optionally scoped and filtered
func (s *LetterService) List(organizationID, contactID *uuid.UUID, search string) ([]LetterResponse, error) {
	letters, err := s.repo.List(organizationID, contactID, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list letters: %w", err)
	}

	responses := make([]LetterResponse, len(letters))
	for i, letter := range letters {
		responses[i] = *s.toResponse(&letter)
	}
	return responses, nil
}

// GetByCode retrieves a letter by its canonical code
func (s *LetterService) GetByCode(code string) (*LetterResponse, error) {
	letter, err := s.repo.GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLetterNotFound
		}
		return nil, fmt.Errorf("failed to get letter: %w", err)
	}
	return s.toResponse(letter), nil
}

// ResolveFile returns the on-disk path of a letter's document, verifying the
// file still exists. A missing file reports the attempted path.
func (s *LetterService) ResolveFile(code string) (string, error) {
	letter, err := s.repo.GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrLetterNotFound
		}
		return "", fmt.Errorf("failed to get letter: %w", err)
	}
	if _, err := os.Stat(letter.FilePath); err != nil {
		return "", apperrors.NewLetterFileMissingError(letter.FilePath)
	}
	return letter.FilePath, nil
}

// TypeLabels returns the display labels of the known letter types
func (s *LetterService) TypeLabels() []string {
	return LetterTypeLabels()
}

func (s *LetterService) resolveOrganizationName(id *uuid.UUID) (string, error) {
	if id == nil {
		return "---", nil
	}
	org, err := s.orgRepo.GetByID(*id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrOrganizationNotFound
		}
		return "", fmt.Errorf("failed to resolve organization: %w", err)
	}
	return org.Name, nil
}

func (s *LetterService) resolveContactName(id *uuid.UUID) (string, error) {
	if id == nil {
		return "---", nil
	}
	contact, err := s.contactRepo.GetByID(*id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrContactNotFound
		}
		return "", fmt.Errorf("failed to resolve contact: %w", err)
	}
	return contact.FullName(), nil
}

// toResponse converts a letter model to response
func (s *LetterService) toResponse(letter *models.Letter) *LetterResponse {
	resp := &LetterResponse{
		ID:               letter.ID,
		Code:             letter.Code,
		CodeLocalized:    letter.CodeLocalized,
		TypeAbbr:         letter.TypeAbbr,
		TypeLabel:        letter.TypeLabel,
		DateGregorian:    letter.DateGregorian,
		DateJalali:       letter.DateJalali,
		Subject:          letter.Subject,
		Body:             letter.Body,
		OrganizationID:   letter.OrganizationID,
		OrganizationName: "---",
		ContactID:        letter.ContactID,
		ContactName:      "---",
		FilePath:         letter.FilePath,
		CreatedAt:        letter.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if letter.Organization != nil {
		resp.OrganizationName = letter.Organization.Name
	}
	if letter.Contact != nil {
		resp.ContactName = letter.Contact.FullName()
	}
	return resp
}
