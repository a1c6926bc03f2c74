package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"letter-office-backend/internal/config"
	"letter-office-backend/internal/database"
	"letter-office-backend/internal/database/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type OrganizationData struct {
	Name        string `yaml:"name"`
	Industry    string `yaml:"industry,omitempty"`
	Phone       string `yaml:"phone,omitempty"`
	Email       string `yaml:"email,omitempty"`
	Address     string `yaml:"address,omitempty"`
	Description string `yaml:"description,omitempty"`
}

type ContactData struct {
	OrganizationName string `yaml:"organization_name,omitempty"`
	FirstName        string `yaml:"first_name"`
	LastName         string `yaml:"last_name"`
	Title            string `yaml:"title,omitempty"`
	Phone            string `yaml:"phone,omitempty"`
	Email            string `yaml:"email,omitempty"`
	Notes            string `yaml:"notes,omitempty"`
}

type UserData struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// File structures
type OrganizationsFile struct {
	Organizations []OrganizationData `yaml:"organizations"`
}

type ContactsFile struct {
	Contacts []ContactData `yaml:"contacts"`
}

type UsersFile struct {
	Users []UserData `yaml:"users"`
}

func main() {
	log.Println("Loading initial data from YAML files...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := loadDataFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("Initial data loaded successfully")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	organizations, err := loadOrganizations(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load organizations: %w", err)
	}
	contacts, err := loadContacts(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load contacts: %w", err)
	}
	users, err := loadUsers(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	// Organizations first so contacts can resolve their references by name.
	orgIDs := make(map[string]*models.Organization)
	for _, data := range organizations {
		org, err := upsertOrganization(db, data)
		if err != nil {
			return fmt.Errorf("organization %q: %w", data.Name, err)
		}
		orgIDs[data.Name] = org
	}
	log.Printf("Loaded %d organizations", len(organizations))

	for _, data := range contacts {
		if err := upsertContact(db, data, orgIDs); err != nil {
			return fmt.Errorf("contact %q %q: %w", data.FirstName, data.LastName, err)
		}
	}
	log.Printf("Loaded %d contacts", len(contacts))

	for _, data := range users {
		if err := upsertUser(db, data); err != nil {
			return fmt.Errorf("user %q: %w", data.Username, err)
		}
	}
	log.Printf("Loaded %d users", len(users))

	return nil
}

func loadOrganizations(dataDir string) ([]OrganizationData, error) {
	var file OrganizationsFile
	if err := readYAMLFile(filepath.Join(dataDir, "organizations.yaml"), &file); err != nil {
		return nil, err
	}
	return file.Organizations, nil
}

func loadContacts(dataDir string) ([]ContactData, error) {
	var file ContactsFile
	if err := readYAMLFile(filepath.Join(dataDir, "contacts.yaml"), &file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return file.Contacts, nil
}

func loadUsers(dataDir string) ([]UserData, error) {
	var file UsersFile
	if err := readYAMLFile(filepath.Join(dataDir, "users.yaml"), &file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return file.Users, nil
}

func readYAMLFile(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, target)
}

func upsertOrganization(db *gorm.DB, data OrganizationData) (*models.Organization, error) {
	var existing models.Organization
	err := db.First(&existing, "name = ?", data.Name).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	org := models.Organization{
		Name:        data.Name,
		Industry:    data.Industry,
		Phone:       data.Phone,
		Email:       data.Email,
		Address:     data.Address,
		Description: data.Description,
	}
	if err := db.Create(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func upsertContact(db *gorm.DB, data ContactData, orgs map[string]*models.Organization) error {
	var existing models.Contact
	err := db.First(&existing, "first_name = ? AND last_name = ?", data.FirstName, data.LastName).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	contact := models.Contact{
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Title:     data.Title,
		Phone:     data.Phone,
		Email:     data.Email,
		Notes:     data.Notes,
	}
	if data.OrganizationName != "" {
		org, ok := orgs[data.OrganizationName]
		if !ok {
			return fmt.Errorf("unknown organization %q", data.OrganizationName)
		}
		contact.OrganizationID = &org.ID
	}
	return db.Create(&contact).Error
}

func upsertUser(db *gorm.DB, data UserData) error {
	role := models.UserRole(data.Role)
	if !role.IsValid() {
		return fmt.Errorf("invalid role %q", data.Role)
	}

	var existing models.User
	err := db.First(&existing, "username = ?", data.Username).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Username:     data.Username,
		PasswordHash: string(hash),
		Role:         role,
	}).Error
}
