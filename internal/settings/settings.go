package settings

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultCompanyAbbr seeds a freshly generated settings file. It is the
// abbreviation embedded in every letter code, so it must never be empty.
const DefaultCompanyAbbr = "NGRR"

// Settings holds the four office values persisted to the settings file, in
// file order: company abbreviation, full company name, output directory,
// letterhead template path.
type Settings struct {
	CompanyAbbr  string `json:"company_abbr"`
	CompanyName  string `json:"company_name"`
	OutputDir    string `json:"output_dir"`
	TemplatePath string `json:"template_path"`
}

// Store loads and persists Settings from a flat newline-delimited text file.
// It replaces the module-level globals of the legacy tool with a single
// guarded value threaded into the services that need it.
type Store struct {
	path    string
	mu      sync.RWMutex
	current Settings
}

// NewStore reads the settings file at path, regenerating defaults (and
// rewriting the file) when it is missing or has fewer than four lines.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	loaded, err := readSettingsFile(path)
	if err == nil {
		s.current = *loaded
		return s, nil
	}

	logrus.WithError(err).Warnf("settings file %s unusable, regenerating defaults", path)
	s.current = defaultSettings()
	if err := s.writeLocked(); err != nil {
		return nil, fmt.Errorf("write default settings: %w", err)
	}
	return s, nil
}

// Get returns a snapshot of the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update validates, applies and persists new settings.
func (s *Store) Update(next Settings) error {
	if strings.TrimSpace(next.CompanyAbbr) == "" {
		return fmt.Errorf("company abbreviation must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.current
	s.current = next
	if err := s.writeLocked(); err != nil {
		s.current = previous
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

func readSettingsFile(path string) (*Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) < 4 {
		return nil, fmt.Errorf("settings file %s has %d lines, expected at least 4", path, len(lines))
	}

	return &Settings{
		CompanyAbbr:  lines[0],
		CompanyName:  lines[1],
		OutputDir:    lines[2],
		TemplatePath: lines[3],
	}, nil
}

func (s *Store) writeLocked() error {
	content := strings.Join([]string{
		s.current.CompanyAbbr,
		s.current.CompanyName,
		s.current.OutputDir,
		s.current.TemplatePath,
	}, "\n") + "\n"
	return os.WriteFile(s.path, []byte(content), 0o644)
}

func defaultSettings() Settings {
	outputDir := defaultOutputDir()
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		outputDir, _ = os.Getwd()
	}
	return Settings{
		CompanyAbbr:  DefaultCompanyAbbr,
		CompanyName:  "",
		OutputDir:    outputDir,
		TemplatePath: "",
	}
}

func defaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	return filepath.Join(home, "Documents", "GeneratedLetters")
}
