package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// DefaultCredentialsFile is resolved against the working directory
const DefaultCredentialsFile = "test-credentials.json"

// CredentialsManager keeps the registered test user in a JSON file.
// There is no locking: concurrent writers race and the last one wins.
type CredentialsManager struct {
	filePath string
	logger   logrus.FieldLogger
}

// NewCredentialsManager - creates a manager for path; relative paths are
// taken from the current working directory
func NewCredentialsManager(path string, logger logrus.FieldLogger) *CredentialsManager {
	if path == "" {
		path = DefaultCredentialsFile
	}
	if !filepath.IsAbs(path) {
		if wd, err := os.Getwd(); err == nil {
			path = filepath.Join(wd, path)
		}
	}
	return &CredentialsManager{
		filePath: path,
		logger:   logger,
	}
}

// Path - returns the resolved file location
func (m *CredentialsManager) Path() string {
	return m.filePath
}

// Save - overwrites the file with creds, logging instead of failing
func (m *CredentialsManager) Save(creds entities.Credentials) {
	if err := m.write(creds); err != nil {
		m.logger.Errorf("Failed to save credentials: %v", err)
		return
	}
	m.logger.Infof("Credentials saved to %s", m.filePath)
}

func (m *CredentialsManager) write(creds entities.Credentials) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", entities.ErrPersistence, err)
	}
	if err := os.MkdirAll(filepath.Dir(m.filePath), 0755); err != nil {
		return fmt.Errorf("%w: create directory: %w", entities.ErrPersistence, err)
	}
	if err := os.WriteFile(m.filePath, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", entities.ErrPersistence, err)
	}
	return nil
}

// Load - returns the stored record; false when absent, unreadable or invalid
func (m *CredentialsManager) Load() (entities.Credentials, bool) {
	creds, err := m.read()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			m.logger.Errorf("Failed to read credentials: %v", err)
		}
		return entities.Credentials{}, false
	}
	if creds.IsZero() {
		m.logger.Warnf("Credentials file %s has no email, ignoring it", m.filePath)
		return entities.Credentials{}, false
	}
	return creds, true
}

func (m *CredentialsManager) read() (entities.Credentials, error) {
	var creds entities.Credentials
	data, err := os.ReadFile(m.filePath)
	if err != nil {
		return creds, fmt.Errorf("%w: %w", entities.ErrPersistence, err)
	}
	if err := json.Unmarshal(data, &creds); err != nil {
		return creds, fmt.Errorf("%w: decode %s: %w", entities.ErrPersistence, m.filePath, err)
	}
	return creds, nil
}

// Exists - reports whether the file is present
func (m *CredentialsManager) Exists() bool {
	_, err := os.Stat(m.filePath)
	return err == nil
}

// Clear - deletes the file; a missing file is not an error
func (m *CredentialsManager) Clear() error {
	if err := os.Remove(m.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %w", entities.ErrPersistence, err)
	}
	return nil
}

// Ensure CredentialsManager implements CredentialStore interface
var _ interfaces.CredentialStore = (*CredentialsManager)(nil)
