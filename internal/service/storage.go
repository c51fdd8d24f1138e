package service

import (
	"fmt"

	"github.com/xolan/daylog/internal/storage"
)

// StorageService maintains the local entries file
type StorageService struct {
	path string
}

// NewStorageService creates a new StorageService
func NewStorageService(path string) *StorageService {
	return &StorageService{path: path}
}

// Path returns the entries file path.
func (s *StorageService) Path() string {
	return s.path
}

// Validate reports the health of the entries file.
func (s *StorageService) Validate() (storage.StorageHealth, error) {
	return storage.ValidateStorage(s.path)
}

// Backups lists the available backups, most recent first.
func (s *StorageService) Backups() []storage.BackupInfo {
	return storage.ListBackups(s.path)
}

// Restore replaces the entries file with backup n (1 is the most recent).
func (s *StorageService) Restore(n int) error {
	if err := storage.RestoreBackup(s.path, n); err != nil {
		return fmt.Errorf("failed to restore backup %d: %w", n, err)
	}
	return nil
}
