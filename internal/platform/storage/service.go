package storage

import (
	"os"
	"path/filepath"

	"github.com/gofiber/storage/s3/v2"
)

// StorageService defines methods for photo storage operations
type StorageService interface {
	// Save persists file contents under the given relative key
	Save(key string, data []byte) error
}

// localStorage writes files below the working directory
type localStorage struct{}

// NewLocalStorage creates a StorageService backed by the local filesystem
func NewLocalStorage() StorageService {
	return &localStorage{}
}

// Save writes to a temp file in the destination directory and renames it
// into place, so a half-written file is never visible under the final name.
func (s *localStorage) Save(key string, data []byte) error {
	dir := filepath.Dir(key)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), key); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// s3Storage stores files in object storage
type s3Storage struct {
	storage *s3.Storage
}

// NewS3Storage creates a StorageService backed by an S3 bucket
func NewS3Storage(storage *s3.Storage) StorageService {
	return &s3Storage{
		storage: storage,
	}
}

// Save uploads the contents under the key
func (s *s3Storage) Save(key string, data []byte) error {
	return s.storage.Set(key, data, 0)
}
