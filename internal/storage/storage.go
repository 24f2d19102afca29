package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/straye-as/cpq-api/internal/config"
	"go.uber.org/zap"
)

// ErrNotFound is returned when an artifact does not exist in the store
var ErrNotFound = errors.New("artifact not found")

// Storage defines the interface for artifact storage operations
type Storage interface {
	// Upload stores data under name and returns the storage path and size.
	// A name that is already taken gets a numeric suffix.
	Upload(ctx context.Context, name string, contentType string, data io.Reader) (string, int64, error)
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)
	Exists(ctx context.Context, storagePath string) (bool, error)
	Delete(ctx context.Context, storagePath string) error
}

// NewStorage creates the store for generated documents: the documents directory
// in local mode, the documents/ folder of the blob container in azure mode.
func NewStorage(cfg *config.StorageConfig, logger *zap.Logger) (Storage, error) {
	return newStore(cfg, cfg.DocumentsDir, logger)
}

// NewUploadStorage creates the store for uploaded templates, kept apart from documents
func NewUploadStorage(cfg *config.StorageConfig, logger *zap.Logger) (Storage, error) {
	return newStore(cfg, cfg.UploadsDir, logger)
}

func newStore(cfg *config.StorageConfig, dir string, logger *zap.Logger) (Storage, error) {
	switch cfg.Mode {
	case "local", "":
		return NewLocalStorage(dir)
	case "cloud", "azure":
		if cfg.CloudConnectionString == "" {
			return nil, fmt.Errorf("cloud connection string required for azure storage")
		}
		return NewAzureBlobStorage(cfg.CloudConnectionString, cfg.CloudContainer, filepath.Base(dir), logger)
	default:
		return nil, fmt.Errorf("unsupported storage mode: %s", cfg.Mode)
	}
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and replaces every run of non alphanumerics with an underscore
func Slug(s string) string {
	slug := strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(s), "_"), "_")
	if len(slug) > 50 {
		slug = strings.TrimRight(slug[:50], "_")
	}
	if slug == "" {
		return "client"
	}
	return slug
}

// ArtifactName builds the file name {kind}_{client_slug}_{YYYYMMDD_HHMMSS}.{ext}
func ArtifactName(kind, client, ext string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s.%s", kind, Slug(client), at.UTC().Format("20060102_150405"), strings.TrimPrefix(ext, "."))
}

// LocalStorage implements Storage interface for local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	// Create base path if it doesn't exist
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// BasePath returns the directory files are stored in
func (s *LocalStorage) BasePath() string {
	return s.basePath
}

// Upload writes a file to local storage without overwriting an existing one
func (s *LocalStorage) Upload(ctx context.Context, name string, contentType string, data io.Reader) (string, int64, error) {
	name = filepath.Base(name)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	var file *os.File
	storagePath := name
	for i := 1; ; i++ {
		f, err := os.OpenFile(filepath.Join(s.basePath, storagePath), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			file = f
			break
		}
		if !os.IsExist(err) || i > 100 {
			return "", 0, fmt.Errorf("failed to create file: %w", err)
		}
		storagePath = fmt.Sprintf("%s_%d%s", stem, i, ext)
	}
	defer file.Close()

	fullPath := filepath.Join(s.basePath, storagePath)
	size, err := io.Copy(file, data)
	if err != nil {
		os.Remove(fullPath) // Cleanup on error
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	return storagePath, size, nil
}

// Download opens a file from local storage
func (s *LocalStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	file, err := os.Open(s.fullPath(storagePath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, storagePath)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Exists reports whether a file is present in local storage
func (s *LocalStorage) Exists(ctx context.Context, storagePath string) (bool, error) {
	_, err := os.Stat(s.fullPath(storagePath))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Delete deletes a file from local storage
func (s *LocalStorage) Delete(ctx context.Context, storagePath string) error {
	if err := os.Remove(s.fullPath(storagePath)); err != nil {
		if os.IsNotExist(err) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// fullPath confines storage paths to the base directory
func (s *LocalStorage) fullPath(storagePath string) string {
	return filepath.Join(s.basePath, filepath.Base(storagePath))
}
