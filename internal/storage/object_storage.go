package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Security errors
var (
	ErrPathTraversal  = errors.New("path traversal detected")
	ErrObjectNotFound = errors.New("object not found")
	ErrFileTooLarge   = errors.New("file exceeds size limit")
	ErrBlockedExt     = errors.New("file extension is blocked")
)

// MaxFileSize is the maximum allowed file size (25 MB)
const MaxFileSize = 25 * 1024 * 1024

// BlockedExtensions contains file extensions that are not allowed
var BlockedExtensions = map[string]bool{
	".exe": true, ".bat": true, ".cmd": true, ".com": true,
	".pif": true, ".scr": true, ".vbs": true, ".js": true,
	".jar": true, ".ps1": true, ".sh": true, ".bash": true,
	".msi": true, ".dll": true, ".sys": true,
}

// ObjectStorage defines the interface for the binary-object namespace.
// Keys are namespaced under the owning link's ID, see ObjectKey. Delete
// exists for operational cleanup; the file-delete flow never calls it, so
// deleting a file record leaves its object behind.
type ObjectStorage interface {
	Save(ctx context.Context, key string, content io.Reader) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// ObjectKey builds a globally-unique storage key for an upload: a random
// identifier plus the original extension, namespaced under the link's ID.
func ObjectKey(linkID uint, filename string) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("%d/%s%s", linkID, uuid.New().String(), ext)
}

// ValidateFile checks file extension and size before an upload is accepted
func ValidateFile(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))

	if BlockedExtensions[ext] {
		return ErrBlockedExt
	}

	if size > MaxFileSize {
		return ErrFileTooLarge
	}

	return nil
}

// localStorage implements ObjectStorage using the local filesystem. Objects
// are publicly reachable through the API's /objects/ route.
type localStorage struct {
	basePath      string
	publicBaseURL string
}

// NewLocalStorage creates a new localStorage instance
func NewLocalStorage(basePath, publicBaseURL string) (ObjectStorage, error) {
	// Ensure base directory exists
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &localStorage{
		basePath:      basePath,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

// validatePath ensures key resolves inside basePath (prevents traversal)
func (s *localStorage) validatePath(key string) (string, error) {
	cleanPath := filepath.Clean(key)

	if filepath.IsAbs(cleanPath) {
		return "", ErrPathTraversal
	}

	if strings.Contains(cleanPath, "..") {
		return "", ErrPathTraversal
	}

	fullPath := filepath.Join(s.basePath, cleanPath)

	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("invalid object key: %w", err)
	}

	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) &&
		absPath != absBase {
		return "", ErrPathTraversal
	}

	return absPath, nil
}

// Save stores an object under the given key
func (s *localStorage) Save(ctx context.Context, key string, content io.Reader) error {
	fullPath, err := s.validatePath(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create object: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		// Clean up on error
		os.Remove(fullPath)
		return fmt.Errorf("failed to write object: %w", err)
	}

	return nil
}

// Get retrieves an object by its key
func (s *localStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := s.validatePath(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to open object: %w", err)
	}

	return file, nil
}

// Delete removes an object by its key
func (s *localStorage) Delete(ctx context.Context, key string) error {
	fullPath, err := s.validatePath(key)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			// Object already gone, not an error
			return nil
		}
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// PublicURL returns the publicly resolvable address of an object
func (s *localStorage) PublicURL(key string) string {
	return s.publicBaseURL + "/objects/" + key
}
