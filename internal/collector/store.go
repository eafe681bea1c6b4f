// Package collector implements the client core of Linkstash: a remote
// store client plus the controllers that keep an in-memory view of the
// user's saved links in sync with the backend. The remote store is the
// single source of truth; controllers reconcile by re-fetching, never by
// merging server state into local state.
package collector

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/linkstash/linkstash-backend/internal/models"
	"github.com/linkstash/linkstash-backend/internal/validator"
)

// LinkFields holds the editable fields of a link. The gradient is fixed
// at creation and not editable.
type LinkFields struct {
	Title string
	URL   string
}

// UploadItem is a single pending attachment: a name, a declared content
// type and the byte stream to store.
type UploadItem struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Store is the remote store client. Implementations talk to the Linkstash
// API (see APIStore) or stand in for it in tests. All remote failures are
// reported as *StoreError.
type Store interface {
	ListLinks(ctx context.Context) ([]models.Link, error)
	CreateLink(ctx context.Context, title, url, gradient string) (*models.Link, error)
	UpdateLink(ctx context.Context, id uint, fields LinkFields) (*models.Link, error)

	ListFiles(ctx context.Context, linkID uint) ([]models.File, error)
	CountFiles(ctx context.Context, linkID uint) (int64, error)
	UploadObject(ctx context.Context, linkID uint, name, contentType string, content io.Reader) (key, publicURL string, err error)
	CreateFileRecord(ctx context.Context, file *models.File) (*models.File, error)
	DeleteFile(ctx context.Context, id uint) error
}

// StoreError wraps a failed remote operation with the operation name.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ValidationError reports client-side rejection of form input before any
// remote call is made.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is a client-side input rejection.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidateLinkInput checks link form input at submission time.
func ValidateLinkInput(title, url string) error {
	if err := validator.ValidateTitle(title); err != nil {
		return &ValidationError{Field: "title", Err: err}
	}
	if err := validator.ValidateURL(url); err != nil {
		return &ValidationError{Field: "url", Err: err}
	}
	return nil
}
