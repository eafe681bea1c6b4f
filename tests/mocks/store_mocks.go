package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"github.com/linkstash/linkstash-backend/internal/collector"
	"github.com/linkstash/linkstash-backend/internal/models"
)

// MockStore implements collector.Store
type MockStore struct {
	mock.Mock
}

// ListLinks fetches every saved link
func (m *MockStore) ListLinks(ctx context.Context) ([]models.Link, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Link), args.Error(1)
}

// CreateLink saves a new link
func (m *MockStore) CreateLink(ctx context.Context, title, url, gradient string) (*models.Link, error) {
	args := m.Called(ctx, title, url, gradient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Link), args.Error(1)
}

// UpdateLink replaces the editable fields of a link
func (m *MockStore) UpdateLink(ctx context.Context, id uint, fields collector.LinkFields) (*models.Link, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Link), args.Error(1)
}

// ListFiles fetches the file records attached to a link
func (m *MockStore) ListFiles(ctx context.Context, linkID uint) ([]models.File, error) {
	args := m.Called(ctx, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.File), args.Error(1)
}

// CountFiles fetches the attachment count of a link
func (m *MockStore) CountFiles(ctx context.Context, linkID uint) (int64, error) {
	args := m.Called(ctx, linkID)
	return args.Get(0).(int64), args.Error(1)
}

// UploadObject stores raw content scoped to a link
func (m *MockStore) UploadObject(ctx context.Context, linkID uint, name, contentType string, content io.Reader) (string, string, error) {
	args := m.Called(ctx, linkID, name, contentType, content)
	return args.String(0), args.String(1), args.Error(2)
}

// CreateFileRecord records the metadata row for a stored object
func (m *MockStore) CreateFileRecord(ctx context.Context, file *models.File) (*models.File, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.File), args.Error(1)
}

// DeleteFile removes a file's metadata row
func (m *MockStore) DeleteFile(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
