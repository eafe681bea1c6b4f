package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/linkstash/linkstash-backend/internal/models"
)

// MockLinkRepository implements repository.LinkRepository
type MockLinkRepository struct {
	mock.Mock
}

// Create creates a new link
func (m *MockLinkRepository) Create(ctx context.Context, link *models.Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

// GetByID retrieves a link by its ID
func (m *MockLinkRepository) GetByID(ctx context.Context, id uint) (*models.Link, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Link), args.Error(1)
}

// List retrieves all links, newest first
func (m *MockLinkRepository) List(ctx context.Context) ([]models.Link, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Link), args.Error(1)
}

// Update updates an existing link
func (m *MockLinkRepository) Update(ctx context.Context, link *models.Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

// MockFileRepository implements repository.FileRepository
type MockFileRepository struct {
	mock.Mock
}

// Create creates a new file record
func (m *MockFileRepository) Create(ctx context.Context, file *models.File) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

// GetByID retrieves a file record by its ID
func (m *MockFileRepository) GetByID(ctx context.Context, id uint) (*models.File, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.File), args.Error(1)
}

// ListByLink retrieves all file records for a link, newest first
func (m *MockFileRepository) ListByLink(ctx context.Context, linkID uint) ([]models.File, error) {
	args := m.Called(ctx, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.File), args.Error(1)
}

// CountByLink counts the file records attached to a link
func (m *MockFileRepository) CountByLink(ctx context.Context, linkID uint) (int64, error) {
	args := m.Called(ctx, linkID)
	return args.Get(0).(int64), args.Error(1)
}

// Delete removes a file record by its ID
func (m *MockFileRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
