package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockObjectStorage implements storage.ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

// Save stores an object under the given key
func (m *MockObjectStorage) Save(ctx context.Context, key string, content io.Reader) error {
	args := m.Called(ctx, key, content)
	return args.Error(0)
}

// Get retrieves an object by its key
func (m *MockObjectStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// Delete removes an object by its key
func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// PublicURL returns the public URL for a key
func (m *MockObjectStorage) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}
