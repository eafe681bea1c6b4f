package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/linkstash/linkstash-backend/internal/models"
	"gorm.io/gorm"
)

// FileRepository defines the interface for file-record data access.
// Delete removes the metadata row only; the backing object in storage is
// intentionally left in place.
type FileRepository interface {
	Create(ctx context.Context, file *models.File) error
	GetByID(ctx context.Context, id uint) (*models.File, error)
	ListByLink(ctx context.Context, linkID uint) ([]models.File, error)
	CountByLink(ctx context.Context, linkID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

// fileRepository implements FileRepository using GORM
type fileRepository struct {
	db *gorm.DB
}

// NewFileRepository creates a new FileRepository instance
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

// Create creates a new file record
func (r *fileRepository) Create(ctx context.Context, file *models.File) error {
	result := r.db.WithContext(ctx).Create(file)
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return ErrInvalidInput
		}
		return fmt.Errorf("failed to create file record: %w", result.Error)
	}
	return nil
}

// GetByID retrieves a file record by its ID
func (r *fileRepository) GetByID(ctx context.Context, id uint) (*models.File, error) {
	var file models.File
	result := r.db.WithContext(ctx).First(&file, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get file by ID: %w", result.Error)
	}
	return &file, nil
}

// ListByLink retrieves all file records for a link, newest first
func (r *fileRepository) ListByLink(ctx context.Context, linkID uint) ([]models.File, error) {
	var files []models.File
	result := r.db.WithContext(ctx).
		Where("link_id = ?", linkID).
		Order("created_at DESC").
		Find(&files)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list files: %w", result.Error)
	}
	return files, nil
}

// CountByLink returns the number of file records for a link without
// transferring rows
func (r *fileRepository) CountByLink(ctx context.Context, linkID uint) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&models.File{}).
		Where("link_id = ?", linkID).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count files: %w", result.Error)
	}
	return count, nil
}

// Delete deletes a file record by its ID. The object in storage is not
// touched.
func (r *fileRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.File{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete file record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
