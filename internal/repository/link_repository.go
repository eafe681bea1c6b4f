package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/linkstash/linkstash-backend/internal/models"
	"gorm.io/gorm"
)

// LinkRepository defines the interface for link data access.
// There is deliberately no Delete: links are never removed, only their
// attached files are.
type LinkRepository interface {
	Create(ctx context.Context, link *models.Link) error
	GetByID(ctx context.Context, id uint) (*models.Link, error)
	List(ctx context.Context) ([]models.Link, error)
	Update(ctx context.Context, link *models.Link) error
}

// linkRepository implements LinkRepository using GORM
type linkRepository struct {
	db *gorm.DB
}

// NewLinkRepository creates a new LinkRepository instance
func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{db: db}
}

// Create creates a new link record
func (r *linkRepository) Create(ctx context.Context, link *models.Link) error {
	result := r.db.WithContext(ctx).Create(link)
	if result.Error != nil {
		return fmt.Errorf("failed to create link: %w", result.Error)
	}
	return nil
}

// GetByID retrieves a link by its ID
func (r *linkRepository) GetByID(ctx context.Context, id uint) (*models.Link, error) {
	var link models.Link
	result := r.db.WithContext(ctx).First(&link, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get link by ID: %w", result.Error)
	}
	return &link, nil
}

// List retrieves all links ordered by creation time, newest first
func (r *linkRepository) List(ctx context.Context) ([]models.Link, error) {
	var links []models.Link
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&links)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list links: %w", result.Error)
	}
	return links, nil
}

// Update updates an existing link
func (r *linkRepository) Update(ctx context.Context, link *models.Link) error {
	result := r.db.WithContext(ctx).Save(link)
	if result.Error != nil {
		return fmt.Errorf("failed to update link: %w", result.Error)
	}
	return nil
}
