package fixtures

import (
	"time"

	"github.com/linkstash/linkstash-backend/internal/models"
)

// LinkBuilder creates test Link instances with fluent API
type LinkBuilder struct {
	link models.Link
}

// NewLinkBuilder creates a new LinkBuilder with sensible defaults
func NewLinkBuilder() *LinkBuilder {
	now := time.Now()
	return &LinkBuilder{
		link: models.Link{
			ID:        1,
			Title:     "Go Blog",
			URL:       "https://go.dev/blog",
			Gradient:  models.Gradients[0],
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// WithID sets the link ID
func (b *LinkBuilder) WithID(id uint) *LinkBuilder {
	b.link.ID = id
	return b
}

// WithTitle sets the link title
func (b *LinkBuilder) WithTitle(title string) *LinkBuilder {
	b.link.Title = title
	return b
}

// WithURL sets the link URL
func (b *LinkBuilder) WithURL(url string) *LinkBuilder {
	b.link.URL = url
	return b
}

// WithGradient sets the gradient tag
func (b *LinkBuilder) WithGradient(gradient string) *LinkBuilder {
	b.link.Gradient = gradient
	return b
}

// WithCreatedAt sets the created timestamp
func (b *LinkBuilder) WithCreatedAt(t time.Time) *LinkBuilder {
	b.link.CreatedAt = t
	return b
}

// Build returns the constructed Link
func (b *LinkBuilder) Build() *models.Link {
	return &b.link
}

// BuildValue returns the constructed Link as a value (not pointer)
func (b *LinkBuilder) BuildValue() models.Link {
	return b.link
}

// FileBuilder creates test File instances with fluent API
type FileBuilder struct {
	file models.File
}

// NewFileBuilder creates a new FileBuilder with sensible defaults
func NewFileBuilder() *FileBuilder {
	return &FileBuilder{
		file: models.File{
			ID:         1,
			LinkID:     1,
			Name:       "notes.pdf",
			URL:        "https://cdn.example.com/1/notes.pdf",
			Type:       models.FileTypePDF,
			StorageKey: "1/notes.pdf",
			SizeBytes:  1024,
			CreatedAt:  time.Now(),
		},
	}
}

// WithID sets the file ID
func (b *FileBuilder) WithID(id uint) *FileBuilder {
	b.file.ID = id
	return b
}

// WithLinkID sets the owning link ID
func (b *FileBuilder) WithLinkID(linkID uint) *FileBuilder {
	b.file.LinkID = linkID
	return b
}

// WithName sets the file name
func (b *FileBuilder) WithName(name string) *FileBuilder {
	b.file.Name = name
	return b
}

// WithType sets the file type
func (b *FileBuilder) WithType(fileType string) *FileBuilder {
	b.file.Type = fileType
	return b
}

// WithStorageKey sets the storage key
func (b *FileBuilder) WithStorageKey(key string) *FileBuilder {
	b.file.StorageKey = key
	return b
}

// WithSizeBytes sets the size
func (b *FileBuilder) WithSizeBytes(size int64) *FileBuilder {
	b.file.SizeBytes = size
	return b
}

// WithCreatedAt sets the created timestamp
func (b *FileBuilder) WithCreatedAt(t time.Time) *FileBuilder {
	b.file.CreatedAt = t
	return b
}

// Build returns the constructed File
func (b *FileBuilder) Build() *models.File {
	return &b.file
}

// BuildValue returns the constructed File as a value (not pointer)
func (b *FileBuilder) BuildValue() models.File {
	return b.file
}
