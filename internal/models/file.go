package models

import (
	"strings"
	"time"
)

// File type tags stored on a file record. Anything that is not a PDF is
// tagged as an image, matching how uploads have always been classified.
const (
	FileTypePDF   = "pdf"
	FileTypeImage = "image"
)

// File represents a binary object attached to exactly one Link
type File struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	LinkID     uint      `gorm:"not null;index" json:"link_id"`
	Name       string    `gorm:"not null;size:255" json:"name"`
	URL        string    `gorm:"not null;size:2048" json:"url"`
	Type       string    `gorm:"not null;size:10" json:"type"`
	StorageKey string    `gorm:"size:500" json:"storage_key"`
	SizeBytes  int64     `json:"size_bytes"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Link Link `gorm:"foreignKey:LinkID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for File
func (File) TableName() string {
	return "files"
}

// ClassifyContentType maps a declared content type to a file type tag.
// A content type containing "pdf" is tagged pdf; everything else is tagged
// image, even for types like application/zip. The misclassification of
// non-image, non-pdf files is long-standing behavior that stored records
// already depend on.
func ClassifyContentType(contentType string) string {
	if strings.Contains(strings.ToLower(contentType), "pdf") {
		return FileTypePDF
	}
	return FileTypeImage
}
