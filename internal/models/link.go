package models

import (
	"time"
)

// Link represents a saved bookmark with an optional cosmetic gradient tag
type Link struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null;size:255" json:"title"`
	URL       string    `gorm:"not null;size:2048" json:"url"`
	Gradient  string    `gorm:"size:100" json:"gradient"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Files []File `gorm:"foreignKey:LinkID" json:"files,omitempty"`
}

// TableName returns the table name for Link
func (Link) TableName() string {
	return "links"
}
