// Package entity defines the domain entities for the news feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// News is a published article that comments attach to.
type News struct {
	ID               string `gorm:"primaryKey;size:36"`
	Title            string `gorm:"size:255;not null"`
	Description      string `gorm:"type:text;not null"`
	ShortDescription string `gorm:"size:500"`
	ImagePath        string `gorm:"size:1024"`
	ViewsCounter     int    `gorm:"not null;default:0"`

	// UserID is the author of the article.
	UserID string `gorm:"size:36;index;not null"`

	// IsUpdated is set once the article was edited after publishing.
	IsUpdated bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM.
func (News) TableName() string {
	return "news"
}

// BeforeCreate assigns an identifier when the caller did not provide one.
func (n *News) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
