// Package entity defines the domain entities for the comments feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a user-authored remark attached to a news item.
// It is created once and never edited afterwards.
type Comment struct {
	// ID is assigned by the store on insert. Any value set by the caller is replaced.
	ID string `gorm:"primaryKey;size:36"`

	// NewsID references the news item the comment belongs to.
	NewsID string `gorm:"size:36;index;not null"`

	// UserID references the author of the comment.
	UserID string `gorm:"size:36;index;not null"`

	Content string `gorm:"type:text;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM.
func (Comment) TableName() string {
	return "news_comments"
}

// BeforeCreate assigns a fresh identifier to every inserted comment.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	c.ID = uuid.NewString()
	return nil
}
