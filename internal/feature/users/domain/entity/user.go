// Package entity defines the domain entities for the users feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender is the self-declared gender of a user.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// User is a content author or commenter.
// Users are created by the registration flow or the seeder and are never
// mutated by the comments feature.
type User struct {
	// ID is the unique identifier. It is generated on insert when empty.
	ID string `gorm:"primaryKey;size:36"`

	// UserName is the login name shown next to comments.
	UserName string `gorm:"size:100;uniqueIndex;not null"`

	FullName string `gorm:"size:200"`

	// Email must be unique across all users.
	Email string `gorm:"size:255;uniqueIndex;not null"`

	// PasswordHash is the bcrypt hash of the password.
	// It never holds a plaintext password.
	PasswordHash string `gorm:"size:255;not null"`

	Gender Gender `gorm:"size:16"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// DeletedAt marks the user as soft-deleted.
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an identifier when the caller did not provide one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
