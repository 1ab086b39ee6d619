// Package adapters provides repository implementations for the users feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"news_backend/internal/feature/users/domain"
	"news_backend/internal/feature/users/domain/entity"
	"news_backend/internal/platform/store"
)

// userGorm stores users with GORM.
type userGorm struct {
	*store.Repository[entity.User]
}

// NewUserRepository creates a user repository backed by db.
func NewUserRepository(db *gorm.DB) *userGorm {
	return &userGorm{Repository: store.NewRepository[entity.User](db)}
}

// FindByID returns the non-deleted user with the given id.
func (r *userGorm) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var u entity.User
	if err := r.DB().WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
