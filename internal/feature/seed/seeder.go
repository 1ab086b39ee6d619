package seed

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	newsdomain "news_backend/internal/feature/news/domain"
	newsentity "news_backend/internal/feature/news/domain/entity"
	userdomain "news_backend/internal/feature/users/domain"
	userentity "news_backend/internal/feature/users/domain/entity"
)

// UserStore is the user store used by the Seeder.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*userentity.User, error)
	Add(ctx context.Context, u *userentity.User) error
	SaveChanges(ctx context.Context) (int64, error)
	Discard()
}

// NewsStore is the news store used by the Seeder.
type NewsStore interface {
	FindByID(ctx context.Context, id string) (*newsentity.News, error)
	Add(ctx context.Context, n *newsentity.News) error
	SaveChanges(ctx context.Context) (int64, error)
	Discard()
}

// Result counts what a Seed call wrote.
type Result struct {
	Users int64
	News  int64
}

// Seeder writes fixtures through the entity stores.
type Seeder struct {
	users      UserStore
	news       NewsStore
	bcryptCost int
	logger     *zap.Logger
}

// NewSeeder creates a Seeder. A bcryptCost of 0 uses bcrypt.DefaultCost.
func NewSeeder(users UserStore, news NewsStore, bcryptCost int, logger *zap.Logger) *Seeder {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{users: users, news: news, bcryptCost: bcryptCost, logger: logger.Named("seed")}
}

// Seed stores the users and then the news of f. Records whose id already
// exists are skipped, so running Seed twice with the same fixture is a no-op.
// On error nothing staged by this call is left in the stores.
func (s *Seeder) Seed(ctx context.Context, f *Fixture) (Result, error) {
	var res Result
	if err := f.validate(); err != nil {
		return res, err
	}

	n, err := s.seedUsers(ctx, f.Users)
	if err != nil {
		s.users.Discard()
		return res, err
	}
	res.Users = n

	n, err = s.seedNews(ctx, f.News)
	if err != nil {
		s.news.Discard()
		return res, err
	}
	res.News = n

	s.logger.Info("seed finished", zap.Int64("users", res.Users), zap.Int64("news", res.News))
	return res, nil
}

func (s *Seeder) seedUsers(ctx context.Context, users []UserFixture) (int64, error) {
	for _, uf := range users {
		exists, err := s.userExists(ctx, uf.ID)
		if err != nil {
			return 0, err
		}
		if exists {
			s.logger.Debug("user exists, skipping", zap.String("user_id", uf.ID))
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(uf.Password), s.bcryptCost)
		if err != nil {
			return 0, fmt.Errorf("hash password of %s: %w", uf.UserName, err)
		}
		if err := s.users.Add(ctx, &userentity.User{
			ID:           uf.ID,
			UserName:     uf.UserName,
			FullName:     uf.FullName,
			Email:        uf.Email,
			PasswordHash: string(hash),
			Gender:       uf.Gender,
		}); err != nil {
			return 0, fmt.Errorf("add user %s: %w", uf.UserName, err)
		}
	}
	n, err := s.users.SaveChanges(ctx)
	if err != nil {
		return 0, fmt.Errorf("save users: %w", err)
	}
	return n, nil
}

func (s *Seeder) seedNews(ctx context.Context, news []NewsFixture) (int64, error) {
	for _, nf := range news {
		exists, err := s.newsExists(ctx, nf.ID)
		if err != nil {
			return 0, err
		}
		if exists {
			s.logger.Debug("news exists, skipping", zap.String("news_id", nf.ID))
			continue
		}
		if err := s.news.Add(ctx, &newsentity.News{
			ID:               nf.ID,
			Title:            nf.Title,
			Description:      nf.Description,
			ShortDescription: nf.ShortDescription,
			ImagePath:        nf.ImagePath,
			ViewsCounter:     nf.ViewsCounter,
			UserID:           nf.UserID,
		}); err != nil {
			return 0, fmt.Errorf("add news %q: %w", nf.Title, err)
		}
	}
	n, err := s.news.SaveChanges(ctx)
	if err != nil {
		return 0, fmt.Errorf("save news: %w", err)
	}
	return n, nil
}

func (s *Seeder) userExists(ctx context.Context, id string) (bool, error) {
	_, err := s.users.FindByID(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, userdomain.ErrUserNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("find user %s: %w", id, err)
	}
}

func (s *Seeder) newsExists(ctx context.Context, id string) (bool, error) {
	_, err := s.news.FindByID(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, newsdomain.ErrNewsNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("find news %s: %w", id, err)
	}
}
