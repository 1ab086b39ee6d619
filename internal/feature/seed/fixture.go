// Package seed loads users and news items from a YAML fixture into the store.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	userentity "news_backend/internal/feature/users/domain/entity"
)

// Fixture is the content of a seed file.
type Fixture struct {
	Users []UserFixture `yaml:"users"`
	News  []NewsFixture `yaml:"news"`
}

// UserFixture describes a user. Password is plaintext and is hashed before storage.
type UserFixture struct {
	ID       string            `yaml:"id"`
	UserName string            `yaml:"user_name"`
	FullName string            `yaml:"full_name"`
	Email    string            `yaml:"email"`
	Password string            `yaml:"password"`
	Gender   userentity.Gender `yaml:"gender"`
}

// NewsFixture describes a news item authored by UserID.
type NewsFixture struct {
	ID               string `yaml:"id"`
	Title            string `yaml:"title"`
	Description      string `yaml:"description"`
	ShortDescription string `yaml:"short_description"`
	ImagePath        string `yaml:"image_path"`
	ViewsCounter     int    `yaml:"views_counter"`
	UserID           string `yaml:"user_id"`
}

// LoadFixture reads a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(bytes.NewReader(b))
}

// ParseFixture decodes and validates a fixture. Unknown keys are rejected.
func ParseFixture(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// validate checks required fields. Every record needs an id so that seeding
// can skip it on later runs, and every news item must name a user of f.
func (f *Fixture) validate() error {
	userIDs := make(map[string]struct{}, len(f.Users))
	for i, u := range f.Users {
		if u.ID == "" || u.UserName == "" || u.Email == "" || u.Password == "" {
			return fmt.Errorf("fixture: users[%d]: id, user_name, email and password are required", i)
		}
		switch u.Gender {
		case "", userentity.GenderMale, userentity.GenderFemale, userentity.GenderOther:
		default:
			return fmt.Errorf("fixture: users[%d]: unknown gender %q", i, u.Gender)
		}
		if _, dup := userIDs[u.ID]; dup {
			return fmt.Errorf("fixture: users[%d]: duplicate id %q", i, u.ID)
		}
		userIDs[u.ID] = struct{}{}
	}
	newsIDs := make(map[string]struct{}, len(f.News))
	for i, n := range f.News {
		if n.ID == "" || n.Title == "" || n.Description == "" || n.UserID == "" {
			return fmt.Errorf("fixture: news[%d]: id, title, description and user_id are required", i)
		}
		if _, ok := userIDs[n.UserID]; !ok {
			return fmt.Errorf("fixture: news[%d]: unknown author %q", i, n.UserID)
		}
		if _, dup := newsIDs[n.ID]; dup {
			return fmt.Errorf("fixture: news[%d]: duplicate id %q", i, n.ID)
		}
		newsIDs[n.ID] = struct{}{}
	}
	return nil
}
