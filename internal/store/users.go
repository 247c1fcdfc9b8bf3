package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"campus_market/internal/models"
)

// CreateUser inserts a user with a lower-cased email. A second account for the
// same address, in any letter case, fails with ErrEmailTaken.
func (s *Store) CreateUser(ctx context.Context, email, name, passwordHash string) (models.User, error) {
	email = strings.ToLower(email)
	if _, err := s.UserByEmail(ctx, email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// lost a race against a concurrent signup; the unique index rejected us
		if _, lookupErr := s.UserByEmail(ctx, email); lookupErr == nil {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, errors.Wrap(err, "create user")
	}
	return user, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		return models.User{}, errors.Wrap(notFound(err), "user by email")
	}
	return user, nil
}

func (s *Store) UserByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return models.User{}, errors.Wrap(notFound(err), "user by id")
	}
	return user, nil
}
