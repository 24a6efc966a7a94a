package store

import (
	"errors"
	"strings"

	"github.com/taskhive-dev/taskhive/internal/models"
	"gorm.io/gorm"
)

// CreateUser inserts a new account. Email is unique; a duplicate fails with
// ErrDuplicateEmail and creates nothing. The check-then-insert pair is backed
// by the unique index, so a racing duplicate still fails at the database.
func (s *Store) CreateUser(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	var existing models.User
	err := s.db.Where("email = ?", user.Email).First(&existing).Error

	if err == nil {
		return ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.db.Create(user).Error
}

func (s *Store) FindUserByEmail(email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (s *Store) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (s *Store) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}
