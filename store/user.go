package store

import (
	"errors"
	"fmt"
	"strings"

	"recipebook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) WithTx(tx *gorm.DB) *UserStore {
	return &UserStore{db: tx}
}

func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (s *UserStore) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

func (s *UserStore) Create(user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	if err := s.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *UserStore) List() ([]models.User, error) {
	users := []models.User{}
	if err := s.db.Order("first_name, last_name").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserStore) Update(user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	if err := s.db.Save(user).Error; err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *UserStore) Delete(id uuid.UUID) (bool, error) {
	result := s.db.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return false, fmt.Errorf("delete user: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *UserStore) UpdatePassword(id uuid.UUID, hashedPassword string) (bool, error) {
	result := s.db.Model(&models.User{}).Where("id = ?", id).
		Update("password", hashedPassword)
	if result.Error != nil {
		return false, fmt.Errorf("update password: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
