package store

import (
	"errors"
	"fmt"

	"recipebook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArchiveStore struct {
	db *gorm.DB
}

func NewArchiveStore(db *gorm.DB) *ArchiveStore {
	return &ArchiveStore{db: db}
}

func (s *ArchiveStore) List() ([]models.Archive, error) {
	archives := []models.Archive{}
	if err := s.db.Order("name").Find(&archives).Error; err != nil {
		return nil, fmt.Errorf("list archives: %w", err)
	}
	return archives, nil
}

func (s *ArchiveStore) FindByID(id uuid.UUID) (*models.Archive, error) {
	var archive models.Archive
	err := s.db.First(&archive, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find archive: %w", err)
	}
	return &archive, nil
}

// FindWithRecipes loads the archive together with its snapshots, newest
// first.
func (s *ArchiveStore) FindWithRecipes(id uuid.UUID) (*models.Archive, error) {
	var archive models.Archive
	err := s.db.
		Preload("Recipes", func(db *gorm.DB) *gorm.DB {
			return db.Order("archived_date DESC")
		}).
		First(&archive, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find archive with recipes: %w", err)
	}
	return &archive, nil
}

func (s *ArchiveStore) Create(archive *models.Archive) error {
	if err := s.db.Create(archive).Error; err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	return nil
}

func (s *ArchiveStore) Delete(id uuid.UUID) (bool, error) {
	result := s.db.Select("Recipes").Delete(&models.Archive{ID: id})
	if result.Error != nil {
		return false, fmt.Errorf("delete archive: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
