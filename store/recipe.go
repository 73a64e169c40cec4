package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"recipebook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrRecipeNotInArchive = errors.New("recipe not found in archive")

type RecipeStore struct {
	db *gorm.DB
}

func NewRecipeStore(db *gorm.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

func (s *RecipeStore) WithTx(tx *gorm.DB) *RecipeStore {
	return &RecipeStore{db: tx}
}

// List returns recipes, optionally filtered by station. Archiving moves rows
// into the archive snapshot table, so every row here is live.
func (s *RecipeStore) List(station string) ([]models.Recipe, error) {
	query := s.db.Preload("Ingredients")
	if station != "" {
		query = query.Where("station = ?", station)
	}

	recipes := []models.Recipe{}
	if err := query.Order("name").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

func (s *RecipeStore) FindByID(id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.Preload("Ingredients").First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return &recipe, nil
}

func (s *RecipeStore) Create(recipe *models.Recipe) error {
	if err := s.db.Create(recipe).Error; err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}
	return nil
}

// Update replaces the recipe and its ingredient rows as one unit.
func (s *RecipeStore) Update(recipe *models.Recipe) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Ingredient{}, "recipe_id = ?", recipe.ID).Error; err != nil {
			return fmt.Errorf("clear ingredients: %w", err)
		}
		for i := range recipe.Ingredients {
			recipe.Ingredients[i].ID = uuid.Nil
			recipe.Ingredients[i].RecipeID = recipe.ID
		}
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(recipe).Error; err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		return nil
	})
}

func (s *RecipeStore) Delete(id uuid.UUID) (bool, error) {
	result := s.db.Select("Ingredients").Delete(&models.Recipe{ID: id})
	if result.Error != nil {
		return false, fmt.Errorf("delete recipe: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// BatchArchive snapshots each recipe into the archive as JSON and removes
// the live row. Runs as one transaction: all recipes move or none do.
func (s *RecipeStore) BatchArchive(recipeIDs []uuid.UUID, archiveID uuid.UUID, now time.Time) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		txStore := s.WithTx(tx)
		for _, id := range recipeIDs {
			recipe, err := txStore.FindByID(id)
			if err != nil {
				return err
			}
			if recipe == nil {
				return fmt.Errorf("recipe %s: %w", id, gorm.ErrRecordNotFound)
			}

			data, err := json.Marshal(recipe)
			if err != nil {
				return fmt.Errorf("snapshot recipe %s: %w", id, err)
			}

			archived := models.ArchivedRecipe{
				ArchiveID:        archiveID,
				OriginalRecipeID: recipe.ID,
				ArchivedDate:     now,
				RecipeData:       data,
			}
			if err := tx.Create(&archived).Error; err != nil {
				return fmt.Errorf("archive recipe %s: %w", id, err)
			}

			if err := tx.Delete(&models.Ingredient{}, "recipe_id = ?", recipe.ID).Error; err != nil {
				return fmt.Errorf("remove archived ingredients: %w", err)
			}
			if err := tx.Delete(&models.Recipe{}, "id = ?", recipe.ID).Error; err != nil {
				return fmt.Errorf("remove archived recipe: %w", err)
			}
		}
		return nil
	})
}

// Restore re-inserts archived snapshots as fresh recipes and drops them from
// the archive.
func (s *RecipeStore) Restore(recipeIDs []uuid.UUID, archiveID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, id := range recipeIDs {
			var archived models.ArchivedRecipe
			err := tx.Where("archive_id = ? AND original_recipe_id = ?", archiveID, id).
				First(&archived).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("recipe %s: %w", id, ErrRecipeNotInArchive)
			}
			if err != nil {
				return fmt.Errorf("load archived recipe: %w", err)
			}

			var recipe models.Recipe
			if err := json.Unmarshal(archived.RecipeData, &recipe); err != nil {
				return fmt.Errorf("decode archived recipe %s: %w", id, err)
			}

			recipe.ID = uuid.Nil
			for i := range recipe.Ingredients {
				recipe.Ingredients[i].ID = uuid.Nil
				recipe.Ingredients[i].RecipeID = uuid.Nil
			}

			if err := tx.Create(&recipe).Error; err != nil {
				return fmt.Errorf("restore recipe %s: %w", id, err)
			}
			if err := tx.Delete(&archived).Error; err != nil {
				return fmt.Errorf("remove restored snapshot: %w", err)
			}
		}
		return nil
	})
}
