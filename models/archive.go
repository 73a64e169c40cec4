package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Archive struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string           `gorm:"not null;size:255" json:"name"`
	Description string           `json:"description,omitempty"`
	CreatedBy   uuid.UUID        `gorm:"type:uuid" json:"created_by"`
	Recipes     []ArchivedRecipe `gorm:"constraint:OnDelete:CASCADE" json:"recipes,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (a *Archive) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ArchivedRecipe is a point-in-time JSON snapshot of a recipe. Restores
// re-insert the snapshot as a fresh recipe row.
type ArchivedRecipe struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ArchiveID        uuid.UUID `gorm:"type:uuid;index" json:"archive_id"`
	OriginalRecipeID uuid.UUID `gorm:"type:uuid;index" json:"original_recipe_id"`
	ArchivedDate     time.Time `json:"archived_date"`
	RecipeData       []byte    `gorm:"type:jsonb" json:"recipe_data"`
}

func (ar *ArchivedRecipe) BeforeCreate(tx *gorm.DB) error {
	if ar.ID == uuid.Nil {
		ar.ID = uuid.New()
	}
	return nil
}
