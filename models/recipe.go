package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Recipe struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string         `gorm:"not null;size:255" json:"name"`
	CreatedDate       string         `gorm:"size:50" json:"created_date"`
	Version           string         `gorm:"size:50" json:"version"`
	Station           string         `gorm:"size:100;index" json:"station"`
	BatchNumber       int            `json:"batch_number"`
	Equipment         pq.StringArray `gorm:"type:text[]" json:"equipment"`
	Ingredients       []Ingredient   `gorm:"constraint:OnDelete:CASCADE" json:"ingredients"`
	Yield             string         `gorm:"size:100" json:"yield"`
	PortionSize       string         `gorm:"size:100" json:"portion_size"`
	PortionsPerRecipe string         `gorm:"size:100" json:"portions_per_recipe"`
	Procedure         pq.StringArray `gorm:"type:text[]" json:"procedure"`
	Description       string         `json:"description,omitempty"`
	FoodCost          float64        `json:"food_cost,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Ingredient struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID    uuid.UUID `gorm:"type:uuid;index" json:"recipe_id"`
	Vendor      string    `gorm:"size:255" json:"vendor,omitempty"`
	ProductName string    `gorm:"not null;size:255" json:"product_name"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `gorm:"size:50" json:"unit"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
