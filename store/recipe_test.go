package store

import (
	"testing"
	"time"

	"recipebook-backend/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRecipe(t *testing.T, s *RecipeStore, name, station string) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		Name:      name,
		Station:   station,
		Version:   "1.0",
		Equipment: pq.StringArray{"mixer", "oven"},
		Procedure: pq.StringArray{"mix", "bake"},
		Yield:     "12 portions",
		Ingredients: []models.Ingredient{
			{ProductName: "flour", Quantity: 500, Unit: "g", Vendor: "Mill Co"},
			{ProductName: "butter", Quantity: 250, Unit: "g"},
		},
	}
	require.NoError(t, s.Create(recipe))
	return recipe
}

func seedArchive(t *testing.T, db *gorm.DB, name string) *models.Archive {
	t.Helper()

	archive := &models.Archive{Name: name, CreatedBy: uuid.New()}
	require.NoError(t, NewArchiveStore(db).Create(archive))
	return archive
}

func TestRecipeListFiltersByStation(t *testing.T) {
	db := newTestDB(t)
	s := NewRecipeStore(db)

	seedRecipe(t, s, "Brioche", "pastry")
	seedRecipe(t, s, "Consommé", "garde manger")

	all, err := s.List("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "Brioche", all[0].Name, "ordered by name")
	require.Len(t, all[0].Ingredients, 2)

	pastry, err := s.List("pastry")
	require.NoError(t, err)
	require.Len(t, pastry, 1)
	assert.Equal(t, "Brioche", pastry[0].Name)
}

func TestArchiveRestoreRoundTrip(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeStore(db)
	archives := NewArchiveStore(db)

	recipe := seedRecipe(t, recipes, "Brioche", "pastry")
	archive := seedArchive(t, db, "Winter menu")
	now := time.Now()

	require.NoError(t, recipes.BatchArchive([]uuid.UUID{recipe.ID}, archive.ID, now))

	// The live row and its ingredients are gone.
	gone, err := recipes.FindByID(recipe.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	live, err := recipes.List("")
	require.NoError(t, err)
	assert.Empty(t, live)

	loaded, err := archives.FindWithRecipes(archive.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Recipes, 1)
	assert.Equal(t, recipe.ID, loaded.Recipes[0].OriginalRecipeID)
	assert.WithinDuration(t, now, loaded.Recipes[0].ArchivedDate, time.Second)

	require.NoError(t, recipes.Restore([]uuid.UUID{recipe.ID}, archive.ID))

	// The snapshot round-trips: same content under a fresh identity.
	restored, err := recipes.List("")
	require.NoError(t, err)
	require.Len(t, restored, 1)
	assert.NotEqual(t, recipe.ID, restored[0].ID)
	assert.Equal(t, "Brioche", restored[0].Name)
	assert.Equal(t, pq.StringArray{"mixer", "oven"}, restored[0].Equipment)
	assert.Equal(t, pq.StringArray{"mix", "bake"}, restored[0].Procedure)
	require.Len(t, restored[0].Ingredients, 2)
	assert.Equal(t, "flour", restored[0].Ingredients[0].ProductName)

	emptied, err := archives.FindWithRecipes(archive.ID)
	require.NoError(t, err)
	assert.Empty(t, emptied.Recipes)
}

func TestBatchArchiveIsAtomic(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeStore(db)
	archives := NewArchiveStore(db)

	recipe := seedRecipe(t, recipes, "Brioche", "pastry")
	archive := seedArchive(t, db, "Winter menu")

	err := recipes.BatchArchive([]uuid.UUID{recipe.ID, uuid.New()}, archive.ID, time.Now())
	require.Error(t, err)

	// The missing recipe rolls back the whole batch.
	still, ferr := recipes.FindByID(recipe.ID)
	require.NoError(t, ferr)
	require.NotNil(t, still)
	assert.Len(t, still.Ingredients, 2)

	loaded, aerr := archives.FindWithRecipes(archive.ID)
	require.NoError(t, aerr)
	assert.Empty(t, loaded.Recipes)
}

func TestRestoreUnknownSnapshot(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeStore(db)
	archive := seedArchive(t, db, "Winter menu")

	err := recipes.Restore([]uuid.UUID{uuid.New()}, archive.ID)
	assert.ErrorIs(t, err, ErrRecipeNotInArchive)
}
