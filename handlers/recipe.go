package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"recipebook-backend/models"
	"recipebook-backend/store"
	"recipebook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// RecipeCache caches recipe list payloads; satisfied by services.RecipeCache.
type RecipeCache interface {
	Get(ctx context.Context, station string) ([]byte, bool)
	Set(ctx context.Context, station string, payload []byte)
	Invalidate(ctx context.Context)
}

type RecipeHandler struct {
	recipes  *store.RecipeStore
	archives *store.ArchiveStore
	cache    RecipeCache
}

func NewRecipeHandler(recipes *store.RecipeStore, archives *store.ArchiveStore, cache RecipeCache) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, archives: archives, cache: cache}
}

// GET /api/recipes?station=
func (h *RecipeHandler) List(c *gin.Context) {
	station := c.Query("station")

	if payload, ok := h.cache.Get(c.Request.Context(), station); ok {
		c.Data(http.StatusOK, "application/json", payload)
		return
	}

	recipes, err := h.recipes.List(station)
	if err != nil {
		log.Printf("❌ Failed to list recipes: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}

	body := gin.H{"recipes": recipes}
	if payload, err := json.Marshal(body); err == nil {
		h.cache.Set(c.Request.Context(), station, payload)
	}
	c.JSON(http.StatusOK, body)
}

// GET /api/recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid recipe ID")
		return
	}

	recipe, err := h.recipes.FindByID(id)
	if err != nil {
		log.Printf("❌ Failed to fetch recipe: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}
	if recipe == nil {
		utils.NotFound(c, "Recipe not found")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

type RecipeRequest struct {
	Name              string              `json:"name" binding:"required"`
	CreatedDate       string              `json:"created_date"`
	Version           string              `json:"version"`
	Station           string              `json:"station"`
	BatchNumber       int                 `json:"batch_number"`
	Equipment         []string            `json:"equipment"`
	Ingredients       []models.Ingredient `json:"ingredients"`
	Yield             string              `json:"yield"`
	PortionSize       string              `json:"portion_size"`
	PortionsPerRecipe string              `json:"portions_per_recipe"`
	Procedure         []string            `json:"procedure"`
	Description       string              `json:"description"`
	FoodCost          float64             `json:"food_cost"`
}

func (r *RecipeRequest) apply(recipe *models.Recipe) {
	recipe.Name = r.Name
	recipe.CreatedDate = r.CreatedDate
	recipe.Version = r.Version
	recipe.Station = r.Station
	recipe.BatchNumber = r.BatchNumber
	recipe.Equipment = pq.StringArray(r.Equipment)
	recipe.Ingredients = r.Ingredients
	recipe.Yield = r.Yield
	recipe.PortionSize = r.PortionSize
	recipe.PortionsPerRecipe = r.PortionsPerRecipe
	recipe.Procedure = pq.StringArray(r.Procedure)
	recipe.Description = r.Description
	recipe.FoodCost = r.FoodCost
}

// POST /api/recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var recipe models.Recipe
	req.apply(&recipe)

	if err := h.recipes.Create(&recipe); err != nil {
		log.Printf("❌ Failed to create recipe: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}

	h.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, recipe)
}

// PUT /api/recipes/:id
func (h *RecipeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid recipe ID")
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	recipe, err := h.recipes.FindByID(id)
	if err != nil {
		log.Printf("❌ Failed to fetch recipe: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}
	if recipe == nil {
		utils.NotFound(c, "Recipe not found")
		return
	}

	req.apply(recipe)
	if err := h.recipes.Update(recipe); err != nil {
		log.Printf("❌ Failed to update recipe: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}

	h.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, recipe)
}

// DELETE /api/recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid recipe ID")
		return
	}

	deleted, err := h.recipes.Delete(id)
	if err != nil {
		log.Printf("❌ Failed to delete recipe: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}
	if !deleted {
		utils.NotFound(c, "Recipe not found")
		return
	}

	h.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}

type ArchiveRecipeRequest struct {
	ArchiveID string `json:"archiveId" binding:"required"`
}

// POST /api/recipes/:id/archive
func (h *RecipeHandler) Archive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid recipe ID")
		return
	}

	var req ArchiveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Missing required parameters")
		return
	}
	archiveID, err := uuid.Parse(req.ArchiveID)
	if err != nil {
		utils.BadRequest(c, "Invalid archive ID")
		return
	}

	h.archiveRecipes(c, []uuid.UUID{id}, archiveID, "Recipe archived successfully")
}

type BatchArchiveRequest struct {
	RecipeIDs []string `json:"recipeIds" binding:"required"`
	ArchiveID string   `json:"archiveId" binding:"required"`
}

// POST /api/recipes/batch-archive
func (h *RecipeHandler) BatchArchive(c *gin.Context) {
	recipeIDs, archiveID, ok := h.bindBatch(c)
	if !ok {
		return
	}
	h.archiveRecipes(c, recipeIDs, archiveID, "Recipes archived successfully")
}

// POST /api/recipes/restore
func (h *RecipeHandler) Restore(c *gin.Context) {
	recipeIDs, archiveID, ok := h.bindBatch(c)
	if !ok {
		return
	}

	if err := h.recipes.Restore(recipeIDs, archiveID); err != nil {
		if isNotFoundErr(err) {
			utils.NotFound(c, err.Error())
			return
		}
		log.Printf("❌ Failed to restore recipes: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}

	h.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Recipes restored successfully"})
}

func (h *RecipeHandler) bindBatch(c *gin.Context) ([]uuid.UUID, uuid.UUID, bool) {
	var req BatchArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.RecipeIDs) == 0 {
		utils.BadRequest(c, "Missing required parameters")
		return nil, uuid.Nil, false
	}

	archiveID, err := uuid.Parse(req.ArchiveID)
	if err != nil {
		utils.BadRequest(c, "Invalid archive ID")
		return nil, uuid.Nil, false
	}

	recipeIDs := make([]uuid.UUID, 0, len(req.RecipeIDs))
	for _, raw := range req.RecipeIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.BadRequest(c, "Invalid recipe ID")
			return nil, uuid.Nil, false
		}
		recipeIDs = append(recipeIDs, id)
	}
	return recipeIDs, archiveID, true
}

func (h *RecipeHandler) archiveRecipes(c *gin.Context, recipeIDs []uuid.UUID, archiveID uuid.UUID, message string) {
	archive, err := h.archives.FindByID(archiveID)
	if err != nil {
		log.Printf("❌ Failed to fetch archive: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}
	if archive == nil {
		utils.NotFound(c, "Archive not found")
		return
	}

	if err := h.recipes.BatchArchive(recipeIDs, archiveID, time.Now()); err != nil {
		if isNotFoundErr(err) {
			utils.NotFound(c, "Recipe not found")
			return
		}
		log.Printf("❌ Failed to archive recipes: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}

	h.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": message})
}
