package handlers

import (
	"log"
	"net/http"

	"recipebook-backend/models"
	"recipebook-backend/store"
	"recipebook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ArchiveHandler struct {
	archives *store.ArchiveStore
}

func NewArchiveHandler(archives *store.ArchiveStore) *ArchiveHandler {
	return &ArchiveHandler{archives: archives}
}

// GET /api/archives
func (h *ArchiveHandler) List(c *gin.Context) {
	archives, err := h.archives.List()
	if err != nil {
		log.Printf("❌ Failed to list archives: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"archives": archives})
}

// GET /api/archives/:id — includes the archived recipe snapshots.
func (h *ArchiveHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid archive ID")
		return
	}

	archive, err := h.archives.FindWithRecipes(id)
	if err != nil {
		log.Printf("❌ Failed to fetch archive: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}
	if archive == nil {
		utils.NotFound(c, "Archive not found")
		return
	}
	c.JSON(http.StatusOK, archive)
}

type CreateArchiveRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// POST /api/archives
func (h *ArchiveHandler) Create(c *gin.Context) {
	var req CreateArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Archive name is required")
		return
	}

	archive := models.Archive{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   utils.GetCurrentUserID(c),
	}
	if err := h.archives.Create(&archive); err != nil {
		log.Printf("❌ Failed to create archive: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}
	c.JSON(http.StatusCreated, archive)
}

// DELETE /api/archives/:id
func (h *ArchiveHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid archive ID")
		return
	}

	deleted, err := h.archives.Delete(id)
	if err != nil {
		log.Printf("❌ Failed to delete archive: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}
	if !deleted {
		utils.NotFound(c, "Archive not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Archive deleted successfully"})
}
