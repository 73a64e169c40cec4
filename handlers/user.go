package handlers

import (
	"log"
	"net/http"
	"strings"

	"recipebook-backend/models"
	"recipebook-backend/services"
	"recipebook-backend/store"
	"recipebook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserHandler struct {
	users *store.UserStore
}

func NewUserHandler(users *store.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		log.Printf("❌ Failed to list users: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}

	responses := []models.UserResponse{}
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"users": responses})
}

// GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.users.FindByID(id)
	if err != nil {
		log.Printf("❌ Failed to fetch user: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}
	c.JSON(http.StatusOK, user.ToResponse())
}

type UpdateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.FindByID(id)
	if err != nil {
		log.Printf("❌ Failed to fetch user: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Role != "" {
		role := models.UserRole(req.Role)
		if !models.ValidRole(role) {
			utils.BadRequest(c, "Invalid role")
			return
		}
		user.Role = role
	}

	if err := h.users.Update(user); err != nil {
		log.Printf("❌ Failed to update user: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, user.ToResponse())
}

// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID")
		return
	}

	deleted, err := h.users.Delete(id)
	if err != nil {
		log.Printf("❌ Failed to delete user: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}
	if !deleted {
		utils.NotFound(c, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// POST /api/users/change-password — the session owner changes their own
// password after re-proving the current one.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		utils.BadRequest(c, "Missing required fields")
		return
	}

	user, err := h.users.FindByID(utils.GetCurrentUserID(c))
	if err != nil {
		log.Printf("❌ Failed to fetch user: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		utils.BadRequest(c, "Current password is incorrect")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), services.PasswordHashCost)
	if err != nil {
		log.Printf("❌ Failed to hash password: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}

	if _, err := h.users.UpdatePassword(user.ID, string(hashed)); err != nil {
		log.Printf("❌ Failed to update password: %v", err)
		utils.InternalError(c, "Failed to update password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
