package handlers

import (
	"log"
	"math"
	"net/http"

	"recipebook-backend/models"
	"recipebook-backend/services"
	"recipebook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvitationHandler struct {
	service *services.InvitationService
}

func NewInvitationHandler(service *services.InvitationService) *InvitationHandler {
	return &InvitationHandler{service: service}
}

type CreateInvitationRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// POST /invitations
func (h *InvitationHandler) Create(c *gin.Context) {
	var req CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}
	if req.Email == "" || req.Role == "" {
		utils.BadRequest(c, "Email and role are required")
		return
	}

	invitation, magicLink, err := h.service.Create(services.CreateInvitationDTO{
		Email:     req.Email,
		Role:      models.UserRole(req.Role),
		InvitedBy: utils.GetCurrentUserID(c),
	})
	if err != nil {
		if services.IsInvitationError(err) {
			utils.BadRequest(c, err.Error())
			return
		}
		log.Printf("❌ Failed to create invitation: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"invitation": invitation,
		"magicLink":  magicLink,
	})
}

// GET /invitations
func (h *InvitationHandler) List(c *gin.Context) {
	var p utils.PaginationQuery
	c.ShouldBindQuery(&p)
	p.Normalize()

	status := models.InvitationStatus(c.Query("status"))
	invitations, total, err := h.service.List(status, p.Page, p.Limit)
	if err != nil {
		log.Printf("❌ Failed to list invitations: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invitations": invitations,
		"total":       total,
		"page":        p.Page,
		"totalPages":  int(math.Ceil(float64(total) / float64(p.Limit))),
	})
}

// GET /invitations/verify/:token
func (h *InvitationHandler) Verify(c *gin.Context) {
	invitation, err := h.service.Verify(c.Param("token"))
	if err != nil {
		if services.IsInvitationError(err) {
			utils.BadRequest(c, err.Error())
			return
		}
		log.Printf("❌ Failed to verify invitation: %v", err)
		utils.InternalError(c, "Failed to verify invitation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":      true,
		"invitation": invitation,
	})
}

type CompleteInvitationRequest struct {
	Token     string `json:"token"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// POST /invitations/complete — token-gated, no session required.
func (h *InvitationHandler) Complete(c *gin.Context) {
	var req CompleteInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "All fields are required")
		return
	}
	if req.Token == "" || req.FirstName == "" || req.LastName == "" || req.Password == "" {
		utils.BadRequest(c, "All fields are required")
		return
	}

	user, err := h.service.Complete(services.CompleteInvitationDTO{
		Token:     req.Token,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		if services.IsInvitationError(err) {
			utils.BadRequest(c, err.Error())
			return
		}
		log.Printf("❌ Failed to complete registration: %v", err)
		utils.InternalError(c, "Failed to complete registration")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    user,
		"message": "Registration completed successfully",
	})
}

// POST /invitations/:id/resend
func (h *InvitationHandler) Resend(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid invitation ID")
		return
	}

	sent, err := h.service.Resend(id)
	if err != nil {
		if services.IsInvitationError(err) {
			utils.BadRequest(c, err.Error())
			return
		}
		log.Printf("❌ Failed to resend invitation: %v", err)
		utils.InternalError(c, "Internal server error")
		return
	}
	if !sent {
		utils.InternalError(c, "Failed to send invitation email")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation email sent"})
}
