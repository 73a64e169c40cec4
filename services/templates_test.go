package services

import (
	"testing"
	"time"

	"recipebook-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatRole(t *testing.T) {
	assert.Equal(t, "Pastry Chef", FormatRole(models.RolePastryChef))
	assert.Equal(t, "Staff", FormatRole(models.RoleStaff))
	assert.Equal(t, "Admin", FormatRole(models.RoleAdmin))
}

func TestBuildInvitationEmail(t *testing.T) {
	expires := time.Date(2026, time.September, 7, 12, 0, 0, 0, time.UTC)
	link := "https://recipes.example.com/register?token=abc123"

	subject, html := BuildInvitationEmail(models.RolePastryChef, link, expires, "Recipe Management System")

	assert.Equal(t, "You're invited to join Recipe Management System", subject)
	assert.Contains(t, html, link)
	assert.Contains(t, html, "Pastry Chef")
	assert.Contains(t, html, "Monday, September 7, 2026")
	assert.Contains(t, html, "Recipe Management System")
}
