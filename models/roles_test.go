package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleAdmin, PermManageRoles))
	assert.True(t, HasPermission(RoleChef, PermCreateUsers))
	assert.True(t, HasPermission(RolePastryChef, PermDeleteRecipes))

	assert.True(t, HasPermission(RoleManager, PermCreateUsers))
	assert.False(t, HasPermission(RoleManager, PermDeleteUsers))
	assert.False(t, HasPermission(RoleManager, PermManageRoles))

	assert.True(t, HasPermission(RoleStaff, PermViewRecipes))
	assert.False(t, HasPermission(RoleStaff, PermCreateUsers))
	assert.False(t, HasPermission(RoleStaff, PermViewUsers))
}

func TestHasPermissionUnknownRole(t *testing.T) {
	assert.False(t, HasPermission(UserRole("SOMMELIER"), PermViewRecipes))
	assert.False(t, HasPermission(UserRole(""), PermAccessApp))
}

func TestValidRole(t *testing.T) {
	for _, role := range []UserRole{RoleAdmin, RoleChef, RolePastryChef, RoleManager, RoleStaff} {
		assert.True(t, ValidRole(role), string(role))
	}
	assert.False(t, ValidRole(UserRole("SOMMELIER")))
}
