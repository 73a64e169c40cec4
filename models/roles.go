package models

type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleChef       UserRole = "CHEF"
	RolePastryChef UserRole = "PASTRY_CHEF"
	RoleManager    UserRole = "MANAGER"
	RoleStaff      UserRole = "STAFF"
)

type Permission string

const (
	PermAccessApp     Permission = "ACCESS_APP"
	PermViewRecipes   Permission = "VIEW_RECIPES"
	PermCreateRecipes Permission = "CREATE_RECIPES"
	PermEditRecipes   Permission = "EDIT_RECIPES"
	PermDeleteRecipes Permission = "DELETE_RECIPES"
	PermPrintRecipes  Permission = "PRINT_RECIPES"
	PermViewUsers     Permission = "VIEW_USERS"
	PermCreateUsers   Permission = "CREATE_USERS"
	PermEditUsers     Permission = "EDIT_USERS"
	PermDeleteUsers   Permission = "DELETE_USERS"
	PermManageRoles   Permission = "MANAGE_ROLES"
)

// Static role → permission table. Chefs run the kitchen, managers run the
// roster, staff can only read.
var rolePermissions = map[UserRole][]Permission{
	RoleAdmin: {
		PermAccessApp, PermViewRecipes, PermCreateRecipes, PermEditRecipes,
		PermDeleteRecipes, PermPrintRecipes, PermViewUsers, PermCreateUsers,
		PermEditUsers, PermDeleteUsers, PermManageRoles,
	},
	RoleChef: {
		PermAccessApp, PermViewRecipes, PermCreateRecipes, PermEditRecipes,
		PermDeleteRecipes, PermPrintRecipes, PermViewUsers, PermCreateUsers,
		PermEditUsers, PermDeleteUsers, PermManageRoles,
	},
	RolePastryChef: {
		PermAccessApp, PermViewRecipes, PermCreateRecipes, PermEditRecipes,
		PermDeleteRecipes, PermPrintRecipes, PermViewUsers, PermCreateUsers,
		PermEditUsers, PermDeleteUsers, PermManageRoles,
	},
	RoleManager: {
		PermAccessApp, PermViewRecipes, PermEditRecipes, PermCreateRecipes,
		PermPrintRecipes, PermViewUsers, PermCreateUsers, PermEditUsers,
	},
	RoleStaff: {PermAccessApp, PermViewRecipes},
}

func ValidRole(role UserRole) bool {
	_, ok := rolePermissions[role]
	return ok
}

func HasPermission(role UserRole, permission Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
