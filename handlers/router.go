package handlers

import (
	"net/http"

	"recipebook-backend/middleware"
	"recipebook-backend/models"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	JWTSecret   string
	SiteName    string
	Auth        *AuthHandler
	Users       *UserHandler
	Invitations *InvitationHandler
	Recipes     *RecipeHandler
	Archives    *ArchiveHandler
}

func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.CORSMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.SiteName,
		})
	})

	r.POST("/auth/login", deps.Auth.Login)

	// Redemption endpoints carry no session: possession of the token is the
	// credential.
	r.GET("/invitations/verify/:token", deps.Invitations.Verify)
	r.POST("/invitations/complete", deps.Invitations.Complete)

	invitations := r.Group("/invitations")
	invitations.Use(middleware.AuthRequired(deps.JWTSecret))
	{
		invitations.POST("", middleware.RequirePermission(models.PermCreateUsers), deps.Invitations.Create)
		invitations.GET("", middleware.RequirePermission(models.PermViewUsers), deps.Invitations.List)
		invitations.POST("/:id/resend", middleware.RequirePermission(models.PermCreateUsers), deps.Invitations.Resend)
	}

	api := r.Group("/api")
	api.Use(middleware.AuthRequired(deps.JWTSecret))
	{
		users := api.Group("/users")
		{
			users.GET("", middleware.RequirePermission(models.PermViewUsers), deps.Users.List)
			users.POST("/change-password", deps.Users.ChangePassword)
			users.GET("/:id", middleware.RequirePermission(models.PermViewUsers), deps.Users.Get)
			users.PUT("/:id", middleware.RequirePermission(models.PermEditUsers), deps.Users.Update)
			users.DELETE("/:id", middleware.RequirePermission(models.PermDeleteUsers), deps.Users.Delete)
		}

		recipes := api.Group("/recipes")
		{
			recipes.GET("", middleware.RequirePermission(models.PermViewRecipes), deps.Recipes.List)
			recipes.POST("", middleware.RequirePermission(models.PermCreateRecipes), deps.Recipes.Create)
			recipes.POST("/batch-archive", middleware.RequirePermission(models.PermEditRecipes), deps.Recipes.BatchArchive)
			recipes.POST("/restore", middleware.RequirePermission(models.PermEditRecipes), deps.Recipes.Restore)
			recipes.GET("/:id", middleware.RequirePermission(models.PermViewRecipes), deps.Recipes.Get)
			recipes.PUT("/:id", middleware.RequirePermission(models.PermEditRecipes), deps.Recipes.Update)
			recipes.DELETE("/:id", middleware.RequirePermission(models.PermDeleteRecipes), deps.Recipes.Delete)
			recipes.POST("/:id/archive", middleware.RequirePermission(models.PermEditRecipes), deps.Recipes.Archive)
		}

		archives := api.Group("/archives")
		{
			archives.GET("", middleware.RequirePermission(models.PermViewRecipes), deps.Archives.List)
			archives.POST("", middleware.RequirePermission(models.PermEditRecipes), deps.Archives.Create)
			archives.GET("/:id", middleware.RequirePermission(models.PermViewRecipes), deps.Archives.Get)
			archives.DELETE("/:id", middleware.RequirePermission(models.PermDeleteRecipes), deps.Archives.Delete)
		}
	}

	return r
}
