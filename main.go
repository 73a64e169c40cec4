package main

import (
	"log"

	"recipebook-backend/config"
	"recipebook-backend/database"
	"recipebook-backend/handlers"
	"recipebook-backend/services"
	"recipebook-backend/store"
)

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	redisClient := database.ConnectRedis(cfg) // optional, nil without redis

	// Stores and services are constructed once and passed down; no globals.
	invitationStore := store.NewInvitationStore(db)
	userStore := store.NewUserStore(db)
	recipeStore := store.NewRecipeStore(db)
	archiveStore := store.NewArchiveStore(db)

	dispatcher := services.NewSendGridDispatcher(cfg.SendGridAPIKey, cfg.SendGridFrom, cfg.SiteName)
	invitationService := services.NewInvitationService(db, invitationStore, userStore, dispatcher, cfg.BaseURL, cfg.SiteName)
	recipeCache := services.NewRecipeCache(redisClient)

	r := handlers.SetupRouter(handlers.RouterDeps{
		JWTSecret:   cfg.JWTSecret,
		SiteName:    cfg.SiteName,
		Auth:        handlers.NewAuthHandler(userStore, cfg.JWTSecret),
		Users:       handlers.NewUserHandler(userStore),
		Invitations: handlers.NewInvitationHandler(invitationService),
		Recipes:     handlers.NewRecipeHandler(recipeStore, archiveStore, recipeCache),
		Archives:    handlers.NewArchiveHandler(archiveStore),
	})

	addr := "0.0.0.0:" + cfg.Port
	log.Printf("🚀 %s server starting on %s", cfg.SiteName, addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
