package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Hues-Apply/profile-sync/internal/auth"
	"github.com/Hues-Apply/profile-sync/internal/config"
	"github.com/Hues-Apply/profile-sync/internal/database"
	"github.com/Hues-Apply/profile-sync/internal/handlers"
	"github.com/Hues-Apply/profile-sync/internal/services"
)

func main() {
	// 1. Load Configuration (reads .env if present)
	cfg := config.Load()

	// 2. Database Connection (drafts, sessions, audit events)
	db := database.Connect(cfg.DatabaseURL)

	// 3. Initialize Core Services
	sessionService := services.NewSessionService(db, cfg.ProfileAPIBaseURL, time.Duration(cfg.SessionTTLMinutes)*time.Minute)
	draftService := services.NewDraftService(db)
	opportunityService := services.NewOpportunityService(cfg.ProfileAPIBaseURL, cfg.OpportunitiesRetries)
	if cfg.TokenFile != "" {
		opportunityService.Fallback = auth.NewFileStore(cfg.TokenFile)
		log.Printf("🔑 Opportunity fetches will fall back to tokens from %s", cfg.TokenFile)
	}

	// 4. Start the Session Reaper
	sessionService.StartReaper()

	// 5. Initialize Handlers
	profileHandler := handlers.NewProfileHandler(sessionService, draftService)
	opportunityHandler := handlers.NewOpportunityHandler(opportunityService)

	// 6. Setup Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // For development only
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 7. Define Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck(sessionService))

		// Profile session routes
		api.GET("/profile", profileHandler.GetProfile)
		api.POST("/profile/save", profileHandler.Save)
		api.POST("/profile/reload", profileHandler.Reload)
		api.PUT("/profile/personal", profileHandler.UpdatePersonal)
		api.PUT("/profile/career", profileHandler.UpdateCareer)
		api.PUT("/profile/ai", profileHandler.UpdateAIPreferences)

		// Repeating-section entries
		api.POST("/profile/:section/entries", profileHandler.AddEntry)
		api.PUT("/profile/:section/entries/:index", profileHandler.UpdateEntry)
		api.DELETE("/profile/:section/entries/:index", profileHandler.DeleteEntry)

		// Section drafts
		api.GET("/profile/drafts", profileHandler.ListDrafts)
		api.PUT("/profile/draft/:section", profileHandler.SaveDraft)
		api.DELETE("/profile/draft/:section", profileHandler.DeleteDraft)

		// Opportunity listings
		api.GET("/opportunities", opportunityHandler.List)
		api.GET("/opportunities/matches", opportunityHandler.Matches)
	}

	log.Printf("🚀 Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
