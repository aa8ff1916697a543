package main

import (
	"log"

	"github.com/arnavshah/roster-api-go/pkg/auth"
	"github.com/arnavshah/roster-api-go/pkg/config"
	"github.com/arnavshah/roster-api-go/pkg/database"
	"github.com/arnavshah/roster-api-go/pkg/handlers"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load .env if it exists
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load configuration: %v", err)
	}

	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWTSecret == "" || cfg.APIMasterSecret == "" {
		log.Printf("Warning: JWT_SECRET or API_MASTER_SECRET is empty; tokens and keys are not secure")
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("could not open database: %v", err)
	}

	svc := auth.NewService(cfg.JWTSecret, cfg.APIMasterSecret)
	if err := svc.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Printf("Warning: could not create admin user: %v", err)
	}

	h := &handlers.Handler{DB: db, Auth: svc, Config: cfg}
	r := handlers.NewRouter(h)

	log.Printf("Server starting on port %s (%d tracks configured)", cfg.Port, len(cfg.Roster.Tracks))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
