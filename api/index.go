package handler

import (
	"log"
	"net/http"

	"github.com/arnavshah/roster-api-go/pkg/auth"
	"github.com/arnavshah/roster-api-go/pkg/config"
	"github.com/arnavshah/roster-api-go/pkg/database"
	"github.com/arnavshah/roster-api-go/pkg/handlers"
	"github.com/gin-gonic/gin"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load configuration: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("could not open database: %v", err)
	}

	svc := auth.NewService(cfg.JWTSecret, cfg.APIMasterSecret)
	_ = svc.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword)

	gin.SetMode(gin.ReleaseMode)
	r = handlers.NewRouter(&handlers.Handler{DB: db, Auth: svc, Config: cfg})
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
