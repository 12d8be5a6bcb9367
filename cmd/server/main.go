package main

import (
	"log"

	"github.com/pathomics/histospat-backend-go/internal/api"
	"github.com/pathomics/histospat-backend-go/internal/config"
	"github.com/pathomics/histospat-backend-go/internal/database"
	"github.com/pathomics/histospat-backend-go/internal/repository"
	"github.com/pathomics/histospat-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	// Engine parameters are fatal when malformed; nothing runs on a bad grid
	if err := cfg.Engine.Validate(); err != nil {
		log.Fatal("Invalid engine configuration: ", err)
	}

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer database.Close()

	featureRepo := repository.NewFeatureRepository(database.GetDB())
	featureService, err := service.NewFeatureService(featureRepo, cfg.Engine)
	if err != nil {
		log.Fatal("Failed to configure feature service: ", err)
	}

	router := api.SetupRouter(cfg, featureService)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
