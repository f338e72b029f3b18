package main

import (
	"log"

	"github.com/Dev-06-06/cricket-tracker/config"
	_ "github.com/Dev-06-06/cricket-tracker/docs"
	"github.com/Dev-06-06/cricket-tracker/internal/match"
	"github.com/Dev-06-06/cricket-tracker/internal/player"
	"github.com/Dev-06-06/cricket-tracker/routes"
)

// @title Cricket Tracker API
// @version 1.0
// @description Ball-by-ball live cricket scoring with real-time broadcasts 🏏
// @host localhost:8088
// @BasePath /api
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&player.Player{},
		&match.Match{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes(config.DB, cfg)

	// Use port from loaded configuration
	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
