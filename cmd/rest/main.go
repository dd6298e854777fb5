package main

import (
	"context"
	"log"

	"foodiebot-be/internal/bootstrap"
	"foodiebot-be/internal/config"
	"foodiebot-be/internal/server"
	"foodiebot-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	if err := container.AffinityScheduler.Start(); err != nil {
		log.Printf("Background: Failed to start affinity scheduler: %v", err)
	}
	defer container.AffinityScheduler.Stop()

	// 5. Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
