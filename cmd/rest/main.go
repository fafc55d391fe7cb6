package main

import (
	"context"
	"log"

	"ai-learning-be/internal/bootstrap"
	"ai-learning-be/internal/config"
	"ai-learning-be/internal/model"
	"ai-learning-be/internal/server"
	"ai-learning-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// pgvector must exist before the vector column can be migrated
	if err := gormDB.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		log.Panicf("Unable to enable pgvector extension: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.DocumentChunk{}); err != nil {
		log.Panicf("Unable to migrate database schema: %v", err)
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

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
