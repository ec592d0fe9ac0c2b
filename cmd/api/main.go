// server/cmd/api/main.go
package main

import (
	"log"
	"time"

	"asset-verse-api-server/config"
	"asset-verse-api-server/internal/api/routes"
	"asset-verse-api-server/internal/auth"
	"asset-verse-api-server/internal/database"
	"asset-verse-api-server/internal/engine"
	"asset-verse-api-server/internal/payments"
	"asset-verse-api-server/internal/s3"
	"asset-verse-api-server/internal/socket"
	"asset-verse-api-server/internal/store/mongostore"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load configuration (.env for local development, then yaml + env)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it")
	}
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	// 2. JWT setup
	expiration, err := time.ParseDuration(cfg.JWT.Expiration)
	if err != nil {
		expiration = 24 * time.Hour
	}
	auth.Init(cfg.JWT.Secret, expiration)

	// 3. Connect MongoDB and seed the package catalog
	client, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db := client.Database(cfg.Mongo.DBName)
	if err := database.SeedPackages(db); err != nil {
		log.Fatalf("Failed to seed packages: %v", err)
	}
	st := mongostore.New(db)

	// 4. Payment provider client
	provider := payments.NewClient(cfg.Payment.BaseURL, cfg.Payment.APIKey)

	// 5. Inventory & request engine
	eng := engine.New(st, st, st, st, provider)

	// 6. Optional S3 uploader for product images
	var uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			log.Fatalf("Failed to create S3 uploader: %v", err)
		}
	}

	// 7. WebSocket hub for dashboard notifications
	hub := socket.NewHub()

	// 8. Router
	router := routes.SetupRouter(eng, st, hub, uploader, cfg)

	// 9. Start server
	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
