package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-order-app/config"
	"github.com/yeremiapane/table-order-app/models"
	"github.com/yeremiapane/table-order-app/router"
	"github.com/yeremiapane/table-order-app/services"
	"github.com/yeremiapane/table-order-app/utils"
)

func init() {
	// Load .env sebelum package lain membaca environment
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	ctx := context.Background()

	// Initialize DB
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// Initialize Redis (cart store)
	redisClient, err := config.InitRedis(ctx)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	// Set gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Monitor untuk membatalkan sesi yang sudah expired
	sessionMonitor := services.NewSessionMonitor(db)
	sessionMonitor.Start()
	defer sessionMonitor.Stop()

	// Setup router
	cartStore := services.NewRedisCartStore(redisClient)
	r := router.SetupRouter(db, cartStore, config.StorefrontBaseURL())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	// Run server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Table{},
		&models.TableSession{},
		&models.Category{},
		&models.Product{},
		&models.Modifier{},
		&models.ModifierOption{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
