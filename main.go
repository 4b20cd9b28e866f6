package main

import (
	"log"
	"os"

	"wardrobeiq/internal/config"
	"wardrobeiq/internal/database"
	"wardrobeiq/internal/email"
	"wardrobeiq/internal/handlers"
	"wardrobeiq/internal/logger"
	"wardrobeiq/internal/middleware"
	"wardrobeiq/internal/weather"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}

	cfg := config.Load()

	logger.Initialize(logger.ParseLevel(cfg.LogLevel), cfg.IsDevelopment())

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal("Failed to create upload directory:", err)
	}

	emailService := email.NewService(cfg)
	if emailService.IsEnabled() {
		log.Println("Email service enabled with Mailgun")
	} else {
		log.Println("Email service disabled - Mailgun not configured")
	}

	weatherClient := weather.NewClient(cfg.OpenWeatherAPIKey)
	if cfg.OpenWeatherAPIKey == "" {
		log.Println("OpenWeather not configured - using fallback weather")
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RateLimit(cfg))

	handlers.SetupRoutes(r, db, cfg, emailService, weatherClient)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(r.Run(":" + cfg.Port))
}
