package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"wardrobeiq/internal/config"
	"wardrobeiq/internal/database"
	"wardrobeiq/internal/email"
	"wardrobeiq/internal/middleware"
	"wardrobeiq/internal/weather"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, db *sql.DB, cfg *config.Config, emailService *email.Service, weatherClient *weather.Client) {
	r.Use(middleware.LogRequests())
	r.Use(middleware.SecurityHeaders(cfg))
	r.Use(middleware.AddDBContext(db))
	r.Use(addServicesContext(cfg, emailService, weatherClient))

	api := r.Group("/api")

	api.GET("/health", handleHealth)

	authRoutes := api.Group("/auth")
	authRoutes.POST("/register", middleware.AuthRateLimit(cfg), handleRegister)
	authRoutes.POST("/login", middleware.AuthRateLimit(cfg), handleLogin)
	authRoutes.POST("/logout", handleLogout)

	protected := api.Group("/")
	protected.Use(middleware.AuthRequired(db, cfg))
	{
		protected.GET("/auth/profile", handleGetProfile)
		protected.PUT("/auth/profile", handleUpdateProfile)

		protected.POST("/wardrobe/upload-image", handleUploadImage)
		protected.POST("/wardrobe/detect-clothes", handleDetectClothes)
		protected.POST("/wardrobe/add-to-wardrobe", handleAddToWardrobe)
		protected.GET("/wardrobe", handleGetWardrobe)
		protected.GET("/wardrobe/stats", handleWardrobeStats)
		protected.PUT("/wardrobe/:id", handleUpdateWardrobeItem)
		protected.DELETE("/wardrobe/:id", handleDeleteWardrobeItem)

		protected.POST("/recommendations/recommend-outfit", handleRecommendOutfit)
		protected.POST("/recommendations/save-outfit", handleSaveOutfit)
		protected.GET("/recommendations/outfits", handleGetSavedOutfits)

		protected.POST("/trips/trip-planner", handleCreateTripPlan)
		protected.GET("/trips", handleGetTripPlans)
		protected.GET("/trips/:id", handleGetTripPlan)
		protected.PUT("/trips/:id", handleUpdateTripPlan)
		protected.DELETE("/trips/:id", handleDeleteTripPlan)

		protected.GET("/notifications", handleGetNotifications)
		protected.PATCH("/notifications/read-all", handleMarkAllNotificationsRead)
		protected.PATCH("/notifications/:id/read", handleMarkNotificationRead)
		protected.DELETE("/notifications/:id", handleDeleteNotification)
	}

	r.Static("/uploads", cfg.UploadDir)
}

func handleHealth(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	if err := db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func addServicesContext(cfg *config.Config, emailService *email.Service, weatherClient *weather.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("config", cfg)
		c.Set("email_service", emailService)
		c.Set("weather_client", weatherClient)
		c.Next()
	}
}

// respondError maps persistence errors to the API taxonomy: missing or
// not-owned records are 404, everything else surfaces as a 500 with the
// error message echoed.
func respondError(c *gin.Context, err error, notFoundMessage string) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
