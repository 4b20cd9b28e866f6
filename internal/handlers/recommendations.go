package handlers

import (
	"database/sql"
	"math/rand"
	"net/http"
	"time"

	"wardrobeiq/internal/database"
	"wardrobeiq/internal/logger"
	"wardrobeiq/internal/models"
	"wardrobeiq/internal/stylist"
	"wardrobeiq/internal/weather"

	"github.com/gin-gonic/gin"
)

type recommendRequest struct {
	Occasion string `json:"occasion"`
	City     string `json:"city"`
}

func handleRecommendOutfit(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	user := c.MustGet("user").(*models.User)
	weatherClient := c.MustGet("weather_client").(*weather.Client)

	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	occasion := req.Occasion
	if occasion == "" {
		occasion = "casual"
	}
	if !models.ValidEnum(occasion, models.Occasions) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid occasion"})
		return
	}

	city := req.City
	if city == "" {
		city = user.Location.City
	}

	current := weatherClient.Current(c.Request.Context(), city)

	items, err := database.GetAllItems(db, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	recommendations := stylist.BuildOutfits(items, occasion, current, rng)

	if len(recommendations) > 0 {
		if _, err := database.CreateNotification(db, user.ID, models.NotificationOutfitSuggested,
			"Outfit suggestions ready",
			"We picked some outfits for you based on today's weather",
			map[string]interface{}{"count": len(recommendations), "occasion": occasion},
		); err != nil {
			logger.Warn("notification create failed", "user_id", user.ID, "error", err.Error())
		}
	}

	logger.Debug("outfits recommended", "user_id", user.ID, "count", len(recommendations), "temperature", current.Temperature)
	c.JSON(http.StatusOK, gin.H{
		"recommendations": recommendations,
		"weather":         current,
		"occasion":        occasion,
	})
}

type saveOutfitRequest struct {
	Name     string              `json:"name" binding:"required"`
	Items    []models.OutfitItem `json:"items" binding:"required"`
	Occasion string              `json:"occasion"`
	Weather  models.Weather      `json:"weather"`
	Rating   *int                `json:"rating"`
}

func handleSaveOutfit(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	var req saveOutfitRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and items are required"})
		return
	}

	occasion := req.Occasion
	if occasion == "" {
		occasion = "casual"
	}
	if !models.ValidEnum(occasion, models.Occasions) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid occasion"})
		return
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}

	outfit := models.Outfit{
		Name:     req.Name,
		Items:    req.Items,
		Occasion: occasion,
		Season:   stylist.CurrentSeason(time.Now()),
		Weather:  req.Weather,
		Rating:   req.Rating,
	}

	created, err := database.CreateOutfit(db, userID, outfit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logger.Info("outfit saved", "user_id", userID, "outfit_id", created.ID)
	c.JSON(http.StatusCreated, gin.H{"outfit": created})
}

func handleGetSavedOutfits(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), 20)

	outfits, total, err := database.GetOutfits(db, userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"outfits":     outfits,
		"total":       total,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
	})
}
