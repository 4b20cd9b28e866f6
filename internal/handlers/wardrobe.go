package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"wardrobeiq/internal/config"
	"wardrobeiq/internal/database"
	"wardrobeiq/internal/detect"
	"wardrobeiq/internal/logger"
	"wardrobeiq/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20 // 10 MB

func handleUploadImage(c *gin.Context) {
	cfg := c.MustGet("config").(*config.Config)

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no image file provided"})
		return
	}
	if file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds 10MB limit"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image format"})
		return
	}

	storedName := uuid.New().String() + ext
	dst := filepath.Join(cfg.UploadDir, storedName)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	// Detection runs on the client's original filename, not the stored
	// UUID name, so keywords like "black-jeans.jpg" still match.
	detection := detect.Detect(file.Filename)

	logger.Debug("image uploaded", "item_id", storedName, "detected_type", detection.Type)
	c.JSON(http.StatusOK, gin.H{
		"imageUrl":  "/uploads/" + storedName,
		"detection": detection,
	})
}

type detectRequest struct {
	ImageURL string `json:"imageUrl"`
}

func handleDetectClothes(c *gin.Context) {
	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ImageURL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "imageUrl is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"detection": detect.Detect(req.ImageURL)})
}

type addItemRequest struct {
	Name     string       `json:"name" binding:"required"`
	Type     string       `json:"type" binding:"required"`
	Category string       `json:"category" binding:"required"`
	Color    models.Color `json:"color"`
	Fabric   string       `json:"fabric"`
	Brand    string       `json:"brand"`
	Size     string       `json:"size"`
	Season   []string     `json:"season"`
	Occasion []string     `json:"occasion"`
	ImageURL string       `json:"image_url"`
	Tags     []string     `json:"tags"`
}

func validateItemEnums(req *addItemRequest) error {
	if !models.ValidEnum(req.Type, models.ItemTypes) {
		return fmt.Errorf("invalid type %q", req.Type)
	}
	if !models.ValidEnum(req.Category, models.ItemCategories) {
		return fmt.Errorf("invalid category %q", req.Category)
	}
	if req.Fabric != "" && !models.ValidEnum(req.Fabric, models.Fabrics) {
		return fmt.Errorf("invalid fabric %q", req.Fabric)
	}
	if !models.ValidEnumSubset(req.Season, models.Seasons) {
		return fmt.Errorf("invalid season")
	}
	if !models.ValidEnumSubset(req.Occasion, models.Occasions) {
		return fmt.Errorf("invalid occasion")
	}
	return nil
}

func handleAddToWardrobe(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, type and category are required"})
		return
	}
	if err := validateItemEnums(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Items added without seasons or occasions get sensible defaults for
	// their type so the recommendation filters can still reach them.
	if len(req.Season) == 0 {
		req.Season = detect.DefaultSeasonsForType(req.Type)
	}
	if len(req.Occasion) == 0 {
		req.Occasion = detect.DefaultOccasionsForType(req.Type)
	}

	item := models.WardrobeItem{
		Name:     strings.TrimSpace(req.Name),
		Type:     req.Type,
		Category: req.Category,
		Color:    req.Color,
		Fabric:   req.Fabric,
		Brand:    req.Brand,
		Size:     req.Size,
		Season:   req.Season,
		Occasion: req.Occasion,
		ImageURL: req.ImageURL,
		Tags:     req.Tags,
	}

	created, err := database.CreateItem(db, userID, item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := database.CreateNotification(db, userID, models.NotificationClothAdded,
		"New item added",
		fmt.Sprintf("%s was added to your wardrobe", created.Name),
		map[string]interface{}{"item_id": created.ID},
	); err != nil {
		logger.Warn("notification create failed", "user_id", userID, "error", err.Error())
	}

	logger.Info("wardrobe item added", "user_id", userID, "item_id", created.ID)
	c.JSON(http.StatusCreated, gin.H{"item": created})
}

func handleGetWardrobe(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	filter := database.ItemFilter{
		Category: c.Query("category"),
		Color:    c.Query("color"),
		Type:     c.Query("type"),
		Season:   c.Query("season"),
		Page:     parsePositiveInt(c.Query("page"), 1),
		Limit:    parsePositiveInt(c.Query("limit"), 20),
	}

	items, total, err := database.GetItems(db, userID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"total":       total,
		"totalPages":  totalPages(total, filter.Limit),
		"currentPage": filter.Page,
	})
}

func handleWardrobeStats(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	stats, err := database.GetWardrobeStats(db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// updateItemRequest distinguishes omitted fields from explicit values so an
// update only touches what the client sent.
type updateItemRequest struct {
	Name       *string       `json:"name"`
	Type       *string       `json:"type"`
	Category   *string       `json:"category"`
	Color      *models.Color `json:"color"`
	Fabric     *string       `json:"fabric"`
	Brand      *string       `json:"brand"`
	Size       *string       `json:"size"`
	Season     *[]string     `json:"season"`
	Occasion   *[]string     `json:"occasion"`
	ImageURL   *string       `json:"image_url"`
	Tags       *[]string     `json:"tags"`
	IsFavorite *bool         `json:"is_favorite"`
}

func handleUpdateWardrobeItem(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)
	itemID := c.Param("id")

	existing, err := database.GetItem(db, userID, itemID)
	if err != nil {
		respondError(c, err, "item not found")
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		updated.Type = *req.Type
	}
	if req.Category != nil {
		updated.Category = *req.Category
	}
	if req.Color != nil {
		updated.Color = *req.Color
	}
	if req.Fabric != nil {
		updated.Fabric = *req.Fabric
	}
	if req.Brand != nil {
		updated.Brand = *req.Brand
	}
	if req.Size != nil {
		updated.Size = *req.Size
	}
	if req.Season != nil {
		updated.Season = *req.Season
	}
	if req.Occasion != nil {
		updated.Occasion = *req.Occasion
	}
	if req.ImageURL != nil {
		updated.ImageURL = *req.ImageURL
	}
	if req.Tags != nil {
		updated.Tags = *req.Tags
	}
	if req.IsFavorite != nil {
		updated.IsFavorite = *req.IsFavorite
	}

	if !models.ValidEnum(updated.Type, models.ItemTypes) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid type %q", updated.Type)})
		return
	}
	if !models.ValidEnum(updated.Category, models.ItemCategories) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid category %q", updated.Category)})
		return
	}
	if updated.Fabric != "" && !models.ValidEnum(updated.Fabric, models.Fabrics) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid fabric %q", updated.Fabric)})
		return
	}
	if !models.ValidEnumSubset(updated.Season, models.Seasons) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid season"})
		return
	}
	if !models.ValidEnumSubset(updated.Occasion, models.Occasions) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid occasion"})
		return
	}

	if err := database.UpdateItem(db, userID, itemID, updated); err != nil {
		respondError(c, err, "item not found")
		return
	}

	refreshed, err := database.GetItem(db, userID, itemID)
	if err != nil {
		respondError(c, err, "item not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": refreshed})
}

func handleDeleteWardrobeItem(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)
	itemID := c.Param("id")
	force := c.Query("force") == "true"

	item, err := database.GetItem(db, userID, itemID)
	if err != nil {
		respondError(c, err, "item not found")
		return
	}

	if err := database.DeleteItemWithForce(db, userID, itemID, force); err != nil {
		if strings.HasPrefix(err.Error(), "cannot delete") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err, "item not found")
		return
	}

	if _, err := database.CreateNotification(db, userID, models.NotificationClothRemoved,
		"Item removed",
		fmt.Sprintf("%s was removed from your wardrobe", item.Name),
		map[string]interface{}{"item_id": item.ID},
	); err != nil {
		logger.Warn("notification create failed", "user_id", userID, "error", err.Error())
	}

	logger.Info("wardrobe item deleted", "user_id", userID, "item_id", itemID, "force", force)
	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}

func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func totalPages(total, limit int) int {
	if limit < 1 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}
