package handlers

import (
	"database/sql"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"wardrobeiq/internal/database"
	"wardrobeiq/internal/logger"
	"wardrobeiq/internal/models"
	"wardrobeiq/internal/stylist"
	"wardrobeiq/internal/weather"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type tripPlanRequest struct {
	Destination string   `json:"destination" binding:"required"`
	StartDate   string   `json:"start_date" binding:"required"`
	EndDate     string   `json:"end_date" binding:"required"`
	TripType    string   `json:"trip_type" binding:"required"`
	Activities  []string `json:"activities"`
}

func handleCreateTripPlan(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)
	weatherClient := c.MustGet("weather_client").(*weather.Client)

	var req tripPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "destination, start_date, end_date and trip_type are required"})
		return
	}
	if !models.ValidEnum(req.TripType, models.TripTypes) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip_type"})
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must not be before start_date"})
		return
	}

	forecast := weatherClient.Destination(c.Request.Context(), req.Destination)

	items, err := database.GetAllItems(db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	outfits, packing := stylist.PlanTrip(items, stylist.TripParams{
		StartDate: start,
		EndDate:   end,
		TripType:  req.TripType,
		Weather:   forecast,
	}, rng)

	plan := models.TripPlan{
		Destination: strings.TrimSpace(req.Destination),
		StartDate:   start,
		EndDate:     end,
		TripType:    req.TripType,
		Activities:  req.Activities,
		Weather:     forecast,
		Outfits:     outfits,
		PackingList: packing,
	}

	created, err := database.CreateTripPlan(db, userID, plan)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := database.CreateNotification(db, userID, models.NotificationTripPlanned,
		"Trip plan ready",
		fmt.Sprintf("Your %d-day trip to %s is planned", stylist.TripDays(start, end), created.Destination),
		map[string]interface{}{"trip_id": created.ID},
	); err != nil {
		logger.Warn("notification create failed", "user_id", userID, "error", err.Error())
	}

	logger.Info("trip planned", "user_id", userID, "trip_id", created.ID, "days", stylist.TripDays(start, end))
	c.JSON(http.StatusCreated, gin.H{"trip": created})
}

func handleGetTripPlans(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), 20)

	trips, total, err := database.GetTripPlans(db, userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trips":       trips,
		"total":       total,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
	})
}

func handleGetTripPlan(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	trip, err := database.GetTripPlan(db, userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "trip plan not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

type tripUpdateRequest struct {
	Destination *string                `json:"destination"`
	StartDate   *string                `json:"start_date"`
	EndDate     *string                `json:"end_date"`
	TripType    *string                `json:"trip_type"`
	Activities  *[]string              `json:"activities"`
	Outfits     *[]models.DayOutfit    `json:"outfits"`
	PackingList *[]models.PackingEntry `json:"packing_list"`
}

func handleUpdateTripPlan(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)
	tripID := c.Param("id")

	var req tripUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	update := database.TripPlanUpdate{
		Destination: req.Destination,
		Activities:  req.Activities,
		Outfits:     req.Outfits,
		PackingList: req.PackingList,
	}

	if req.TripType != nil {
		if !models.ValidEnum(*req.TripType, models.TripTypes) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip_type"})
			return
		}
		update.TripType = req.TripType
	}
	if req.StartDate != nil {
		start, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
			return
		}
		update.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
			return
		}
		update.EndDate = &end
	}

	// A partial date change still has to leave a valid range, so check the
	// new dates against the stored ones.
	if update.StartDate != nil || update.EndDate != nil {
		existing, err := database.GetTripPlan(db, userID, tripID)
		if err != nil {
			respondError(c, err, "trip plan not found")
			return
		}

		start := existing.StartDate
		if update.StartDate != nil {
			start = *update.StartDate
		}
		end := existing.EndDate
		if update.EndDate != nil {
			end = *update.EndDate
		}
		if end.Before(start) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must not be before start_date"})
			return
		}
	}

	updated, err := database.UpdateTripPlan(db, userID, tripID, update)
	if err != nil {
		respondError(c, err, "trip plan not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"trip": updated})
}

func handleDeleteTripPlan(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)
	tripID := c.Param("id")

	if err := database.DeleteTripPlan(db, userID, tripID); err != nil {
		respondError(c, err, "trip plan not found")
		return
	}

	logger.Info("trip plan deleted", "user_id", userID, "trip_id", tripID)
	c.JSON(http.StatusOK, gin.H{"message": "trip plan deleted"})
}
