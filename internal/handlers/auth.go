package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"wardrobeiq/internal/config"
	"wardrobeiq/internal/database"
	"wardrobeiq/internal/email"
	"wardrobeiq/internal/logger"
	"wardrobeiq/internal/middleware"
	"wardrobeiq/internal/models"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func handleRegister(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	cfg := c.MustGet("config").(*config.Config)
	emailService := c.MustGet("email_service").(*email.Service)

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password (min 6 chars) are required"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := database.CreateUser(db, req.Name, req.Email, req.Password)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := middleware.GenerateToken(user.ID, cfg.SecretKey, cfg.TokenDuration)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	setAuthCookie(c, cfg, token)

	if emailService.IsEnabled() {
		go func(u *models.User) {
			if err := emailService.SendWelcomeEmail(u); err != nil {
				logger.Warn("welcome email failed", "user_id", u.ID, "error", err.Error())
			}
		}(user)
	}

	logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

func handleLogin(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	cfg := c.MustGet("config").(*config.Config)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := database.AuthenticateUser(db, strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := middleware.GenerateToken(user.ID, cfg.SecretKey, cfg.TokenDuration)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	setAuthCookie(c, cfg, token)

	logger.Info("user logged in", "user_id", user.ID)
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

func handleLogout(c *gin.Context) {
	cfg := c.MustGet("config").(*config.Config)
	c.SetCookie("token", "", -1, "/", "", !cfg.IsDevelopment(), true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func handleGetProfile(c *gin.Context) {
	user := c.MustGet("user").(*models.User)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type profileUpdateRequest struct {
	Name        string              `json:"name"`
	Preferences *models.Preferences `json:"preferences"`
	Location    *models.Location    `json:"location"`
}

func handleUpdateProfile(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	user := c.MustGet("user").(*models.User)

	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	name := user.Name
	if strings.TrimSpace(req.Name) != "" {
		name = strings.TrimSpace(req.Name)
	}
	prefs := user.Preferences
	if req.Preferences != nil {
		if req.Preferences.Style != "" && !models.ValidEnum(req.Preferences.Style, models.Styles) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid style"})
			return
		}
		prefs = *req.Preferences
	}
	location := user.Location
	if req.Location != nil {
		location = *req.Location
	}

	if err := database.UpdateUserProfile(db, user.ID, name, prefs, location); err != nil {
		respondError(c, err, "user not found")
		return
	}

	updated, err := database.GetUserByID(db, user.ID)
	if err != nil {
		respondError(c, err, "user not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": updated})
}

func setAuthCookie(c *gin.Context, cfg *config.Config, token string) {
	maxAge := int(cfg.TokenDuration.Seconds())
	c.SetCookie("token", token, maxAge, "/", "", !cfg.IsDevelopment(), true)
}
