package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabasePath   string
	Port           string
	SecretKey      string
	TokenDuration  time.Duration
	UploadDir      string
	AllowedOrigins string
	Environment    string
	LogLevel       string

	OpenWeatherAPIKey string

	MailgunDomain      string
	MailgunAPIKey      string
	MailgunSenderEmail string
	MailgunSenderName  string
}

func Load() *Config {
	cfg := &Config{
		DatabasePath:   getEnv("DATABASE_PATH", "wardrobeiq.db"),
		Port:           getEnv("PORT", "8080"),
		SecretKey:      getEnv("SECRET_KEY", "wardrobeiq-secret-change-this-in-production"),
		TokenDuration:  time.Duration(getEnvInt("TOKEN_DURATION_HOURS", 168)) * time.Hour,
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		Environment:    getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),

		OpenWeatherAPIKey: getEnv("OPENWEATHER_API_KEY", ""),

		MailgunDomain:      getEnv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:      getEnv("MAILGUN_API_KEY", ""),
		MailgunSenderEmail: getEnv("MAILGUN_SENDER_EMAIL", "hello@wardrobeiq.app"),
		MailgunSenderName:  getEnv("MAILGUN_SENDER_NAME", "WardrobeIQ"),
	}
	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.Environment != "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
