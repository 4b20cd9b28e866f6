// Package weather wraps the OpenWeatherMap current-conditions API. Every
// failure path, including a missing API key, degrades to a hardcoded reading
// so recommendation and trip flows never fail on weather.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wardrobeiq/internal/logger"
	"wardrobeiq/internal/models"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Fallback readings used when the provider is unavailable.
var (
	fallbackReading  = models.Weather{Temperature: 22, Condition: "clear"}
	fallbackForecast = models.TripWeather{AvgTemp: 25, Conditions: []string{"sunny", "partly-cloudy"}}
)

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a local server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

type openWeatherResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
}

// Current fetches the current reading for a city. One attempt, no retry; any
// failure returns the fallback {22, clear}.
func (c *Client) Current(ctx context.Context, city string) models.Weather {
	reading, err := c.fetch(ctx, city)
	if err != nil {
		logger.Warn("Weather lookup failed, using fallback", "city", city, "error", err)
		return fallbackReading
	}
	return reading
}

// Destination fetches an aggregate forecast for a trip destination. The
// provider only gives a point reading, so the average is that reading; failure
// returns the fallback {25, sunny/partly-cloudy}.
func (c *Client) Destination(ctx context.Context, destination string) models.TripWeather {
	reading, err := c.fetch(ctx, destination)
	if err != nil {
		logger.Warn("Destination weather lookup failed, using fallback", "destination", destination, "error", err)
		return fallbackForecast
	}
	return models.TripWeather{
		AvgTemp:    reading.Temperature,
		Conditions: []string{reading.Condition},
	}
}

func (c *Client) fetch(ctx context.Context, city string) (models.Weather, error) {
	if c.apiKey == "" {
		return models.Weather{}, fmt.Errorf("no API key configured")
	}
	if city == "" {
		return models.Weather{}, fmt.Errorf("no city provided")
	}

	endpoint := fmt.Sprintf("%s/weather?q=%s&appid=%s&units=metric", c.baseURL, url.QueryEscape(city), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Weather{}, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Weather{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Weather{}, fmt.Errorf("weather provider returned status %d", resp.StatusCode)
	}

	var payload openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Weather{}, fmt.Errorf("failed to decode weather response: %w", err)
	}

	condition := "clear"
	if len(payload.Weather) > 0 {
		condition = strings.ToLower(payload.Weather[0].Main)
	}

	return models.Weather{
		Temperature: int(math.Round(payload.Main.Temp)),
		Condition:   condition,
	}, nil
}
