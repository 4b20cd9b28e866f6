package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCurrentParsesProviderResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "Paris" {
			t.Errorf("Expected city Paris, got %s", r.URL.Query().Get("q"))
		}
		if r.URL.Query().Get("units") != "metric" {
			t.Errorf("Expected metric units, got %s", r.URL.Query().Get("units"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"main":{"temp":17.6},"weather":[{"main":"Clouds"}]}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)
	reading := client.Current(context.Background(), "Paris")

	if reading.Temperature != 18 {
		t.Errorf("Expected rounded temperature 18, got %d", reading.Temperature)
	}
	if reading.Condition != "clouds" {
		t.Errorf("Expected lowercased condition 'clouds', got %s", reading.Condition)
	}
}

func TestCurrentFallbackWithoutAPIKey(t *testing.T) {
	client := NewClient("")
	reading := client.Current(context.Background(), "Paris")

	if reading.Temperature != 22 || reading.Condition != "clear" {
		t.Errorf("Expected fallback {22, clear}, got %+v", reading)
	}
}

func TestCurrentFallbackOnProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)
	reading := client.Current(context.Background(), "Paris")

	if reading.Temperature != 22 || reading.Condition != "clear" {
		t.Errorf("Expected fallback {22, clear}, got %+v", reading)
	}
}

func TestCurrentFallbackOnEmptyCity(t *testing.T) {
	client := NewClient("test-key")
	reading := client.Current(context.Background(), "")

	if reading.Temperature != 22 || reading.Condition != "clear" {
		t.Errorf("Expected fallback {22, clear}, got %+v", reading)
	}
}

func TestDestinationUsesPointReading(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"main":{"temp":28.2},"weather":[{"main":"Clear"}]}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)
	forecast := client.Destination(context.Background(), "Lisbon")

	if forecast.AvgTemp != 28 {
		t.Errorf("Expected average temperature 28, got %d", forecast.AvgTemp)
	}
	if len(forecast.Conditions) != 1 || forecast.Conditions[0] != "clear" {
		t.Errorf("Expected conditions [clear], got %v", forecast.Conditions)
	}
}

func TestDestinationFallback(t *testing.T) {
	client := NewClient("")
	forecast := client.Destination(context.Background(), "Lisbon")

	if forecast.AvgTemp != 25 {
		t.Errorf("Expected fallback average 25, got %d", forecast.AvgTemp)
	}
	if len(forecast.Conditions) != 2 || forecast.Conditions[0] != "sunny" {
		t.Errorf("Expected fallback conditions [sunny partly-cloudy], got %v", forecast.Conditions)
	}
}
