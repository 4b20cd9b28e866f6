package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wardrobeiq/internal/config"
	"wardrobeiq/internal/database"
	"wardrobeiq/internal/email"
	"wardrobeiq/internal/weather"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *sql.DB) {
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal("Failed to open test database:", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatal("Failed to run migrations:", err)
	}

	cfg := &config.Config{
		SecretKey:      "test-secret",
		TokenDuration:  time.Hour,
		UploadDir:      t.TempDir(),
		AllowedOrigins: "http://localhost:3000",
		Environment:    "development",
		LogLevel:       "ERROR",
	}

	r := gin.New()
	SetupRoutes(r, db, cfg, email.NewService(cfg), weather.NewClient(""))

	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatal("Failed to marshal request body:", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", w.Body.String(), err)
	}
	return body
}

func registerTestUser(t *testing.T, r *gin.Engine) string {
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "testuser",
		"email":    "test@example.com",
		"password": "password123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 from register, got %d: %s", w.Code, w.Body.String())
	}

	token, ok := decodeBody(t, w)["token"].(string)
	if !ok || token == "" {
		t.Fatal("Register response missing token")
	}
	return token
}

func TestHealthEndpoint(t *testing.T) {
	r, db := setupTestRouter(t)
	defer db.Close()

	w := doJSON(t, r, http.MethodGet, "/api/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 from health, got %d", w.Code)
	}
}

func TestRegisterLoginProfile(t *testing.T) {
	r, db := setupTestRouter(t)
	defer db.Close()

	token := registerTestUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "dup", "email": "test@example.com", "password": "password456",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for duplicate email, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "test@example.com", "password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 from login, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "test@example.com", "password": "wrongpassword",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for wrong password, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/auth/profile", token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 from profile, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/auth/profile", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w.Code)
	}
}

func TestWardrobeCRUDFlow(t *testing.T) {
	r, db := setupTestRouter(t)
	defer db.Close()

	token := registerTestUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/wardrobe/add-to-wardrobe", token, map[string]interface{}{
		"name":     "Blue Jeans",
		"type":     "jeans",
		"category": "bottoms",
		"color":    map[string]interface{}{"primary": "blue"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 from add-to-wardrobe, got %d: %s", w.Code, w.Body.String())
	}

	item := decodeBody(t, w)["item"].(map[string]interface{})
	itemID := item["id"].(string)
	if itemID == "" {
		t.Fatal("Created item missing id")
	}
	// Omitted season/occasion get type-derived defaults.
	if seasons := item["season"].([]interface{}); len(seasons) != 4 {
		t.Errorf("Expected year-round default seasons for jeans, got %v", seasons)
	}
	if occasions := item["occasion"].([]interface{}); len(occasions) != 2 {
		t.Errorf("Expected casual+work default occasions for jeans, got %v", occasions)
	}

	w = doJSON(t, r, http.MethodPost, "/api/wardrobe/add-to-wardrobe", token, map[string]interface{}{
		"name": "Weird", "type": "cape", "category": "tops",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown type, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/wardrobe?category=bottoms", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 from wardrobe list, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["total"].(float64) != 1 {
		t.Errorf("Expected total 1, got %v", body["total"])
	}

	w = doJSON(t, r, http.MethodPut, "/api/wardrobe/"+itemID, token, map[string]interface{}{
		"name":     "Dark Jeans",
		"type":     "jeans",
		"category": "bottoms",
		"color":    map[string]interface{}{"primary": "black"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 from item update, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/wardrobe/stats", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 from stats, got %d", w.Code)
	}
	stats := decodeBody(t, w)["stats"].(map[string]interface{})
	if stats["total_items"].(float64) != 1 {
		t.Errorf("Expected 1 item in stats, got %v", stats["total_items"])
	}

	w = doJSON(t, r, http.MethodDelete, "/api/wardrobe/"+itemID, token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 from delete, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, "/api/wardrobe/"+itemID, token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for deleted item, got %d", w.Code)
	}
}

func TestWardrobeUpdatePreservesOmittedFields(t *testing.T) {
	r, db := setupTestRouter(t)
	defer db.Close()

	token := registerTestUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/wardrobe/add-to-wardrobe", token, map[string]interface{}{
		"name":     "Blue Jeans",
		"type":     "jeans",
		"category": "bottoms",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 from add-to-wardrobe, got %d: %s", w.Code, w.Body.String())
	}
	itemID := decodeBody(t, w)["item"].(map[string]interface{})["id"].(string)

	// Rename only; seasons and occasions are not sent.
	w = doJSON(t, r, http.MethodPut, "/api/wardrobe/"+itemID, token, map[string]interface{}{
		"name": "Dark Jeans",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 from partial update, got %d: %s", w.Code, w.Body.String())
	}

	item := decodeBody(t, w)["item"].(map[string]interface{})
	if item["name"] != "Dark Jeans" {
		t.Errorf("Expected renamed item, got %v", item["name"])
	}
	if item["type"] != "jeans" {
		t.Errorf("Expected type to survive partial update, got %v", item["type"])
	}
	if seasons, ok := item["season"].([]interface{}); !ok || len(seasons) != 4 {
		t.Errorf("Expected default seasons to survive partial update, got %v", item["season"])
	}
	if occasions, ok := item["occasion"].([]interface{}); !ok || len(occasions) != 2 {
		t.Errorf("Expected default occasions to survive partial update, got %v", item["occasion"])
	}

	w = doJSON(t, r, http.MethodPut, "/api/wardrobe/"+itemID, token, map[string]interface{}{
		"type": "cape",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown type on update, got %d", w.Code)
	}
}

func TestUploadImageEndpoint(t *testing.T) {
	r, db := setupTestRouter(t)
	defer db.Close()

	token := registerTestUser(t, r)

	// Multipart body with no "image" part.
	var empty bytes.Buffer
	mw := multipart.NewWriter(&empty)
	mw.WriteField("note", "nothing attached")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/wardrobe/upload-image", &empty)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without an image file, got %d", w.Code)
	}

	var buf bytes.Buffer
	mw = multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "black-jeans.jpg")
	if err != nil {
		t.Fatal("Failed to create form file:", err)
	}
	part.Write([]byte("fake image bytes"))
	mw.Close()

	req = httptest.NewRequest(http.MethodPost, "/api/wardrobe/upload-image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 from upload, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	imageURL, _ := body["imageUrl"].(string)
	if !strings.HasPrefix(imageURL, "/uploads/") {
		t.Errorf("Expected imageUrl under /uploads/, got %q", imageURL)
	}

	detection := body["detection"].(map[string]interface{})
	if detection["type"] != "jeans" || detection["category"] != "bottoms" {
		t.Errorf("Expected jeans/bottoms, got %v/%v", detection["type"], detection["category"])
	}
	color := detection["color"].(map[string]interface{})
	if color["primary"] != "black" {
		t.Errorf("Expected black primary color, got %v", color["primary"])
	}
	if detection["confidence"].(float64) != 0.85 {
		t.Errorf("Expected confidence 0.85, got %v", detection["confidence"])
	}
}

func TestDetectClothesEndpoint(t *testing.T) {
	r, db := setupTestRouter(t)
	defer db.Close()

	token := registerTestUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/wardrobe/detect-clothes", token, map[string]string{
		"imageUrl": "/uploads/black-jeans.jpg",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 from detect-clothes, got %d", w.Code)
	}

	detection := decodeBody(t, w)["detection"].(map[string]interface{})
	if detection["type"] != "jeans" || detection["category"] != "bottoms" {
		t.Errorf("Expected jeans/bottoms, got %v/%v", detection["type"], detection["category"])
	}
	if detection["detectionMethod"] != "jeans_detected" {
		t.Errorf("Expected jeans_detected method, got %v", detection["detectionMethod"])
	}

	w = doJSON(t, r, http.MethodPost, "/api/wardrobe/detect-clothes", token, map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without imageUrl, got %d", w.Code)
	}
}

func TestRecommendOutfitEmptyWardrobe(t *testing.T) {
	r, db := setupTestRouter(t)
	defer db.Close()

	token := registerTestUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/recommendations/recommend-outfit", token, map[string]string{
		"occasion": "casual",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 with empty wardrobe, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	recs, ok := body["recommendations"].([]interface{})
	if !ok {
		t.Fatalf("Expected recommendations to be a JSON array, got %v", body["recommendations"])
	}
	if len(recs) != 0 {
		t.Errorf("Expected no recommendations for empty wardrobe, got %d", len(recs))
	}

	// No API key configured, so the fallback reading is returned.
	weatherBody := body["weather"].(map[string]interface{})
	if weatherBody["temperature"].(float64) != 22 || weatherBody["condition"] != "clear" {
		t.Errorf("Expected fallback weather {22, clear}, got %v", weatherBody)
	}

	w = doJSON(t, r, http.MethodPost, "/api/recommendations/recommend-outfit", token, map[string]string{
		"occasion": "festival",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown occasion, got %d", w.Code)
	}
}

func TestTripPlannerFlow(t *testing.T) {
	r, db := setupTestRouter(t)
	defer db.Close()

	token := registerTestUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/trips/trip-planner", token, map[string]interface{}{
		"destination": "Lisbon",
		"start_date":  "2026-10-01",
		"end_date":    "2026-10-03",
		"trip_type":   "sabbatical",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown trip type, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/trips/trip-planner", token, map[string]interface{}{
		"destination": "Lisbon",
		"start_date":  "2026-10-03",
		"end_date":    "2026-10-01",
		"trip_type":   "vacation",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for inverted dates, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/trips/trip-planner", token, map[string]interface{}{
		"destination": "Lisbon",
		"start_date":  "2026-10-01",
		"end_date":    "2026-10-03",
		"trip_type":   "vacation",
		"activities":  []string{"beach"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 from trip-planner, got %d: %s", w.Code, w.Body.String())
	}

	trip := decodeBody(t, w)["trip"].(map[string]interface{})
	tripID := trip["id"].(string)
	if outfits := trip["outfits"].([]interface{}); len(outfits) != 3 {
		t.Errorf("Expected 3 day outfits for a 3-day trip, got %d", len(outfits))
	}

	w = doJSON(t, r, http.MethodPut, "/api/trips/"+tripID, token, map[string]interface{}{
		"destination": "Porto",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 from trip update, got %d: %s", w.Code, w.Body.String())
	}
	updated := decodeBody(t, w)["trip"].(map[string]interface{})
	if updated["destination"] != "Porto" {
		t.Errorf("Expected destination Porto, got %v", updated["destination"])
	}

	// Moving only the end date must not invert the stored range.
	w = doJSON(t, r, http.MethodPut, "/api/trips/"+tripID, token, map[string]interface{}{
		"end_date": "2026-09-30",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 when end_date moves before start_date, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/trips/"+tripID, token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 from trip delete, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/trips/"+tripID, token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for deleted trip, got %d", w.Code)
	}
}

func TestNotificationsCreatedBySideEffects(t *testing.T) {
	r, db := setupTestRouter(t)
	defer db.Close()

	token := registerTestUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/wardrobe/add-to-wardrobe", token, map[string]interface{}{
		"name": "Shirt", "type": "shirt", "category": "tops",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 from add-to-wardrobe, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/notifications", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 from notifications, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["unreadCount"].(float64) != 1 {
		t.Fatalf("Expected 1 unread notification after adding item, got %v", body["unreadCount"])
	}

	notifications := body["notifications"].([]interface{})
	first := notifications[0].(map[string]interface{})
	if first["type"] != "cloth_added" {
		t.Errorf("Expected cloth_added notification, got %v", first["type"])
	}

	w = doJSON(t, r, http.MethodPatch, "/api/notifications/"+first["id"].(string)+"/read", token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 from mark-read, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/notifications", token, nil)
	if decodeBody(t, w)["unreadCount"].(float64) != 0 {
		t.Error("Expected 0 unread after marking read")
	}
}
