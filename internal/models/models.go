package models

import (
	"time"
)

// Closed enums for wardrobe items. The API rejects values outside these sets,
// but type and category are never cross-validated against each other: the
// detection heuristic assigns them independently and mismatches are allowed.
var (
	ItemTypes = []string{"shirt", "t-shirt", "jeans", "pants", "dress", "skirt", "jacket", "sweater", "shorts", "shoes", "accessories"}

	ItemCategories = []string{"tops", "bottoms", "dresses", "outerwear", "shoes", "accessories"}

	Fabrics = []string{"cotton", "denim", "silk", "wool", "polyester", "linen", "leather", "synthetic"}

	Seasons = []string{"spring", "summer", "fall", "winter"}

	Occasions = []string{"casual", "formal", "work", "party", "sport", "beach"}

	TripTypes = []string{"business", "vacation", "weekend", "adventure"}

	Styles = []string{"casual", "formal", "sporty", "trendy", "classic"}
)

// Notification types, created as side effects of other mutations.
const (
	NotificationClothAdded      = "cloth_added"
	NotificationClothRemoved    = "cloth_removed"
	NotificationTripPlanned     = "trip_planned"
	NotificationOutfitSuggested = "outfit_suggested"
)

func ValidEnum(value string, set []string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}

func ValidEnumSubset(values []string, set []string) bool {
	for _, v := range values {
		if !ValidEnum(v, set) {
			return false
		}
	}
	return true
}

type User struct {
	ID           int         `json:"id" db:"id"`
	Name         string      `json:"name" db:"name"`
	Email        string      `json:"email" db:"email"`
	PasswordHash string      `json:"-" db:"password_hash"`
	Preferences  Preferences `json:"preferences" db:"preferences"`
	Location     Location    `json:"location" db:"location"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

type Preferences struct {
	Style           string   `json:"style"`
	FavoriteColors  []string `json:"favorite_colors"`
	PreferredBrands []string `json:"preferred_brands"`
	BodyType        string   `json:"body_type"`
	Sizes           Sizes    `json:"sizes"`
}

type Sizes struct {
	Top    string `json:"top"`
	Bottom string `json:"bottom"`
	Shoes  string `json:"shoes"`
}

type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

type Color struct {
	Primary   string   `json:"primary"`
	Secondary []string `json:"secondary"`
}

type WardrobeItem struct {
	ID         string     `json:"id" db:"id"`
	UserID     int        `json:"user_id" db:"user_id"`
	Name       string     `json:"name" db:"name"`
	Type       string     `json:"type" db:"type"`
	Category   string     `json:"category" db:"category"`
	Color      Color      `json:"color" db:"color"`
	Fabric     string     `json:"fabric" db:"fabric"`
	Brand      string     `json:"brand" db:"brand"`
	Size       string     `json:"size" db:"size"`
	Season     []string   `json:"season" db:"season"`
	Occasion   []string   `json:"occasion" db:"occasion"`
	ImageURL   string     `json:"image_url" db:"image_url"`
	Tags       []string   `json:"tags" db:"tags"`
	IsFavorite bool       `json:"is_favorite" db:"is_favorite"`
	WearCount  int        `json:"wear_count" db:"wear_count"`
	LastWorn   *time.Time `json:"last_worn,omitempty" db:"last_worn"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// Weather is a single reading used by outfit recommendations.
type Weather struct {
	Temperature int    `json:"temperature"`
	Condition   string `json:"condition"`
}

// TripWeather is the aggregate forecast attached to a trip plan.
type TripWeather struct {
	AvgTemp    int      `json:"avg_temp"`
	Conditions []string `json:"conditions"`
}

// OutfitItem is one category-tagged item reference inside an outfit.
// Name, color and image are denormalized so saved outfits survive item edits.
type OutfitItem struct {
	ItemID   string `json:"item_id"`
	Category string `json:"category"`
	Name     string `json:"name,omitempty"`
	Color    string `json:"color,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type Outfit struct {
	ID         string       `json:"id" db:"id"`
	UserID     int          `json:"user_id" db:"user_id"`
	Name       string       `json:"name" db:"name"`
	Items      []OutfitItem `json:"items" db:"items"`
	Occasion   string       `json:"occasion" db:"occasion"`
	Season     string       `json:"season" db:"season"`
	Weather    Weather      `json:"weather" db:"weather"`
	IsFavorite bool         `json:"is_favorite" db:"is_favorite"`
	WornCount  int          `json:"worn_count" db:"worn_count"`
	Rating     *int         `json:"rating,omitempty" db:"rating"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at" db:"updated_at"`
}

// DayOutfit is one day of a trip plan's generated outfits.
type DayOutfit struct {
	Day      int      `json:"day"`
	Occasion string   `json:"occasion"`
	Items    []string `json:"items"`
}

// PackingEntry is a deduplicated packing-list line; each physical item
// appears once regardless of how many trip days reference it.
type PackingEntry struct {
	ItemID string `json:"item_id"`
	Packed bool   `json:"packed"`
}

type TripPlan struct {
	ID          string         `json:"id" db:"id"`
	UserID      int            `json:"user_id" db:"user_id"`
	Destination string         `json:"destination" db:"destination"`
	StartDate   time.Time      `json:"start_date" db:"start_date"`
	EndDate     time.Time      `json:"end_date" db:"end_date"`
	TripType    string         `json:"trip_type" db:"trip_type"`
	Activities  []string       `json:"activities" db:"activities"`
	Weather     TripWeather    `json:"weather" db:"weather"`
	Outfits     []DayOutfit    `json:"outfits" db:"outfits"`
	PackingList []PackingEntry `json:"packing_list" db:"packing_list"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

type Notification struct {
	ID        string                 `json:"id" db:"id"`
	UserID    int                    `json:"user_id" db:"user_id"`
	Type      string                 `json:"type" db:"type"`
	Title     string                 `json:"title" db:"title"`
	Message   string                 `json:"message" db:"message"`
	Data      map[string]interface{} `json:"data" db:"data"`
	Read      bool                   `json:"read" db:"read"`
	CreatedAt time.Time              `json:"created_at" db:"created_at"`
}

// Detection is the result of the filename heuristic run on an uploaded image.
type Detection struct {
	Type            string  `json:"type"`
	Category        string  `json:"category"`
	Color           Color   `json:"color"`
	Fabric          string  `json:"fabric"`
	Confidence      float64 `json:"confidence"`
	AISource        string  `json:"aiSource"`
	DetectionMethod string  `json:"detectionMethod"`
}
