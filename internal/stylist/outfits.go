// Package stylist assembles outfit suggestions and trip packing plans from a
// user's wardrobe. All functions are pure computation over in-memory slices;
// callers inject the random source so tests can seed it.
package stylist

import (
	"math/rand"
	"time"

	"wardrobeiq/internal/models"
)

const maxOutfits = 3

// Candidate is one generated outfit suggestion with a 0-100 match score.
// Candidates are never persisted automatically; saving is a separate action.
type Candidate struct {
	Items    []models.OutfitItem `json:"items"`
	Occasion string              `json:"occasion"`
	Weather  models.Weather      `json:"weather"`
	Score    int                 `json:"score"`
}

// SeasonsForTemperature maps a temperature reading to the set of seasons whose
// clothing suits it. Breakpoints: <10, <20, <28.
func SeasonsForTemperature(temp int) []string {
	switch {
	case temp < 10:
		return []string{"winter", "fall"}
	case temp < 20:
		return []string{"fall", "spring"}
	case temp < 28:
		return []string{"spring", "summer"}
	default:
		return []string{"summer"}
	}
}

// CurrentSeason returns the single season for the given time, used when saving
// an outfit.
func CurrentSeason(t time.Time) string {
	switch m := t.Month(); {
	case m >= time.March && m <= time.May:
		return "spring"
	case m >= time.June && m <= time.August:
		return "summer"
	case m >= time.September && m <= time.November:
		return "fall"
	default:
		return "winter"
	}
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func isHeavyLayer(itemType string) bool {
	return itemType == "jacket" || itemType == "sweater"
}

// suitableForWeather keeps an item when its seasons overlap the current season
// set, it is not a heavy layer in hot weather, and its occasions cover the
// request (casual items suit every occasion).
func suitableForWeather(item models.WardrobeItem, seasons []string, occasion string, temp int) bool {
	if !intersects(item.Season, seasons) {
		return false
	}
	if temp > 25 && isHeavyLayer(item.Type) {
		return false
	}
	return contains(item.Occasion, occasion) || contains(item.Occasion, "casual")
}

func partitionByCategory(items []models.WardrobeItem) map[string][]models.WardrobeItem {
	groups := make(map[string][]models.WardrobeItem)
	for _, item := range items {
		groups[item.Category] = append(groups[item.Category], item)
	}
	return groups
}

func toOutfitItem(item models.WardrobeItem) models.OutfitItem {
	return models.OutfitItem{
		ItemID:   item.ID,
		Category: item.Category,
		Name:     item.Name,
		Color:    item.Color.Primary,
		ImageURL: item.ImageURL,
	}
}

// BuildOutfits generates up to three outfit candidates for the occasion and
// weather. With an empty wardrobe, or none of tops/bottoms/shoes surviving the
// filter, the result is an empty slice (never nil, so it serializes as a JSON
// array) — that is a normal outcome, not an error.
func BuildOutfits(items []models.WardrobeItem, occasion string, weather models.Weather, rng *rand.Rand) []Candidate {
	outfits := make([]Candidate, 0, maxOutfits)

	if len(items) == 0 {
		return outfits
	}

	seasons := SeasonsForTemperature(weather.Temperature)

	var suitable []models.WardrobeItem
	for _, item := range items {
		if suitableForWeather(item, seasons, occasion, weather.Temperature) {
			suitable = append(suitable, item)
		}
	}

	groups := partitionByCategory(suitable)
	tops := groups["tops"]
	bottoms := groups["bottoms"]
	shoes := groups["shoes"]
	outerwear := groups["outerwear"]

	// Every candidate needs a top, a bottom and shoes.
	if len(tops) == 0 || len(bottoms) == 0 || len(shoes) == 0 {
		return outfits
	}

	shufflePartition(tops, rng)
	shufflePartition(bottoms, rng)
	shufflePartition(shoes, rng)

	for i := 0; i < maxOutfits; i++ {
		top := tops[i%len(tops)]
		bottom := bottoms[i%len(bottoms)]
		shoe := shoes[i%len(shoes)]

		outfitItems := []models.OutfitItem{
			toOutfitItem(top),
			toOutfitItem(bottom),
			toOutfitItem(shoe),
		}

		if weather.Temperature < 18 && len(outerwear) > 0 {
			outfitItems = append(outfitItems, toOutfitItem(outerwear[i%len(outerwear)]))
		}

		outfits = append(outfits, Candidate{
			Items:    outfitItems,
			Occasion: occasion,
			Weather:  weather,
			Score:    scoreOutfit(top, seasons, occasion),
		})
	}

	return outfits
}

// scoreOutfit rates a candidate from the chosen top: 70 base, +15 when the
// top's seasons overlap the current set, +15 when it lists the requested
// occasion, capped at 100.
func scoreOutfit(top models.WardrobeItem, seasons []string, occasion string) int {
	score := 70
	if intersects(top.Season, seasons) {
		score += 15
	}
	if contains(top.Occasion, occasion) {
		score += 15
	}
	if score > 100 {
		score = 100
	}
	return score
}

func shufflePartition(items []models.WardrobeItem, rng *rand.Rand) {
	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
