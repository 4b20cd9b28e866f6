package stylist

import (
	"math"
	"math/rand"
	"time"

	"wardrobeiq/internal/models"
)

// TripParams describes the trip being planned.
type TripParams struct {
	StartDate time.Time
	EndDate   time.Time
	TripType  string
	Weather   models.TripWeather
}

var tripOccasions = map[string][]string{
	"business":  {"formal", "work"},
	"vacation":  {"casual", "party"},
	"weekend":   {"casual", "sport"},
	"adventure": {"sport", "casual"},
}

// OccasionsForTripType returns the occasion pool for a trip type; unknown
// types fall back to casual.
func OccasionsForTripType(tripType string) []string {
	if occasions, ok := tripOccasions[tripType]; ok {
		return occasions
	}
	return []string{"casual"}
}

// TripDays counts the days of a trip, inclusive of both endpoints.
func TripDays(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours()/24)) + 1
	if days < 1 {
		return 1
	}
	return days
}

// PlanTrip builds one outfit per trip day and a packing list deduplicated by
// item id. Categories with no suitable item are simply absent from a day's
// outfit; a day can end up with an empty item list.
func PlanTrip(items []models.WardrobeItem, params TripParams, rng *rand.Rand) ([]models.DayOutfit, []models.PackingEntry) {
	days := TripDays(params.StartDate, params.EndDate)
	pool := OccasionsForTripType(params.TripType)
	avgTemp := params.Weather.AvgTemp

	var suitable []models.WardrobeItem
	for _, item := range items {
		if !intersects(item.Occasion, pool) {
			continue
		}
		if avgTemp > 20 && isHeavyLayer(item.Type) {
			continue
		}
		suitable = append(suitable, item)
	}

	groups := partitionByCategory(suitable)

	var outfits []models.DayOutfit
	for day := 1; day <= days; day++ {
		outfit := models.DayOutfit{
			Day:      day,
			Occasion: pool[rng.Intn(len(pool))],
			Items:    []string{},
		}

		for _, category := range []string{"tops", "bottoms", "shoes"} {
			if candidates := groups[category]; len(candidates) > 0 {
				outfit.Items = append(outfit.Items, candidates[rng.Intn(len(candidates))].ID)
			}
		}

		if avgTemp < 15 {
			if outerwear := groups["outerwear"]; len(outerwear) > 0 {
				outfit.Items = append(outfit.Items, outerwear[rng.Intn(len(outerwear))].ID)
			}
		}

		outfits = append(outfits, outfit)
	}

	return outfits, buildPackingList(outfits)
}

// buildPackingList flattens day outfits into one entry per distinct item,
// each initially unpacked.
func buildPackingList(outfits []models.DayOutfit) []models.PackingEntry {
	seen := make(map[string]bool)
	packingList := []models.PackingEntry{}

	for _, outfit := range outfits {
		for _, itemID := range outfit.Items {
			if seen[itemID] {
				continue
			}
			seen[itemID] = true
			packingList = append(packingList, models.PackingEntry{ItemID: itemID, Packed: false})
		}
	}

	return packingList
}
