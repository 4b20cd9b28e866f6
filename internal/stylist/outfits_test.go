package stylist

import (
	"math/rand"
	"testing"
	"time"

	"wardrobeiq/internal/models"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func testItem(id, itemType, category string, seasons, occasions []string) models.WardrobeItem {
	return models.WardrobeItem{
		ID:       id,
		Name:     id,
		Type:     itemType,
		Category: category,
		Color:    models.Color{Primary: "blue"},
		Season:   seasons,
		Occasion: occasions,
	}
}

func summerWardrobe() []models.WardrobeItem {
	return []models.WardrobeItem{
		testItem("top-1", "t-shirt", "tops", []string{"spring", "summer"}, []string{"casual"}),
		testItem("top-2", "shirt", "tops", []string{"summer"}, []string{"work", "casual"}),
		testItem("bottom-1", "shorts", "bottoms", []string{"summer"}, []string{"casual"}),
		testItem("shoe-1", "shoes", "shoes", []string{"spring", "summer"}, []string{"casual"}),
	}
}

func TestSeasonsForTemperature(t *testing.T) {
	tests := []struct {
		temp int
		want []string
	}{
		{5, []string{"winter", "fall"}},
		{9, []string{"winter", "fall"}},
		{10, []string{"fall", "spring"}},
		{19, []string{"fall", "spring"}},
		{20, []string{"spring", "summer"}},
		{27, []string{"spring", "summer"}},
		{28, []string{"summer"}},
		{35, []string{"summer"}},
	}

	for _, tt := range tests {
		got := SeasonsForTemperature(tt.temp)
		if len(got) != len(tt.want) {
			t.Errorf("SeasonsForTemperature(%d) = %v, want %v", tt.temp, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("SeasonsForTemperature(%d) = %v, want %v", tt.temp, got, tt.want)
				break
			}
		}
	}
}

func TestCurrentSeason(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "winter"},
		{time.March, "spring"},
		{time.July, "summer"},
		{time.October, "fall"},
		{time.December, "winter"},
	}

	for _, tt := range tests {
		at := time.Date(2026, tt.month, 15, 0, 0, 0, 0, time.UTC)
		if got := CurrentSeason(at); got != tt.want {
			t.Errorf("CurrentSeason(%v) = %s, want %s", tt.month, got, tt.want)
		}
	}
}

func TestBuildOutfitsBasics(t *testing.T) {
	weather := models.Weather{Temperature: 24, Condition: "clear"}
	outfits := BuildOutfits(summerWardrobe(), "casual", weather, testRand())

	if len(outfits) == 0 || len(outfits) > 3 {
		t.Fatalf("Expected 1-3 outfits, got %d", len(outfits))
	}

	for _, outfit := range outfits {
		categories := make(map[string]bool)
		for _, item := range outfit.Items {
			categories[item.Category] = true
		}
		for _, required := range []string{"tops", "bottoms", "shoes"} {
			if !categories[required] {
				t.Errorf("Outfit missing %s: %v", required, outfit.Items)
			}
		}
		if outfit.Score < 70 || outfit.Score > 100 {
			t.Errorf("Score %d out of range [70,100]", outfit.Score)
		}
		if outfit.Occasion != "casual" {
			t.Errorf("Expected occasion casual, got %s", outfit.Occasion)
		}
		if outfit.Weather != weather {
			t.Errorf("Expected weather echoed back, got %+v", outfit.Weather)
		}
	}
}

func TestBuildOutfitsEmptyWardrobe(t *testing.T) {
	outfits := BuildOutfits(nil, "casual", models.Weather{Temperature: 22}, testRand())
	if len(outfits) != 0 {
		t.Errorf("Expected no outfits for empty wardrobe, got %d", len(outfits))
	}
	if outfits == nil {
		t.Error("Expected an empty slice, not nil")
	}
}

func TestBuildOutfitsNoSeasonMatch(t *testing.T) {
	winterOnly := []models.WardrobeItem{
		testItem("top-1", "sweater", "tops", []string{"winter"}, []string{"casual"}),
		testItem("bottom-1", "pants", "bottoms", []string{"winter"}, []string{"casual"}),
		testItem("shoe-1", "shoes", "shoes", []string{"winter"}, []string{"casual"}),
	}

	outfits := BuildOutfits(winterOnly, "casual", models.Weather{Temperature: 30}, testRand())
	if len(outfits) != 0 {
		t.Errorf("Expected no outfits for winter wardrobe at 30 degrees, got %d", len(outfits))
	}
}

func TestBuildOutfitsMissingCategory(t *testing.T) {
	noShoes := []models.WardrobeItem{
		testItem("top-1", "t-shirt", "tops", []string{"summer"}, []string{"casual"}),
		testItem("bottom-1", "shorts", "bottoms", []string{"summer"}, []string{"casual"}),
	}

	outfits := BuildOutfits(noShoes, "casual", models.Weather{Temperature: 24}, testRand())
	if len(outfits) != 0 {
		t.Errorf("Expected no outfits without shoes, got %d", len(outfits))
	}
	if outfits == nil {
		t.Error("Expected an empty slice, not nil")
	}
}

func TestBuildOutfitsExcludesHeavyLayersInHeat(t *testing.T) {
	items := append(summerWardrobe(),
		testItem("jacket-1", "jacket", "outerwear", []string{"summer"}, []string{"casual"}))

	outfits := BuildOutfits(items, "casual", models.Weather{Temperature: 26}, testRand())
	for _, outfit := range outfits {
		for _, item := range outfit.Items {
			if item.ItemID == "jacket-1" {
				t.Error("Jacket should be excluded above 25 degrees")
			}
		}
	}
}

func TestBuildOutfitsAddsOuterwearInCold(t *testing.T) {
	items := []models.WardrobeItem{
		testItem("top-1", "shirt", "tops", []string{"fall"}, []string{"casual"}),
		testItem("bottom-1", "pants", "bottoms", []string{"fall"}, []string{"casual"}),
		testItem("shoe-1", "shoes", "shoes", []string{"fall"}, []string{"casual"}),
		testItem("jacket-1", "jacket", "outerwear", []string{"fall"}, []string{"casual"}),
	}

	outfits := BuildOutfits(items, "casual", models.Weather{Temperature: 12}, testRand())
	if len(outfits) == 0 {
		t.Fatal("Expected outfits for a complete fall wardrobe")
	}
	for _, outfit := range outfits {
		if len(outfit.Items) != 4 {
			t.Errorf("Expected 4 items including outerwear below 18 degrees, got %d", len(outfit.Items))
		}
	}
}

func TestBuildOutfitsCasualItemsSuitAnyOccasion(t *testing.T) {
	outfits := BuildOutfits(summerWardrobe(), "formal", models.Weather{Temperature: 24}, testRand())
	if len(outfits) == 0 {
		t.Error("Expected casual-tagged items to satisfy a formal request")
	}
}

func TestBuildOutfitsDeterministicWithSeed(t *testing.T) {
	weather := models.Weather{Temperature: 24}

	first := BuildOutfits(summerWardrobe(), "casual", weather, rand.New(rand.NewSource(7)))
	second := BuildOutfits(summerWardrobe(), "casual", weather, rand.New(rand.NewSource(7)))

	if len(first) != len(second) {
		t.Fatalf("Same seed produced different counts: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if len(first[i].Items) != len(second[i].Items) {
			t.Fatalf("Same seed produced different outfit sizes at %d", i)
		}
		for j := range first[i].Items {
			if first[i].Items[j].ItemID != second[i].Items[j].ItemID {
				t.Errorf("Same seed produced different item at outfit %d position %d", i, j)
			}
		}
	}
}

func TestScoreOutfit(t *testing.T) {
	seasons := []string{"spring", "summer"}

	matching := testItem("top-1", "shirt", "tops", []string{"summer"}, []string{"work"})
	if got := scoreOutfit(matching, seasons, "work"); got != 100 {
		t.Errorf("Expected score 100 for full match, got %d", got)
	}

	seasonOnly := testItem("top-2", "shirt", "tops", []string{"summer"}, []string{"casual"})
	if got := scoreOutfit(seasonOnly, seasons, "work"); got != 85 {
		t.Errorf("Expected score 85 for season-only match, got %d", got)
	}

	neither := testItem("top-3", "shirt", "tops", []string{"winter"}, []string{"casual"})
	if got := scoreOutfit(neither, seasons, "work"); got != 70 {
		t.Errorf("Expected base score 70, got %d", got)
	}
}
