// Package detect guesses a clothing item's type, category and color from an
// uploaded file's name. No image inspection happens; the "analysis" is an
// ordered substring scan, and the first matching rule wins.
package detect

import (
	"path"
	"strings"

	"wardrobeiq/internal/models"
)

type typeRule struct {
	keywords []string
	itemType string
	category string
}

// Rules are checked in priority order: a filename like "jeans-dress.jpg" is
// classified as jeans because the jeans rule precedes the dress rule.
var typeRules = []typeRule{
	{[]string{"jean", "denim"}, "jeans", "bottoms"},
	{[]string{"dress"}, "dress", "dresses"},
	{[]string{"shoe", "sneaker", "boot"}, "shoes", "shoes"},
	{[]string{"pant", "trouser", "chino"}, "pants", "bottoms"},
	{[]string{"short"}, "shorts", "bottoms"},
	{[]string{"jacket", "coat"}, "jacket", "outerwear"},
	{[]string{"sweater", "hoodie"}, "sweater", "outerwear"},
	{[]string{"skirt"}, "skirt", "bottoms"},
	{[]string{"tshirt", "t-shirt"}, "t-shirt", "tops"},
}

type colorRule struct {
	keywords []string
	color    string
}

var colorRules = []colorRule{
	{[]string{"black"}, "black"},
	{[]string{"white"}, "white"},
	{[]string{"red"}, "red"},
	{[]string{"green"}, "green"},
	{[]string{"yellow"}, "yellow"},
	{[]string{"brown"}, "brown"},
	{[]string{"grey", "gray"}, "gray"},
	{[]string{"pink"}, "pink"},
	{[]string{"purple"}, "purple"},
	{[]string{"orange"}, "orange"},
}

const (
	defaultType     = "shirt"
	defaultCategory = "tops"
	defaultColor    = "blue"
)

// Detect runs the filename heuristic. It never fails: unknown filenames fall
// back to the default shirt/tops/blue tuple.
func Detect(filename string) models.Detection {
	name := strings.ToLower(path.Base(filename))

	itemType := defaultType
	category := defaultCategory
	method := "default"

	for _, rule := range typeRules {
		if containsAny(name, rule.keywords) {
			itemType = rule.itemType
			category = rule.category
			if itemType == "jeans" {
				method = "jeans_detected"
			}
			break
		}
	}

	color := defaultColor
	for _, rule := range colorRules {
		if containsAny(name, rule.keywords) {
			color = rule.color
			break
		}
	}

	return models.Detection{
		Type:            itemType,
		Category:        category,
		Color:           models.Color{Primary: color, Secondary: []string{}},
		Fabric:          "cotton",
		Confidence:      0.85,
		AISource:        "smart_detection",
		DetectionMethod: method,
	}
}

// Fallback is the hardcoded safe tuple used when anything around the upload
// flow fails; detection errors never propagate to the client.
func Fallback() models.Detection {
	return models.Detection{
		Type:            defaultType,
		Category:        defaultCategory,
		Color:           models.Color{Primary: defaultColor, Secondary: []string{}},
		Fabric:          "cotton",
		Confidence:      0.6,
		AISource:        "fallback",
		DetectionMethod: "default",
	}
}

// DefaultSeasonsForType derives a season list for items added without one:
// heavy layers get cold seasons, light pieces get warm ones, everything else
// is year-round.
func DefaultSeasonsForType(itemType string) []string {
	switch itemType {
	case "jacket", "sweater":
		return []string{"fall", "winter"}
	case "shorts", "t-shirt":
		return []string{"spring", "summer"}
	default:
		return []string{"spring", "summer", "fall", "winter"}
	}
}

// DefaultOccasionsForType derives an occasion list for items added without one.
func DefaultOccasionsForType(itemType string) []string {
	switch itemType {
	case "dress", "shirt", "shoes":
		return []string{"casual", "formal", "work"}
	case "jeans", "pants":
		return []string{"casual", "work"}
	default:
		return []string{"casual"}
	}
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
