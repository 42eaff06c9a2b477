package recipe

import (
	"math"
	"strconv"
	"strings"
)

const (
	MinServings  = 0.5
	MaxServings  = 10.0
	ServingsStep = 0.5
)

// ServingPresets are the one-tap serving choices.
var ServingPresets = []int{1, 2, 3, 4}

// ScaleAmount multiplies a numeric amount by servings and formats it with at
// most one decimal. Non-numeric amounts are returned unchanged.
func ScaleAmount(amount string, servings float64) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return amount
	}
	out := strconv.FormatFloat(math.Round(v*servings*10)/10, 'f', 1, 64)
	out = strings.TrimSuffix(out, ".0")
	if out == "-0" {
		return "0"
	}
	return out
}

func ScaleIngredients(in []Ingredient, servings float64) []Ingredient {
	out := make([]Ingredient, len(in))
	for i, ing := range in {
		ing.Amount = Amount(ScaleAmount(string(ing.Amount), servings))
		out[i] = ing
	}
	return out
}

// ClampServings snaps s to the nearest half and bounds it to the allowed range.
func ClampServings(s float64) float64 {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 1
	}
	s = math.Round(s/ServingsStep) * ServingsStep
	return min(max(s, MinServings), MaxServings)
}

// ParseServings reads a servings query value; anything unparsable means 1.
func ParseServings(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 1
	}
	return ClampServings(v)
}

// FormatServings renders 1.5 as "1.5" and 2 as "2".
func FormatServings(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
