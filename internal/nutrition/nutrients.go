package nutrition

import (
	"math"
	"strings"

	"github.com/pageza/nutriplan/backend/internal/models"
)

// Display units
const (
	UnitKcal      = "kcal"
	UnitGram      = "g"
	UnitMilligram = "mg"
	UnitMicrogram = "mcg"
)

type nutrientInfo struct {
	unit  string
	label string
}

var nutrientTable = map[string]nutrientInfo{
	models.NutrientCalories:      {UnitKcal, "Calories"},
	models.NutrientProtein:       {UnitGram, "Protein"},
	models.NutrientCarbohydrates: {UnitGram, "Carbohydrates"},
	models.NutrientTotalFat:      {UnitGram, "Total fat"},
	models.NutrientSaturatedFat:  {UnitGram, "Saturated fat"},
	models.NutrientTransFat:      {UnitGram, "Trans fat"},
	models.NutrientFiber:         {UnitGram, "Fiber"},
	models.NutrientSugar:         {UnitGram, "Sugar"},
	models.NutrientSodium:        {UnitMilligram, "Sodium"},
	models.NutrientCalcium:       {UnitMilligram, "Calcium"},
	models.NutrientIron:          {UnitMilligram, "Iron"},
	models.NutrientMagnesium:     {UnitMilligram, "Magnesium"},
	models.NutrientPotassium:     {UnitMilligram, "Potassium"},
	models.NutrientZinc:          {UnitMilligram, "Zinc"},
	models.NutrientVitaminA:      {UnitMicrogram, "Vitamin A"},
	models.NutrientVitaminB1:     {UnitMilligram, "Vitamin B1"},
	models.NutrientVitaminB2:     {UnitMilligram, "Vitamin B2"},
	models.NutrientVitaminB3:     {UnitMilligram, "Vitamin B3"},
	models.NutrientVitaminB6:     {UnitMilligram, "Vitamin B6"},
	models.NutrientVitaminB12:    {UnitMicrogram, "Vitamin B12"},
	models.NutrientVitaminC:      {UnitMilligram, "Vitamin C"},
	models.NutrientVitaminD:      {UnitMicrogram, "Vitamin D"},
	models.NutrientVitaminE:      {UnitMilligram, "Vitamin E"},
	models.NutrientVitaminK:      {UnitMicrogram, "Vitamin K"},
	models.NutrientCholesterol:   {UnitMilligram, "Cholesterol"},
}

// nutrientOrder is the display order of every known key
var nutrientOrder = []string{
	models.NutrientCalories,
	models.NutrientProtein,
	models.NutrientCarbohydrates,
	models.NutrientTotalFat,
	models.NutrientSaturatedFat,
	models.NutrientTransFat,
	models.NutrientFiber,
	models.NutrientSugar,
	models.NutrientSodium,
	models.NutrientCalcium,
	models.NutrientIron,
	models.NutrientMagnesium,
	models.NutrientPotassium,
	models.NutrientZinc,
	models.NutrientVitaminA,
	models.NutrientVitaminB1,
	models.NutrientVitaminB2,
	models.NutrientVitaminB3,
	models.NutrientVitaminB6,
	models.NutrientVitaminB12,
	models.NutrientVitaminC,
	models.NutrientVitaminD,
	models.NutrientVitaminE,
	models.NutrientVitaminK,
	models.NutrientCholesterol,
}

// DefaultTrackedNutrients is used when a diet has no stored preference
var DefaultTrackedNutrients = []string{
	models.NutrientCalories,
	models.NutrientCarbohydrates,
	models.NutrientProtein,
}

// KnownNutrients returns every supported key in display order
func KnownNutrients() []string {
	out := make([]string, len(nutrientOrder))
	copy(out, nutrientOrder)
	return out
}

func IsKnownNutrient(key string) bool {
	_, ok := nutrientTable[key]
	return ok
}

// UnitFor returns the display unit of key, or "" for unknown keys
func UnitFor(key string) string {
	return nutrientTable[key].unit
}

// LabelFor returns a human readable name for key
func LabelFor(key string) string {
	if info, ok := nutrientTable[key]; ok {
		return info.label
	}
	return key
}

// DefaultTracked returns a copy of DefaultTrackedNutrients
func DefaultTracked() []string {
	out := make([]string, len(DefaultTrackedNutrients))
	copy(out, DefaultTrackedNutrients)
	return out
}

// NormalizeTrackedNutrients lowercases, de-duplicates and drops unknown
// keys while keeping the caller's order. An empty result falls back to the
// default set.
func NormalizeTrackedNutrients(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.ToLower(strings.TrimSpace(k))
		if !IsKnownNutrient(k) || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	if len(out) == 0 {
		return DefaultTracked()
	}
	return out
}

// UnknownNutrients returns the keys that are not supported
func UnknownNutrients(keys []string) []string {
	var unknown []string
	for _, k := range keys {
		if !IsKnownNutrient(strings.ToLower(strings.TrimSpace(k))) {
			unknown = append(unknown, k)
		}
	}
	return unknown
}

// RoundForDisplay applies the display precision of unit: whole numbers for
// kcal, mg and mcg, two decimals for grams.
func RoundForDisplay(value float64, unit string) float64 {
	switch unit {
	case UnitGram:
		return round2(value)
	default:
		return math.Round(value)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
