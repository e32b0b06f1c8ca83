// Package nutrition scales nutrient profiles to item quantities and rolls
// them up per meal and per diet. Nothing in this package performs I/O.
package nutrition

import (
	"math"

	"github.com/pageza/nutriplan/backend/internal/models"
)

// DefaultReferenceQuantity is the basis of a profile when none is recorded
const DefaultReferenceQuantity = 100.0

const gramsPerKilogram = 1000.0

// ResolveNutrient scales nutrientValue, expressed per referenceQuantity of
// referenceUnit, to quantity of quantityUnit.
//
// A gram-based profile accepts quantities in g or kg. Any other profile only
// accepts quantities in exactly the same unit. Every other combination
// resolves to 0 rather than an error, so a single unconvertible item never
// breaks a total.
func ResolveNutrient(quantity float64, quantityUnit string, nutrientValue, referenceQuantity float64, referenceUnit string) float64 {
	if !finite(quantity) || !finite(nutrientValue) {
		return 0
	}
	if !finite(referenceQuantity) || referenceQuantity <= 0 {
		referenceQuantity = DefaultReferenceQuantity
	}

	var result float64
	switch {
	case referenceUnit == models.UnitGram && isMassUnit(quantityUnit):
		grams := quantity
		if quantityUnit == models.UnitKilogram {
			grams = quantity * gramsPerKilogram
		}
		result = (nutrientValue / referenceQuantity) * grams
	case referenceUnit != "" && referenceUnit == quantityUnit:
		result = (nutrientValue * quantity) / referenceQuantity
	default:
		return 0
	}

	if !finite(result) {
		return 0
	}
	return result
}

func isMassUnit(unit string) bool {
	return unit == models.UnitGram || unit == models.UnitKilogram
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Profile is the nutrient basis chosen for a diet item
type Profile struct {
	Values            models.NutrientValues
	ReferenceQuantity float64
	ReferenceUnit     string
	// Override is true when the profile comes from the user product
	Override bool
}

// ProfileFor picks the profile used for item. A user product override wins
// over the catalog profile even when it leaves fields unset. ok is false
// when the item has no profile at all.
func ProfileFor(item *models.DietItem) (Profile, bool) {
	if item == nil {
		return Profile{}, false
	}

	if up := item.UserProduct; up != nil && up.NutritionalInfo != nil {
		info := up.NutritionalInfo
		refUnit := info.ReferenceUnit
		if refUnit == "" {
			refUnit = models.UnitGram
		}
		return Profile{
			Values:            info.NutrientValues,
			ReferenceQuantity: referenceQuantity(info.ReferenceQuantity),
			ReferenceUnit:     refUnit,
			Override:          true,
		}, true
	}

	base := item.ProductBase
	if base == nil && item.UserProduct != nil {
		base = item.UserProduct.ProductBase
	}
	if base == nil || base.NutritionalInfo == nil {
		return Profile{}, false
	}

	refUnit := ""
	if base.MeasurementUnit != nil {
		refUnit = base.MeasurementUnit.Abbreviation
	}
	return Profile{
		Values:            base.NutritionalInfo.NutrientValues,
		ReferenceQuantity: referenceQuantity(base.NutritionalInfo.ReferenceQuantity),
		ReferenceUnit:     refUnit,
	}, true
}

func referenceQuantity(q *float64) float64 {
	if q == nil || *q <= 0 {
		return DefaultReferenceQuantity
	}
	return *q
}

// ItemNutrient returns the contribution of a single diet item to key.
// Missing profiles, missing fields and unconvertible units all give 0.
func ItemNutrient(item *models.DietItem, key string) float64 {
	profile, ok := ProfileFor(item)
	if !ok {
		return 0
	}
	value, ok := profile.Values.Get(key)
	if !ok {
		return 0
	}
	return ResolveNutrient(item.Quantity, item.UnitAbbreviation(), value, profile.ReferenceQuantity, profile.ReferenceUnit)
}
