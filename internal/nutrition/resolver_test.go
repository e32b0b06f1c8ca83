package nutrition

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/nutriplan/backend/internal/models"
)

func ptr(v float64) *float64 { return &v }

func unit(abbr string) *models.MeasurementUnit {
	return &models.MeasurementUnit{Model: models.Model{ID: uuid.New()}, Abbreviation: abbr, Name: abbr, Active: true}
}

func TestResolveNutrient(t *testing.T) {
	tests := []struct {
		name     string
		qty      float64
		qtyUnit  string
		value    float64
		refQty   float64
		refUnit  string
		expected float64
	}{
		{"kilograms against gram profile", 2, "kg", 50, 100, "g", 1000},
		{"grams against gram profile", 150, "g", 300, 100, "g", 450},
		{"unit for unit", 3, "unit", 120, 1, "unit", 360},
		{"millilitres match", 250, "ml", 40, 100, "ml", 100},
		{"incompatible units", 5, "ml", 50, 100, "g", 0},
		{"kg profile does not convert grams", 500, "g", 10, 1, "kg", 0},
		{"missing reference quantity defaults to 100", 200, "g", 10, 0, "g", 20},
		{"negative reference quantity defaults to 100", 200, "g", 10, -5, "g", 20},
		{"empty units never match", 2, "", 10, 1, "", 0},
		{"NaN value", 2, "g", math.NaN(), 100, "g", 0},
		{"infinite quantity", math.Inf(1), "g", 10, 100, "g", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveNutrient(tt.qty, tt.qtyUnit, tt.value, tt.refQty, tt.refUnit)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestProfileFor_OverrideWinsEvenWhenIncomplete(t *testing.T) {
	g := unit("g")
	base := &models.ProductBase{
		Model:           models.Model{ID: uuid.New()},
		Name:            "Rice",
		MeasurementUnit: g,
		NutritionalInfo: &models.NutritionalInfo{
			NutrientValues: models.NutrientValues{Calories: ptr(130), Protein: ptr(2.7)},
		},
	}
	item := &models.DietItem{
		Quantity:        200,
		MeasurementUnit: g,
		UserProduct: &models.UserProduct{
			Name:        "Brand rice",
			ProductBase: base,
			NutritionalInfo: &models.UserProductNutritionalInfo{
				NutrientValues: models.NutrientValues{Calories: ptr(150)},
			},
		},
	}

	profile, ok := ProfileFor(item)
	assert.True(t, ok)
	assert.True(t, profile.Override)
	assert.Equal(t, "g", profile.ReferenceUnit)
	assert.Equal(t, DefaultReferenceQuantity, profile.ReferenceQuantity)

	assert.InDelta(t, 300, ItemNutrient(item, models.NutrientCalories), 1e-9)
	// protein is only on the base profile and must not leak through
	assert.Equal(t, 0.0, ItemNutrient(item, models.NutrientProtein))
}

func TestProfileFor_FallsBackToLinkedBase(t *testing.T) {
	g := unit("g")
	item := &models.DietItem{
		Quantity:        0.5,
		MeasurementUnit: unit("kg"),
		UserProduct: &models.UserProduct{
			ProductBase: &models.ProductBase{
				MeasurementUnit: g,
				NutritionalInfo: &models.NutritionalInfo{
					NutrientValues: models.NutrientValues{Protein: ptr(20)},
				},
			},
		},
	}

	profile, ok := ProfileFor(item)
	assert.True(t, ok)
	assert.False(t, profile.Override)
	assert.InDelta(t, 100, ItemNutrient(item, models.NutrientProtein), 1e-9)
}

func TestProfileFor_CustomOverrideBasis(t *testing.T) {
	item := &models.DietItem{
		Quantity:        2,
		MeasurementUnit: unit("slice"),
		UserProduct: &models.UserProduct{
			NutritionalInfo: &models.UserProductNutritionalInfo{
				ReferenceQuantity: ptr(1),
				ReferenceUnit:     "slice",
				NutrientValues:    models.NutrientValues{Calories: ptr(80)},
			},
		},
	}
	assert.InDelta(t, 160, ItemNutrient(item, models.NutrientCalories), 1e-9)
}

func TestItemNutrient_NoProfile(t *testing.T) {
	item := &models.DietItem{Quantity: 100, MeasurementUnit: unit("g"), ProductBase: &models.ProductBase{Name: "Water"}}
	_, ok := ProfileFor(item)
	assert.False(t, ok)
	assert.Equal(t, 0.0, ItemNutrient(item, models.NutrientCalories))
	assert.Equal(t, 0.0, ItemNutrient(nil, models.NutrientCalories))
}

func TestItemNutrient_MissingItemUnit(t *testing.T) {
	item := &models.DietItem{
		Quantity: 100,
		ProductBase: &models.ProductBase{
			MeasurementUnit: unit("g"),
			NutritionalInfo: &models.NutritionalInfo{NutrientValues: models.NutrientValues{Calories: ptr(100)}},
		},
	}
	assert.Equal(t, 0.0, ItemNutrient(item, models.NutrientCalories))
}
