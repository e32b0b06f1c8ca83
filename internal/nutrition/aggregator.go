package nutrition

import (
	"math"

	"github.com/google/uuid"
	"github.com/pageza/nutriplan/backend/internal/models"
)

// Target comparison statuses
const (
	StatusRemaining = "remaining"
	StatusExcess    = "excess"
)

// Amount is a rounded total in its display unit
type Amount struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// TargetComparison relates a total to the diet target for the same nutrient.
// Difference is always non-negative; Status says which side of the target
// the total falls on.
type TargetComparison struct {
	Target     float64 `json:"target"`
	Difference float64 `json:"difference"`
	Status     string  `json:"status"`
}

// NutrientTotal is one line of a totals table
type NutrientTotal struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Amount
	Target *TargetComparison `json:"target,omitempty"`
}

type MealTotals struct {
	MealID   uuid.UUID       `json:"meal_id"`
	MealType string          `json:"meal_type"`
	Name     string          `json:"name,omitempty"`
	Totals   []NutrientTotal `json:"totals"`
}

type DietTotals struct {
	DietID           uuid.UUID       `json:"diet_id"`
	TrackedNutrients []string        `json:"tracked_nutrients"`
	Totals           []NutrientTotal `json:"totals"`
	Meals            []MealTotals    `json:"meals"`
}

// Aggregate sums the contribution of every item to key and rounds the
// result for display. An unknown key yields a zero value with no unit.
func Aggregate(items []models.DietItem, key string) Amount {
	var sum float64
	for i := range items {
		sum += ItemNutrient(&items[i], key)
	}
	unit := UnitFor(key)
	return Amount{Value: RoundForDisplay(sum, unit), Unit: unit}
}

// AggregateAll aggregates items once per key
func AggregateAll(items []models.DietItem, keys []string) map[string]Amount {
	out := make(map[string]Amount, len(keys))
	for _, key := range keys {
		out[key] = Aggregate(items, key)
	}
	return out
}

// Targets holds the diet-level goals. Only calories and the three macros
// can carry a target.
type Targets struct {
	Calories      *float64
	Protein       *float64
	Carbohydrates *float64
	Fat           *float64
}

func TargetsFromDiet(d *models.Diet) Targets {
	if d == nil {
		return Targets{}
	}
	return Targets{
		Calories:      d.TargetCalories,
		Protein:       d.TargetProtein,
		Carbohydrates: d.TargetCarbohydrates,
		Fat:           d.TargetFat,
	}
}

// For returns the target for key, if one is set
func (t Targets) For(key string) (float64, bool) {
	var v *float64
	switch key {
	case models.NutrientCalories:
		v = t.Calories
	case models.NutrientCarbohydrates:
		v = t.Carbohydrates
	case models.NutrientProtein:
		v = t.Protein
	case models.NutrientTotalFat:
		v = t.Fat
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// CompareTarget computes target minus the displayed total.
func CompareTarget(actual Amount, target float64) TargetComparison {
	diff := round2(target - actual.Value)
	status := StatusRemaining
	if diff < 0 {
		status = StatusExcess
	}
	return TargetComparison{
		Target:     RoundForDisplay(target, actual.Unit),
		Difference: math.Abs(diff),
		Status:     status,
	}
}

// Totals builds the totals table for items in the order of keys. Targets
// are attached where t has a value for the key.
func Totals(items []models.DietItem, keys []string, t Targets) []NutrientTotal {
	out := make([]NutrientTotal, 0, len(keys))
	for _, key := range keys {
		amount := Aggregate(items, key)
		line := NutrientTotal{Key: key, Label: LabelFor(key), Amount: amount}
		if target, ok := t.For(key); ok {
			cmp := CompareTarget(amount, target)
			line.Target = &cmp
		}
		out = append(out, line)
	}
	return out
}

// SummarizeMeal totals a single meal. Meals carry no targets.
func SummarizeMeal(meal *models.Meal, keys []string) MealTotals {
	return MealTotals{
		MealID:   meal.ID,
		MealType: meal.MealType,
		Name:     meal.Name,
		Totals:   Totals(meal.Items, keys, Targets{}),
	}
}

// SummarizeDiet totals every meal of diet and the diet as a whole. The diet
// must have its meals and items loaded.
func SummarizeDiet(diet *models.Diet, keys []string) DietTotals {
	var all []models.DietItem
	meals := make([]MealTotals, 0, len(diet.Meals))
	for i := range diet.Meals {
		meals = append(meals, SummarizeMeal(&diet.Meals[i], keys))
		all = append(all, diet.Meals[i].Items...)
	}
	return DietTotals{
		DietID:           diet.ID,
		TrackedNutrients: keys,
		Totals:           Totals(all, keys, TargetsFromDiet(diet)),
		Meals:            meals,
	}
}
