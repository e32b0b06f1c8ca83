package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Diet objectives
const (
	ObjectiveWeightLoss        = "weight_loss"
	ObjectiveWeightGain        = "weight_gain"
	ObjectiveMuscleGain        = "muscle_gain"
	ObjectiveMaintenance       = "maintenance"
	ObjectiveHealthImprovement = "health_improvement"
	ObjectiveDiseaseManagement = "disease_management"
)

// Meal types
const (
	MealBreakfast      = "breakfast"
	MealMorningSnack   = "morning_snack"
	MealLunch          = "lunch"
	MealAfternoonSnack = "afternoon_snack"
	MealDinner         = "dinner"
	MealSupper         = "supper"
	MealPreWorkout     = "pre_workout"
	MealPostWorkout    = "post_workout"
)

// IsValidObjective reports whether o is a known diet objective
func IsValidObjective(o string) bool {
	switch o {
	case ObjectiveWeightLoss, ObjectiveWeightGain, ObjectiveMuscleGain,
		ObjectiveMaintenance, ObjectiveHealthImprovement, ObjectiveDiseaseManagement:
		return true
	}
	return false
}

// IsValidMealType reports whether t is a known meal type
func IsValidMealType(t string) bool {
	switch t {
	case MealBreakfast, MealMorningSnack, MealLunch, MealAfternoonSnack,
		MealDinner, MealSupper, MealPreWorkout, MealPostWorkout:
		return true
	}
	return false
}

type Diet struct {
	Model
	UserID              uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Name                string     `gorm:"size:255;not null" json:"name"`
	Objective           string     `gorm:"size:50;not null" json:"objective"`
	IsActive            bool       `gorm:"not null;index" json:"is_active"`
	TargetCalories      *float64   `json:"target_calories,omitempty"`
	TargetProtein       *float64   `json:"target_protein,omitempty"`
	TargetCarbohydrates *float64   `json:"target_carbohydrates,omitempty"`
	TargetFat           *float64   `json:"target_fat,omitempty"`
	StartDate           time.Time  `gorm:"not null" json:"start_date"`
	EndDate             *time.Time `json:"end_date,omitempty"`
	Meals               []Meal     `gorm:"foreignKey:DietID;constraint:OnDelete:CASCADE" json:"meals,omitempty"`
}

func (Diet) TableName() string {
	return "diets"
}

type Meal struct {
	Model
	DietID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"diet_id"`
	MealType  string     `gorm:"size:50;not null" json:"meal_type"`
	Name      string     `gorm:"size:255" json:"name,omitempty"`
	MealOrder int        `gorm:"not null" json:"meal_order"`
	Items     []DietItem `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Meal) TableName() string {
	return "meals"
}

// DietItem is one product portion inside a meal
type DietItem struct {
	Model
	MealID            uuid.UUID        `gorm:"type:uuid;not null;index" json:"meal_id"`
	ProductBaseID     *uuid.UUID       `gorm:"type:uuid" json:"product_base_id,omitempty"`
	ProductBase       *ProductBase     `json:"product_base,omitempty"`
	UserProductID     *uuid.UUID       `gorm:"type:uuid" json:"user_product_id,omitempty"`
	UserProduct       *UserProduct     `json:"user_product,omitempty"`
	Quantity          float64          `gorm:"not null" json:"quantity"`
	MeasurementUnitID *uuid.UUID       `gorm:"type:uuid" json:"measurement_unit_id,omitempty"`
	MeasurementUnit   *MeasurementUnit `json:"measurement_unit,omitempty"`
	PreparationNotes  string           `gorm:"type:text" json:"preparation_notes,omitempty"`
}

func (DietItem) TableName() string {
	return "diet_items"
}

func (i *DietItem) BeforeSave(tx *gorm.DB) error {
	_, err := i.Product()
	return err
}

func (i DietItem) Product() (ProductRef, error) {
	return ParseProductRef(i.ProductBaseID, i.UserProductID)
}

func (i *DietItem) SetProduct(ref ProductRef) {
	i.ProductBaseID, i.UserProductID = ref.Columns()
}

// UnitAbbreviation returns the abbreviation of the loaded unit, or "" when
// the unit was not preloaded.
func (i DietItem) UnitAbbreviation() string {
	if i.MeasurementUnit == nil {
		return ""
	}
	return i.MeasurementUnit.Abbreviation
}

// DietPreference stores the nutrients a user tracks for a diet
type DietPreference struct {
	DietID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"diet_id"`
	TrackedNutrients JSONBStringArray `gorm:"type:jsonb;not null" json:"tracked_nutrients"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func (DietPreference) TableName() string {
	return "diet_preferences"
}
