package main

import (
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/nutriplan/backend/config"
	"github.com/pageza/nutriplan/backend/internal/database"
	"github.com/pageza/nutriplan/backend/internal/models"
)

var units = []models.MeasurementUnit{
	{Abbreviation: models.UnitGram, Name: "gram", Active: true},
	{Abbreviation: models.UnitKilogram, Name: "kilogram", Active: true},
	{Abbreviation: "ml", Name: "milliliter", Active: true},
	{Abbreviation: "l", Name: "liter", Active: true},
	{Abbreviation: "unit", Name: "unit", Active: true},
	{Abbreviation: "tbsp", Name: "tablespoon", Active: true},
	{Abbreviation: "tsp", Name: "teaspoon", Active: true},
	{Abbreviation: "cup", Name: "cup", Active: true},
}

type sampleProduct struct {
	name     string
	category string
	unit     string
	values   models.NutrientValues
}

func f(v float64) *float64 { return &v }

// Values per 100 g or 100 ml
var products = []sampleProduct{
	{"Rolled oats", "grains", models.UnitGram, models.NutrientValues{Calories: f(389), Protein: f(16.9), Carbohydrates: f(66.3), TotalFat: f(6.9), Fiber: f(10.6)}},
	{"White rice", "grains", models.UnitGram, models.NutrientValues{Calories: f(365), Protein: f(7.1), Carbohydrates: f(80), TotalFat: f(0.7)}},
	{"Chicken breast", "meat", models.UnitGram, models.NutrientValues{Calories: f(165), Protein: f(31), TotalFat: f(3.6), Sodium: f(74), Cholesterol: f(85)}},
	{"Egg", "dairy", models.UnitGram, models.NutrientValues{Calories: f(143), Protein: f(12.6), Carbohydrates: f(0.7), TotalFat: f(9.5), Cholesterol: f(372)}},
	{"Whole milk", "dairy", "ml", models.NutrientValues{Calories: f(61), Protein: f(3.2), Carbohydrates: f(4.8), TotalFat: f(3.3), Calcium: f(113)}},
	{"Banana", "fruit", models.UnitGram, models.NutrientValues{Calories: f(89), Protein: f(1.1), Carbohydrates: f(22.8), Fiber: f(2.6), Potassium: f(358)}},
	{"Broccoli", "vegetables", models.UnitGram, models.NutrientValues{Calories: f(34), Protein: f(2.8), Carbohydrates: f(6.6), Fiber: f(2.6), VitaminC: f(89.2)}},
	{"Olive oil", "oils", "ml", models.NutrientValues{Calories: f(884), TotalFat: f(100), SaturatedFat: f(13.8)}},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed(db); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}
	log.Printf("Seeded %d units and %d products", len(units), len(products))
}

func seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		byAbbr := make(map[string]models.MeasurementUnit, len(units))
		for _, u := range units {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "abbreviation"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "active"}),
			}).Create(&u).Error; err != nil {
				return err
			}
			// the conflict path leaves the generated id unset
			if err := tx.Where("abbreviation = ?", u.Abbreviation).First(&u).Error; err != nil {
				return err
			}
			byAbbr[u.Abbreviation] = u
		}

		for _, p := range products {
			var existing models.ProductBase
			err := tx.Where("name = ?", p.name).Limit(1).Find(&existing).Error
			if err != nil {
				return err
			}
			if existing.ID != uuid.Nil {
				log.Printf("Skipping %s (already seeded)", p.name)
				continue
			}

			unit := byAbbr[p.unit]
			base := models.ProductBase{
				Name:              p.name,
				Category:          p.category,
				MeasurementUnitID: &unit.ID,
				NutritionalInfo: &models.NutritionalInfo{
					ReferenceQuantity: f(100),
					NutrientValues:    p.values,
				},
			}
			if err := tx.Create(&base).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
