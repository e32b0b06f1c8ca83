package testhelpers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/nutriplan/backend/internal/models"
	"github.com/pageza/nutriplan/backend/internal/service"
)

// TestJWTSecret signs tokens in handler and router tests
const TestJWTSecret = "test-jwt-secret"

// Fixtures creates rows for tests and fails the test on any error
type Fixtures struct {
	t     *testing.T
	db    *gorm.DB
	units map[string]*models.MeasurementUnit
}

func NewFixtures(t *testing.T, db *gorm.DB) *Fixtures {
	return &Fixtures{t: t, db: db, units: make(map[string]*models.MeasurementUnit)}
}

func (f *Fixtures) create(v interface{}) {
	f.t.Helper()
	if err := f.db.Create(v).Error; err != nil {
		f.t.Fatalf("failed to create fixture %T: %v", v, err)
	}
}

// Unit returns the unit with the given abbreviation, creating it once
func (f *Fixtures) Unit(abbr string) *models.MeasurementUnit {
	f.t.Helper()
	if u, ok := f.units[abbr]; ok {
		return u
	}
	u := &models.MeasurementUnit{Abbreviation: abbr, Name: abbr, Active: true}
	f.create(u)
	f.units[abbr] = u
	return u
}

// ProductBase creates a catalog product whose profile is expressed per
// 100 of unitAbbr.
func (f *Fixtures) ProductBase(name, unitAbbr string, values models.NutrientValues) *models.ProductBase {
	f.t.Helper()
	unit := f.Unit(unitAbbr)
	p := &models.ProductBase{Name: name, MeasurementUnitID: &unit.ID}
	f.create(p)
	info := &models.NutritionalInfo{ProductBaseID: p.ID, NutrientValues: values}
	f.create(info)
	p.MeasurementUnit = unit
	p.NutritionalInfo = info
	return p
}

// UserProduct creates a product owned by userID, linked to base when it is
// not nil.
func (f *Fixtures) UserProduct(userID uuid.UUID, name string, base *models.ProductBase) *models.UserProduct {
	f.t.Helper()
	p := &models.UserProduct{UserID: userID, Name: name}
	if base != nil {
		p.ProductBaseID = &base.ID
	}
	f.create(p)
	return p
}

// Override attaches a nutrient profile to a user product
func (f *Fixtures) Override(p *models.UserProduct, refQty float64, refUnit string, values models.NutrientValues) *models.UserProductNutritionalInfo {
	f.t.Helper()
	info := &models.UserProductNutritionalInfo{
		UserProductID:     p.ID,
		ReferenceQuantity: &refQty,
		ReferenceUnit:     refUnit,
		NutrientValues:    values,
	}
	f.create(info)
	return info
}

// Diet creates a diet for userID starting at start
func (f *Fixtures) Diet(userID uuid.UUID, active bool, start time.Time) *models.Diet {
	f.t.Helper()
	d := &models.Diet{
		UserID:    userID,
		Name:      "Test diet",
		Objective: models.ObjectiveMaintenance,
		IsActive:  active,
		StartDate: start,
	}
	f.create(d)
	return d
}

func (f *Fixtures) Meal(dietID uuid.UUID, mealType string, order int) *models.Meal {
	f.t.Helper()
	m := &models.Meal{DietID: dietID, MealType: mealType, MealOrder: order}
	f.create(m)
	return m
}

func (f *Fixtures) DietItem(mealID uuid.UUID, ref models.ProductRef, qty float64, unitAbbr string) *models.DietItem {
	f.t.Helper()
	unit := f.Unit(unitAbbr)
	item := &models.DietItem{MealID: mealID, Quantity: qty, MeasurementUnitID: &unit.ID}
	item.SetProduct(ref)
	f.create(item)
	return item
}

func (f *Fixtures) Inventory(userID uuid.UUID, ref models.ProductRef, qty float64, unitAbbr string) *models.InventoryEntry {
	f.t.Helper()
	unit := f.Unit(unitAbbr)
	e := &models.InventoryEntry{UserID: userID, Quantity: qty, MeasurementUnitID: &unit.ID}
	e.SetProduct(ref)
	f.create(e)
	return e
}

// IssueTestToken returns a bearer token for userID signed with TestJWTSecret
func IssueTestToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := service.NewTokenService(TestJWTSecret).IssueToken(userID, "user@example.com", time.Hour)
	if err != nil {
		t.Fatalf("failed to issue test token: %v", err)
	}
	return token
}

// Float returns a pointer to v
func Float(v float64) *float64 {
	return &v
}
