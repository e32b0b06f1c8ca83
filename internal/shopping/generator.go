// Package shopping turns the active diet of a user into a shopping list for
// a number of days, net of what is already in the inventory.
package shopping

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/nutriplan/backend/internal/database"
	"github.com/pageza/nutriplan/backend/internal/models"
)

// Horizon bounds, in days
const (
	DefaultDays = 7
	MinDays     = 1
	MaxDays     = 90
)

// Store is the data access the generator needs
type Store interface {
	// GetActiveDiet returns nil, nil when the user has no active diet
	GetActiveDiet(ctx context.Context, userID uuid.UUID) (*models.Diet, error)
	GetMeals(ctx context.Context, dietID uuid.UUID) ([]models.Meal, error)
	// GetDietItems returns the items of the given meals with products,
	// profiles and units loaded
	GetDietItems(ctx context.Context, mealIDs []uuid.UUID) ([]models.DietItem, error)
	GetInventory(ctx context.Context, userID uuid.UUID) ([]models.InventoryEntry, error)
	CreateShoppingList(ctx context.Context, userID uuid.UUID, name string, isAutoGenerated bool) (*models.ShoppingList, error)
	InsertShoppingListItems(ctx context.Context, listID uuid.UUID, items []models.ShoppingListItem) error
	DeleteShoppingList(ctx context.Context, listID uuid.UUID) error
}

// Need is the requirement for one product over the horizon
type Need struct {
	Product           models.ProductRef `json:"product"`
	Needed            float64           `json:"needed"`
	Stock             float64           `json:"stock"`
	ToBuy             float64           `json:"to_buy"`
	MeasurementUnitID *uuid.UUID        `json:"measurement_unit_id,omitempty"`
}

// Result describes a successfully generated list
type Result struct {
	ShoppingListID uuid.UUID `json:"shoppingListId"`
	Name           string    `json:"name"`
	ItemsCount     int       `json:"itemsCount"`
	Items          []Need    `json:"items"`
}

type Generator struct {
	store Store
	now   func() time.Time
}

func NewGenerator(store Store) *Generator {
	return &Generator{store: store, now: time.Now}
}

// WithClock replaces the clock used to name generated lists
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// ListName is the name given to a list generated at t
func ListName(t time.Time) string {
	return "Generated list " + t.Format("02/01/2006")
}

// Generate builds and stores a shopping list covering days of the user's
// active diet. Every failure is a *GenerationError.
func (g *Generator) Generate(ctx context.Context, userID uuid.UUID, days int) (*Result, error) {
	if userID == uuid.Nil {
		return nil, newError(KindInvalidInput, "user id is required", nil)
	}
	if days < MinDays || days > MaxDays {
		return nil, newError(KindInvalidInput, fmt.Sprintf("days must be between %d and %d", MinDays, MaxDays), nil)
	}

	diet, err := g.store.GetActiveDiet(ctx, userID)
	if err != nil {
		return nil, newError(KindPersistenceFailure, "failed to load active diet", err)
	}
	if diet == nil {
		return nil, newError(KindNoActiveDiet, ErrNoActiveDiet.Message, nil)
	}

	meals, err := g.store.GetMeals(ctx, diet.ID)
	if err != nil {
		return nil, newError(KindPersistenceFailure, "failed to load meals", err)
	}
	if len(meals) == 0 {
		return nil, newError(KindEmptyDiet, "diet has no meals", nil)
	}

	mealIDs := make([]uuid.UUID, len(meals))
	for i, m := range meals {
		mealIDs[i] = m.ID
	}
	items, err := g.store.GetDietItems(ctx, mealIDs)
	if err != nil {
		return nil, newError(KindPersistenceFailure, "failed to load diet items", err)
	}
	if len(items) == 0 {
		return nil, newError(KindEmptyDiet, ErrEmptyDiet.Message, nil)
	}

	needs := ComputeNeeds(items, days)
	if len(needs) == 0 {
		return nil, newError(KindEmptyDiet, ErrEmptyDiet.Message, nil)
	}

	var stock map[string]float64
	inventory, err := g.store.GetInventory(ctx, userID)
	switch {
	case database.IsUndefinedTable(err):
		log.Printf("[ShoppingListGenerator] inventory table missing, assuming empty stock for user %s: %v", userID, err)
	case err != nil:
		log.Printf("[ShoppingListGenerator] inventory unavailable for user %s, assuming empty stock: %v", userID, err)
	default:
		stock = StockByProduct(inventory)
	}

	toBuy := Diff(needs, stock)
	if len(toBuy) == 0 {
		return nil, newError(KindNothingToBuy, ErrNothingToBuy.Message, nil)
	}

	name := ListName(g.now().UTC())
	list, err := g.store.CreateShoppingList(ctx, userID, name, true)
	if err != nil {
		return nil, newError(KindPersistenceFailure, "failed to create shopping list", err)
	}

	rows := make([]models.ShoppingListItem, 0, len(toBuy))
	for _, n := range toBuy {
		row := models.ShoppingListItem{
			ShoppingListID:    list.ID,
			Quantity:          n.ToBuy,
			MeasurementUnitID: n.MeasurementUnitID,
			IsPurchased:       false,
		}
		row.SetProduct(n.Product)
		rows = append(rows, row)
	}

	if err := g.store.InsertShoppingListItems(ctx, list.ID, rows); err != nil {
		// the list is removed even if the request context is gone
		if delErr := g.store.DeleteShoppingList(context.WithoutCancel(ctx), list.ID); delErr != nil {
			log.Printf("[ShoppingListGenerator] failed to remove shopping list %s after item insert error: %v", list.ID, delErr)
		}
		return nil, newError(KindPersistenceFailure, "failed to create shopping list items", err)
	}

	log.Printf("[ShoppingListGenerator] generated list %s for user %s with %d items over %d days", list.ID, userID, len(rows), days)

	return &Result{
		ShoppingListID: list.ID,
		Name:           list.Name,
		ItemsCount:     len(rows),
		Items:          toBuy,
	}, nil
}

// ComputeNeeds multiplies each item quantity by days and sums the result
// per product key, in order of first appearance. The unit of a key is the
// unit of its first item; later items are added without conversion.
func ComputeNeeds(items []models.DietItem, days int) []Need {
	index := make(map[string]int)
	var needs []Need
	for _, item := range items {
		ref, err := item.Product()
		if err != nil {
			log.Printf("[ShoppingListGenerator] skipping diet item %s: %v", item.ID, err)
			continue
		}
		qty := item.Quantity * float64(days)
		key := ref.Key()
		if i, ok := index[key]; ok {
			needs[i].Needed += qty
			continue
		}
		index[key] = len(needs)
		needs = append(needs, Need{
			Product:           ref,
			Needed:            qty,
			MeasurementUnitID: item.MeasurementUnitID,
		})
	}
	return needs
}

// StockByProduct sums inventory quantities per product key
func StockByProduct(entries []models.InventoryEntry) map[string]float64 {
	stock := make(map[string]float64, len(entries))
	for _, e := range entries {
		ref, err := e.Product()
		if err != nil {
			continue
		}
		stock[ref.Key()] += e.Quantity
	}
	return stock
}

// Diff subtracts stock from each need and keeps only what must be bought.
// A nil stock map means nothing is in stock.
func Diff(needs []Need, stock map[string]float64) []Need {
	var out []Need
	for _, n := range needs {
		n.Stock = stock[n.Product.Key()]
		n.ToBuy = n.Needed - n.Stock
		if n.ToBuy <= 0 {
			continue
		}
		out = append(out, n)
	}
	return out
}
