package shopping_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutriplan/backend/internal/mocks"
	"github.com/pageza/nutriplan/backend/internal/models"
	"github.com/pageza/nutriplan/backend/internal/shopping"
)

var fixedNow = time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store  *mocks.MockShoppingStore
	gen    *shopping.Generator
	userID uuid.UUID
	diet   *models.Diet
	meals  []models.Meal
	gramID uuid.UUID
}

func newFixture() *fixture {
	store := new(mocks.MockShoppingStore)
	userID := uuid.New()
	diet := &models.Diet{Model: models.Model{ID: uuid.New()}, UserID: userID, Name: "Cut", IsActive: true}
	meals := []models.Meal{
		{Model: models.Model{ID: uuid.New()}, DietID: diet.ID, MealType: models.MealBreakfast, MealOrder: 1},
		{Model: models.Model{ID: uuid.New()}, DietID: diet.ID, MealType: models.MealLunch, MealOrder: 2},
	}
	return &fixture{
		store:  store,
		gen:    shopping.NewGenerator(store).WithClock(func() time.Time { return fixedNow }),
		userID: userID,
		diet:   diet,
		meals:  meals,
		gramID: uuid.New(),
	}
}

func (f *fixture) item(meal int, ref models.ProductRef, qty float64) models.DietItem {
	unitID := f.gramID
	it := models.DietItem{
		Model:             models.Model{ID: uuid.New()},
		MealID:            f.meals[meal].ID,
		Quantity:          qty,
		MeasurementUnitID: &unitID,
	}
	it.SetProduct(ref)
	return it
}

func (f *fixture) expectDiet(items []models.DietItem) {
	f.store.On("GetActiveDiet", mock.Anything, f.userID).Return(f.diet, nil)
	f.store.On("GetMeals", mock.Anything, f.diet.ID).Return(f.meals, nil)
	f.store.On("GetDietItems", mock.Anything, []uuid.UUID{f.meals[0].ID, f.meals[1].ID}).Return(items, nil)
}

func TestGenerate_HappyPath(t *testing.T) {
	f := newFixture()
	product := models.BaseRef(uuid.New())
	f.expectDiet([]models.DietItem{f.item(0, product, 100), f.item(1, product, 100)})
	f.store.On("GetInventory", mock.Anything, f.userID).Return([]models.InventoryEntry{}, nil)

	list := &models.ShoppingList{Model: models.Model{ID: uuid.New()}, UserID: f.userID, Name: "Generated list 09/03/2025", IsAutoGenerated: true}
	f.store.On("CreateShoppingList", mock.Anything, f.userID, "Generated list 09/03/2025", true).Return(list, nil)

	var inserted []models.ShoppingListItem
	f.store.On("InsertShoppingListItems", mock.Anything, list.ID, mock.Anything).
		Run(func(args mock.Arguments) { inserted = args.Get(2).([]models.ShoppingListItem) }).
		Return(nil)

	result, err := f.gen.Generate(context.Background(), f.userID, 7)
	require.NoError(t, err)
	assert.Equal(t, list.ID, result.ShoppingListID)
	assert.Equal(t, 1, result.ItemsCount)

	require.Len(t, inserted, 1)
	assert.Equal(t, 1400.0, inserted[0].Quantity)
	assert.Equal(t, list.ID, inserted[0].ShoppingListID)
	assert.False(t, inserted[0].IsPurchased)
	assert.Equal(t, product.ID, *inserted[0].ProductBaseID)
	assert.Nil(t, inserted[0].UserProductID)
	assert.Equal(t, f.gramID, *inserted[0].MeasurementUnitID)

	f.store.AssertNotCalled(t, "DeleteShoppingList", mock.Anything, mock.Anything)
	f.store.AssertExpectations(t)
}

func TestGenerate_StockCoversNeed(t *testing.T) {
	f := newFixture()
	product := models.BaseRef(uuid.New())
	f.expectDiet([]models.DietItem{f.item(0, product, 100), f.item(1, product, 100)})

	stock := models.InventoryEntry{UserID: f.userID, Quantity: 1400}
	stock.SetProduct(product)
	f.store.On("GetInventory", mock.Anything, f.userID).Return([]models.InventoryEntry{stock}, nil)

	result, err := f.gen.Generate(context.Background(), f.userID, 7)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, shopping.ErrNothingToBuy))
	f.store.AssertNotCalled(t, "CreateShoppingList", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerate_NoActiveDiet(t *testing.T) {
	f := newFixture()
	f.store.On("GetActiveDiet", mock.Anything, f.userID).Return(nil, nil)

	_, err := f.gen.Generate(context.Background(), f.userID, 7)

	var genErr *shopping.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, shopping.KindNoActiveDiet, genErr.Kind)
	assert.True(t, genErr.IsDataError())
	f.store.AssertNotCalled(t, "CreateShoppingList", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerate_EmptyDiet(t *testing.T) {
	t.Run("no meals", func(t *testing.T) {
		f := newFixture()
		f.store.On("GetActiveDiet", mock.Anything, f.userID).Return(f.diet, nil)
		f.store.On("GetMeals", mock.Anything, f.diet.ID).Return([]models.Meal{}, nil)

		_, err := f.gen.Generate(context.Background(), f.userID, 7)
		assert.True(t, errors.Is(err, shopping.ErrEmptyDiet))
	})

	t.Run("meals without items", func(t *testing.T) {
		f := newFixture()
		f.expectDiet([]models.DietItem{})

		_, err := f.gen.Generate(context.Background(), f.userID, 7)
		assert.True(t, errors.Is(err, shopping.ErrEmptyDiet))
	})
}

func TestGenerate_InvalidInput(t *testing.T) {
	f := newFixture()

	for _, days := range []int{0, -1, 91} {
		_, err := f.gen.Generate(context.Background(), f.userID, days)
		assert.True(t, errors.Is(err, shopping.ErrInvalidInput), "days=%d", days)
	}

	_, err := f.gen.Generate(context.Background(), uuid.Nil, 7)
	assert.True(t, errors.Is(err, shopping.ErrInvalidInput))

	f.store.AssertNotCalled(t, "GetActiveDiet", mock.Anything, mock.Anything)
}

func TestGenerate_InsertFailureRemovesList(t *testing.T) {
	f := newFixture()
	product := models.BaseRef(uuid.New())
	f.expectDiet([]models.DietItem{f.item(0, product, 50)})
	f.store.On("GetInventory", mock.Anything, f.userID).Return(nil, nil)

	list := &models.ShoppingList{Model: models.Model{ID: uuid.New()}, UserID: f.userID}
	f.store.On("CreateShoppingList", mock.Anything, f.userID, mock.Anything, true).Return(list, nil)
	insertErr := errors.New("permission denied for table shopping_list_items")
	f.store.On("InsertShoppingListItems", mock.Anything, list.ID, mock.Anything).Return(insertErr)
	f.store.On("DeleteShoppingList", mock.Anything, list.ID).Return(nil)

	result, err := f.gen.Generate(context.Background(), f.userID, 3)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, shopping.ErrPersistenceFailure))
	assert.ErrorIs(t, err, insertErr)

	var genErr *shopping.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.False(t, genErr.IsDataError())
	f.store.AssertCalled(t, "DeleteShoppingList", mock.Anything, list.ID)
}

func TestGenerate_InventoryErrorMeansZeroStock(t *testing.T) {
	f := newFixture()
	product := models.UserRef(uuid.New())
	f.expectDiet([]models.DietItem{f.item(0, product, 2)})
	f.store.On("GetInventory", mock.Anything, f.userID).Return(nil, errors.New(`relation "inventory" does not exist`))

	list := &models.ShoppingList{Model: models.Model{ID: uuid.New()}, UserID: f.userID}
	f.store.On("CreateShoppingList", mock.Anything, f.userID, mock.Anything, true).Return(list, nil)
	f.store.On("InsertShoppingListItems", mock.Anything, list.ID, mock.Anything).Return(nil)

	result, err := f.gen.Generate(context.Background(), f.userID, 5)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, 10.0, result.Items[0].ToBuy)
	assert.Equal(t, models.ProductKindUser, result.Items[0].Product.Kind)
}

func TestGenerate_CreateListFailure(t *testing.T) {
	f := newFixture()
	f.expectDiet([]models.DietItem{f.item(0, models.BaseRef(uuid.New()), 1)})
	f.store.On("GetInventory", mock.Anything, f.userID).Return(nil, nil)
	f.store.On("CreateShoppingList", mock.Anything, f.userID, mock.Anything, true).Return(nil, errors.New("connection reset"))

	_, err := f.gen.Generate(context.Background(), f.userID, 1)
	assert.True(t, errors.Is(err, shopping.ErrPersistenceFailure))
	f.store.AssertNotCalled(t, "InsertShoppingListItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestComputeNeeds_KeepsBaseAndUserProductsApart(t *testing.T) {
	f := newFixture()
	baseID := uuid.New()
	kg := uuid.New()

	first := f.item(0, models.BaseRef(baseID), 100)
	second := f.item(1, models.BaseRef(baseID), 1)
	second.MeasurementUnitID = &kg
	user := f.item(1, models.UserRef(baseID), 30)

	needs := shopping.ComputeNeeds([]models.DietItem{first, second, user}, 2)
	require.Len(t, needs, 2)

	assert.Equal(t, baseID.String(), needs[0].Product.Key())
	assert.Equal(t, 202.0, needs[0].Needed)
	assert.Equal(t, f.gramID, *needs[0].MeasurementUnitID)

	assert.Equal(t, "user_"+baseID.String(), needs[1].Product.Key())
	assert.Equal(t, 60.0, needs[1].Needed)
}

func TestDiff(t *testing.T) {
	a := models.BaseRef(uuid.New())
	b := models.BaseRef(uuid.New())
	needs := []shopping.Need{{Product: a, Needed: 500}, {Product: b, Needed: 100}}

	out := shopping.Diff(needs, map[string]float64{a.Key(): 200, b.Key(): 150})
	require.Len(t, out, 1)
	assert.Equal(t, 300.0, out[0].ToBuy)
	assert.Equal(t, 200.0, out[0].Stock)

	assert.Len(t, shopping.Diff(needs, nil), 2)
}

func TestStockByProduct_SumsEntries(t *testing.T) {
	ref := models.BaseRef(uuid.New())
	var entries []models.InventoryEntry
	for _, q := range []float64{200, 300} {
		e := models.InventoryEntry{Quantity: q}
		e.SetProduct(ref)
		entries = append(entries, e)
	}
	entries = append(entries, models.InventoryEntry{Quantity: 1000})

	stock := shopping.StockByProduct(entries)
	assert.Len(t, stock, 1)
	assert.Equal(t, 500.0, stock[ref.Key()])
}

func TestListName(t *testing.T) {
	assert.Equal(t, "Generated list 09/03/2025", shopping.ListName(fixedNow))
}

func TestGenerate_MissingInventoryTableMeansNoStock(t *testing.T) {
	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	tests := []struct {
		name    string
		err     error
		wantLog string
	}{
		{"undefined table", fmt.Errorf("failed to get inventory: %w", &pgconn.PgError{Code: "42P01", Message: `relation "inventory" does not exist`}), "inventory table missing"},
		{"other failure", errors.New("connection reset"), "inventory unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs.Reset()
			f := newFixture()
			product := models.BaseRef(uuid.New())
			f.expectDiet([]models.DietItem{f.item(0, product, 50)})
			f.store.On("GetInventory", mock.Anything, f.userID).Return(nil, tt.err)

			list := &models.ShoppingList{Model: models.Model{ID: uuid.New()}, UserID: f.userID, Name: "Generated list 09/03/2025"}
			f.store.On("CreateShoppingList", mock.Anything, f.userID, list.Name, true).Return(list, nil)
			var inserted []models.ShoppingListItem
			f.store.On("InsertShoppingListItems", mock.Anything, list.ID, mock.Anything).
				Run(func(args mock.Arguments) { inserted = args.Get(2).([]models.ShoppingListItem) }).
				Return(nil)

			result, err := f.gen.Generate(context.Background(), f.userID, 2)
			require.NoError(t, err)
			assert.Equal(t, 1, result.ItemsCount)
			require.Len(t, inserted, 1)
			assert.Equal(t, 100.0, inserted[0].Quantity)
			assert.Contains(t, logs.String(), tt.wantLog)
		})
	}
}

func TestGenerate_ListNameUsesUTCDate(t *testing.T) {
	f := newFixture()
	// 23:30 on the 9th in UTC-5 is already the 10th in UTC
	evening := time.Date(2025, 3, 9, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	gen := shopping.NewGenerator(f.store).WithClock(func() time.Time { return evening })

	product := models.BaseRef(uuid.New())
	f.expectDiet([]models.DietItem{f.item(0, product, 10)})
	f.store.On("GetInventory", mock.Anything, f.userID).Return([]models.InventoryEntry{}, nil)

	list := &models.ShoppingList{Model: models.Model{ID: uuid.New()}, UserID: f.userID, Name: "Generated list 10/03/2025"}
	f.store.On("CreateShoppingList", mock.Anything, f.userID, "Generated list 10/03/2025", true).Return(list, nil)
	f.store.On("InsertShoppingListItems", mock.Anything, list.ID, mock.Anything).Return(nil)

	result, err := gen.Generate(context.Background(), f.userID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Generated list 10/03/2025", result.Name)
	f.store.AssertExpectations(t)
}
