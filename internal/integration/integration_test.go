package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/nutriplan/backend/config"
	"github.com/pageza/nutriplan/backend/internal/database"
	"github.com/pageza/nutriplan/backend/internal/models"
	"github.com/pageza/nutriplan/backend/internal/server"
	"github.com/pageza/nutriplan/backend/internal/service"
	"github.com/pageza/nutriplan/backend/internal/shopping"
	"github.com/pageza/nutriplan/backend/internal/testhelpers"
	"github.com/pageza/nutriplan/backend/internal/types"
)

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	db := testhelpers.SetupTestDatabase(t)
	require.NoError(t, database.RunMigrations(db, testhelpers.MigrationsDir(t)))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		ServerHost:               "127.0.0.1",
		ServerPort:               "0",
		JWTSecret:                testhelpers.TestJWTSecret,
		GenerateRateLimit:        1,
		GenerateRateWindow:       time.Hour,
		TrackedNutrientsCacheTTL: time.Minute,
	}
}

type client struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func (c *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	return w
}

// seedDiet gives userID an active diet with 150 g of oats at breakfast
func seedDiet(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.ProductBase {
	f := testhelpers.NewFixtures(t, db)
	oats := f.ProductBase("Oats", models.UnitGram, models.NutrientValues{
		Calories: testhelpers.Float(389),
		Protein:  testhelpers.Float(16.9),
	})
	diet := f.Diet(userID, true, time.Now().UTC())
	meal := f.Meal(diet.ID, models.MealBreakfast, 1)
	f.DietItem(meal.ID, models.BaseRef(oats.ID), 150, models.UnitGram)
	return oats
}

func TestGenerateShoppingList_Postgres(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupPostgres(t)
	userID := uuid.New()
	oats := seedDiet(t, db, userID)
	testhelpers.NewFixtures(t, db).Inventory(userID, models.BaseRef(oats.ID), 50, models.UnitGram)

	srv := server.New(testConfig(), db, nil, nil)
	c := &client{t: t, handler: srv.Handler(), token: testhelpers.IssueTestToken(t, userID)}

	w := c.do(http.MethodPost, "/shopping-lists/generate", gin.H{"days": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var lists []models.ShoppingList
	require.NoError(t, db.Preload("Items").Where("user_id = ?", userID).Find(&lists).Error)
	require.Len(t, lists, 1)
	require.Len(t, lists[0].Items, 1)
	assert.Equal(t, 250.0, lists[0].Items[0].Quantity)
	assert.True(t, lists[0].IsAutoGenerated)

	w = c.do(http.MethodGet, "/shopping-lists/"+lists[0].ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDietTotals_Postgres(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupPostgres(t)
	userID := uuid.New()
	seedDiet(t, db, userID)

	var diet models.Diet
	require.NoError(t, db.Where("user_id = ?", userID).First(&diet).Error)

	srv := server.New(testConfig(), db, nil, nil)
	c := &client{t: t, handler: srv.Handler(), token: testhelpers.IssueTestToken(t, userID)}

	w := c.do(http.MethodGet, "/diets/"+diet.ID.String()+"/totals?nutrients=calories,protein", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Totals []struct {
			Key   string  `json:"key"`
			Value float64 `json:"value"`
		} `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Totals, 2)
	assert.Equal(t, 584.0, body.Totals[0].Value)
	assert.Equal(t, 25.35, body.Totals[1].Value)
}

func TestGenerate_MissingInventoryTable_Postgres(t *testing.T) {
	db := setupPostgres(t)
	userID := uuid.New()
	seedDiet(t, db, userID)
	require.NoError(t, db.Exec("DROP TABLE inventory").Error)

	result, err := shopping.NewGenerator(service.NewShoppingStore(db)).Generate(context.Background(), userID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ItemsCount)
	require.Len(t, result.Items, 1)
	assert.Equal(t, 150.0, result.Items[0].ToBuy)
}

func TestGenerate_PermissionDenied_Postgres(t *testing.T) {
	db := setupPostgres(t)
	userID := uuid.New()
	seedDiet(t, db, userID)

	require.NoError(t, db.Exec("CREATE ROLE reader NOLOGIN").Error)
	require.NoError(t, db.Exec("GRANT SELECT ON ALL TABLES IN SCHEMA public TO reader").Error)

	// pin the pool so SET ROLE applies to every query below
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("SET ROLE reader").Error)
	t.Cleanup(func() { db.Exec("RESET ROLE") })

	gen := shopping.NewGenerator(service.NewShoppingStore(db))
	_, err = gen.Generate(context.Background(), userID, 7)
	require.Error(t, err)

	var genErr *shopping.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, shopping.KindPersistenceFailure, genErr.Kind)
	assert.True(t, database.IsPermissionDenied(err))
}

func TestGenerate_RateLimited_Postgres(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupPostgres(t)
	redisClient := testhelpers.SetupRedis(t)
	userID := uuid.New()
	seedDiet(t, db, userID)

	srv := server.New(testConfig(), db, redisClient, nil)
	c := &client{t: t, handler: srv.Handler(), token: testhelpers.IssueTestToken(t, userID)}

	w := c.do(http.MethodPost, "/shopping-lists/generate", gin.H{"days": 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = c.do(http.MethodPost, "/shopping-lists/generate", gin.H{"days": 1})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = c.do(http.MethodGet, "/shopping-lists/generation-quota", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var quota types.GenerationQuotaResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quota))
	assert.True(t, quota.Limited)
	assert.Equal(t, 1, quota.Limit)
	require.NotNil(t, quota.Remaining)
	assert.Zero(t, *quota.Remaining)
}

func TestTrackedNutrients_CachedInRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupPostgres(t)
	redisClient := testhelpers.SetupRedis(t)
	userID := uuid.New()
	seedDiet(t, db, userID)

	var diet models.Diet
	require.NoError(t, db.Where("user_id = ?", userID).First(&diet).Error)

	prefs := service.NewPreferenceService(db, redisClient, time.Minute)
	ctx := context.Background()

	_, err := prefs.SetTrackedNutrients(ctx, diet.ID, []string{"sodium", "protein"})
	require.NoError(t, err)
	keys, err := prefs.GetTrackedNutrients(ctx, diet.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"sodium", "protein"}, keys)

	cached, err := redisClient.Get(ctx, "diet:tracked_nutrients:"+diet.ID.String()).Result()
	require.NoError(t, err)
	assert.Contains(t, cached, "sodium")
}
