package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/nutriplan/backend/internal/middleware"
	"github.com/pageza/nutriplan/backend/internal/service"
	"github.com/pageza/nutriplan/backend/internal/shopping"
	"github.com/pageza/nutriplan/backend/internal/testhelpers"
)

type testEnv struct {
	t        *testing.T
	db       *gorm.DB
	router   *gin.Engine
	fixtures *testhelpers.Fixtures
	userID   uuid.UUID
	token    string
}

func defaultServices(db *gorm.DB) Services {
	return Services{
		Generator:     shopping.NewGenerator(service.NewShoppingStore(db)),
		ShoppingLists: service.NewShoppingListService(db),
		Diets:         service.NewDietService(db),
		Preferences:   service.NewPreferenceService(db, nil, 0),
		Inventory:     service.NewInventoryService(db),
		Catalog:       service.NewCatalogService(db),
		Avatars:       service.NewAvatarService(nil),
	}
}

// newTestEnv builds the v1 routes over an in-memory database. customize
// may swap services before the routes are registered.
func newTestEnv(t *testing.T, customize func(*Services)) *testEnv {
	return newLimitedTestEnv(t, customize, nil)
}

func newLimitedTestEnv(t *testing.T, customize func(*Services), limiter *middleware.RateLimiter) *testEnv {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupSQLiteDB(t)
	svc := defaultServices(db)
	if customize != nil {
		customize(&svc)
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(service.NewTokenService(testhelpers.TestJWTSecret)))
	RegisterRoutes(v1, svc, limiter)

	userID := uuid.New()
	return &testEnv{
		t:        t,
		db:       db,
		router:   router,
		fixtures: testhelpers.NewFixtures(t, db),
		userID:   userID,
		token:    testhelpers.IssueTestToken(t, userID),
	}
}

// PerformRequest sends an authenticated JSON request
func (e *testEnv) PerformRequest(method, path string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	return e.performAs(e.token, method, path, body)
}

func (e *testEnv) performAs(token, method, path string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(e.t, err)
		req = httptest.NewRequest(method, "/api/v1"+path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, "/api/v1"+path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
