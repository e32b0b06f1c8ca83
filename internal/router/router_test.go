package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/pageza/nutriplan/backend/internal/api"
	"github.com/pageza/nutriplan/backend/internal/mocks"
	"github.com/pageza/nutriplan/backend/internal/service"
	"github.com/pageza/nutriplan/backend/internal/shopping"
	"github.com/pageza/nutriplan/backend/internal/testhelpers"
	"github.com/pageza/nutriplan/backend/internal/types"
)

func testServices(db *gorm.DB) api.Services {
	return api.Services{
		Generator:     shopping.NewGenerator(service.NewShoppingStore(db)),
		ShoppingLists: service.NewShoppingListService(db),
		Diets:         service.NewDietService(db),
		Preferences:   service.NewPreferenceService(db, nil, 0),
		Inventory:     service.NewInventoryService(db),
		Catalog:       service.NewCatalogService(db),
		Avatars:       service.NewAvatarService(nil),
	}
}

func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupSQLiteDB(t)
	return SetupRouter(db, service.NewTokenService(testhelpers.TestJWTSecret), testServices(db), nil)
}

func TestSetupRouter_Health(t *testing.T) {
	r := setupTestRouter(t)

	for _, path := range []string{"/health", "/api/v1/health"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	}
}

func TestSetupRouter_ProtectedRoutes(t *testing.T) {
	r := setupTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/diets", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/diets", nil)
	req.Header.Set("Authorization", "Bearer "+testhelpers.IssueTestToken(t, uuid.New()))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"diets"`)
}

func TestSetupRouter_CORSPreflight(t *testing.T) {
	r := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/shopping-lists/generate", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetupRouter_UsesValidator(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupSQLiteDB(t)
	validator := new(mocks.MockTokenValidator)
	userID := uuid.New()
	validator.On("ValidateToken", "issued-elsewhere").Return(&types.TokenClaims{UserID: userID}, nil)
	validator.On("ValidateToken", "revoked").Return(nil, errors.New("token revoked"))
	r := SetupRouter(db, validator, testServices(db), nil)

	for token, want := range map[string]int{"issued-elsewhere": http.StatusOK, "revoked": http.StatusUnauthorized} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, token)
	}
	validator.AssertExpectations(t)
}
