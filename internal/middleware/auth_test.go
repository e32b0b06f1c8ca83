package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutriplan/backend/internal/types"
)

type stubValidator struct {
	claims *types.TokenClaims
	err    error
}

func (s stubValidator) ValidateToken(string) (*types.TokenClaims, error) {
	return s.claims, s.err
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		validator  stubValidator
		wantStatus int
	}{
		{"missing header", "", stubValidator{}, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", stubValidator{}, http.StatusUnauthorized},
		{"empty token", "Bearer ", stubValidator{}, http.StatusUnauthorized},
		{"rejected token", "Bearer bad", stubValidator{err: errors.New("expired")}, http.StatusUnauthorized},
		{"valid token", "Bearer good", stubValidator{claims: &types.TokenClaims{UserID: userID, Email: "a@b.c"}}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			var gotID uuid.UUID
			router.GET("/me", AuthMiddleware(tt.validator), func(c *gin.Context) {
				id, ok := UserID(c)
				require.True(t, ok)
				gotID = id
				c.String(http.StatusOK, c.GetString(ContextEmail))
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, userID, gotID)
				assert.Equal(t, "a@b.c", w.Body.String())
			}
		})
	}
}

func TestUserID_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := UserID(c)
	assert.False(t, ok)

	c.Set(ContextUserID, "not-a-uuid")
	_, ok = UserID(c)
	assert.False(t, ok)
}
