package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/nutriplan/backend/config"
	"github.com/pageza/nutriplan/backend/internal/api"
	"github.com/pageza/nutriplan/backend/internal/middleware"
	"github.com/pageza/nutriplan/backend/internal/router"
	"github.com/pageza/nutriplan/backend/internal/service"
	"github.com/pageza/nutriplan/backend/internal/shopping"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
}

// New wires services and routes. redisClient and storage are optional: a
// nil client disables rate limiting and caching, nil storage disables
// avatar uploads.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, storage service.Presigner) *Server {
	services := api.Services{
		Generator:     shopping.NewGenerator(service.NewShoppingStore(db)),
		ShoppingLists: service.NewShoppingListService(db),
		Diets:         service.NewDietService(db),
		Preferences:   service.NewPreferenceService(db, redisClient, cfg.TrackedNutrientsCacheTTL),
		Inventory:     service.NewInventoryService(db),
		Catalog:       service.NewCatalogService(db),
		Avatars:       service.NewAvatarService(storage),
	}

	var limiter *middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewGenerateRateLimiter(redisClient, cfg.GenerateRateLimit, cfg.GenerateRateWindow)
	} else {
		log.Printf("Warning: Redis unavailable, shopping list generation is not rate limited")
	}

	tokens := service.NewTokenService(cfg.JWTSecret)

	r := router.SetupRouter(db, tokens, services, limiter)
	return &Server{
		cfg:    cfg,
		router: r,
		http: &http.Server{
			Addr:              cfg.ServerHost + ":" + cfg.ServerPort,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the routes, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured host and port and blocks until the
// server stops. It returns nil after Shutdown.
func (s *Server) Start() error {
	log.Printf("Server listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
