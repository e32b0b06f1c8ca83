package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/nutriplan/backend/internal/models"
	"github.com/pageza/nutriplan/backend/internal/nutrition"
)

// PreferenceService persists the nutrients tracked for each diet. Reads are
// cached in Redis when a client is configured.
type PreferenceService struct {
	db    *gorm.DB
	redis *redis.Client
	ttl   time.Duration
}

func NewPreferenceService(db *gorm.DB, redisClient *redis.Client, ttl time.Duration) *PreferenceService {
	return &PreferenceService{db: db, redis: redisClient, ttl: ttl}
}

func trackedNutrientsKey(dietID uuid.UUID) string {
	return "diet:tracked_nutrients:" + dietID.String()
}

func (s *PreferenceService) cacheEnabled() bool {
	return s.redis != nil && s.ttl > 0
}

// GetTrackedNutrients returns the tracked nutrients of a diet, or the
// default set when none were saved.
func (s *PreferenceService) GetTrackedNutrients(ctx context.Context, dietID uuid.UUID) ([]string, error) {
	if s.cacheEnabled() {
		data, err := s.redis.Get(ctx, trackedNutrientsKey(dietID)).Bytes()
		if err == nil {
			var keys []string
			if err := json.Unmarshal(data, &keys); err == nil {
				return keys, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("[PreferenceService] cache read failed for diet %s: %v", dietID, err)
		}
	}

	var pref models.DietPreference
	err := s.db.WithContext(ctx).Where("diet_id = ?", dietID).First(&pref).Error
	var keys []string
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		keys = nutrition.DefaultTracked()
	case err != nil:
		return nil, fmt.Errorf("failed to load tracked nutrients: %w", err)
	default:
		keys = nutrition.NormalizeTrackedNutrients(pref.TrackedNutrients)
	}

	s.cache(ctx, dietID, keys)
	return keys, nil
}

// SetTrackedNutrients validates and stores the tracked nutrients of a diet
func (s *PreferenceService) SetTrackedNutrients(ctx context.Context, dietID uuid.UUID, keys []string) ([]string, error) {
	if unknown := nutrition.UnknownNutrients(keys); len(unknown) > 0 {
		return nil, fmt.Errorf("%w: unknown nutrients %s", ErrInvalidInput, strings.Join(unknown, ", "))
	}
	normalized := nutrition.NormalizeTrackedNutrients(keys)

	pref := models.DietPreference{
		DietID:           dietID,
		TrackedNutrients: models.JSONBStringArray(normalized),
		UpdatedAt:        time.Now(),
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "diet_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tracked_nutrients", "updated_at"}),
	}).Create(&pref).Error; err != nil {
		return nil, fmt.Errorf("failed to save tracked nutrients: %w", err)
	}

	if s.cacheEnabled() {
		if err := s.redis.Del(ctx, trackedNutrientsKey(dietID)).Err(); err != nil {
			log.Printf("[PreferenceService] cache invalidation failed for diet %s: %v", dietID, err)
		}
	}
	return normalized, nil
}

func (s *PreferenceService) cache(ctx context.Context, dietID uuid.UUID, keys []string) {
	if !s.cacheEnabled() {
		return
	}
	data, err := json.Marshal(keys)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, trackedNutrientsKey(dietID), data, s.ttl).Err(); err != nil {
		log.Printf("[PreferenceService] cache write failed for diet %s: %v", dietID, err)
	}
}
