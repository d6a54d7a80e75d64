package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/database"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// verificationTTL is the fixed lifetime of a cached verdict
const verificationTTL = time.Hour

// VerificationCacheService persists image-verification verdicts in a
// keyed cache table. Writes always happen; the cache-hit short-circuit
// on reads is behind a toggle and off by default, since a hit can pin a
// stale verdict until the TTL runs out.
type VerificationCacheService struct {
	db          *database.DB
	readEnabled bool
}

func NewVerificationCacheService(db *database.DB, readEnabled bool) *VerificationCacheService {
	return &VerificationCacheService{db: db, readEnabled: readEnabled}
}

// CacheKey composes the cache key from operation, subject and context
func CacheKey(imageURL string, disasterID uuid.UUID) string {
	return fmt.Sprintf("image_verification:%s:%s", imageURL, disasterID)
}

// Get returns a cached, unexpired verdict for the key. The second return
// is false on a miss, on an expired row, or when reads are disabled.
func (s *VerificationCacheService) Get(ctx context.Context, key string) (*VerificationResult, bool, error) {
	if !s.readEnabled {
		return nil, false, nil
	}

	var entry models.VerificationCache
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read verification cache: %w", err)
	}

	// No sweeper: expiry is enforced at read time
	if time.Now().After(entry.ExpiresAt) {
		return nil, false, nil
	}

	var result VerificationResult
	if err := json.Unmarshal([]byte(entry.Value), &result); err != nil {
		return nil, false, fmt.Errorf("decode cached verdict: %w", err)
	}
	return &result, true, nil
}

// Put stores a verdict for the key with the fixed TTL, replacing any
// previous entry
func (s *VerificationCacheService) Put(ctx context.Context, key string, result *VerificationResult) error {
	value, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode verdict: %w", err)
	}

	entry := models.VerificationCache{
		Key:       key,
		Value:     string(value),
		ExpiresAt: time.Now().Add(verificationTTL),
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("write verification cache: %w", err)
	}
	return nil
}
