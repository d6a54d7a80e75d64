package models

import (
	"time"
)

// VerificationCache stores image-verification verdicts keyed by
// operation, image URL and disaster. Expiry is advisory: rows are not
// swept, readers must check ExpiresAt themselves.
type VerificationCache struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"size:1000;not null;uniqueIndex" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

func (VerificationCache) TableName() string {
	return "verification_cache"
}
