package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Disaster represents a reported disaster event
// DB: disasters
type Disaster struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title        string         `gorm:"column:title;size:255;not null" json:"title"`
	LocationName string         `gorm:"column:location_name;size:500;not null" json:"location_name"`
	Location     *GeoPoint      `gorm:"column:location" json:"location,omitempty"`
	Description  string         `gorm:"column:description;type:text" json:"description"`
	Tags         pq.StringArray `gorm:"column:tags;type:text[]" json:"tags"`
	OwnerID      string         `gorm:"column:owner_id;size:100;not null;index:idx_disasters_owner" json:"owner_id"`
	CreatedAt    time.Time      `gorm:"column:created_at;not null;index:idx_disasters_created,sort:desc" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`

	// Relations
	Reports   []Report   `gorm:"foreignKey:DisasterID" json:"reports,omitempty"`
	Resources []Resource `gorm:"foreignKey:DisasterID" json:"resources,omitempty"`
}

func (Disaster) TableName() string {
	return "disasters"
}
