package models

import (
	"time"

	"github.com/google/uuid"
)

// Resource represents a relief resource (shelter, hospital, supply point)
// tied to a disaster
// DB: resources
type Resource struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DisasterID   uuid.UUID `gorm:"column:disaster_id;type:uuid;not null;index:idx_resources_disaster" json:"disaster_id"`
	Name         string    `gorm:"column:name;size:255;not null" json:"name"`
	LocationName string    `gorm:"column:location_name;size:500;not null" json:"location_name"`
	Location     *GeoPoint `gorm:"column:location" json:"location,omitempty"`
	Type         string    `gorm:"column:type;size:50;index:idx_resources_type" json:"type"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;index:idx_resources_created,sort:desc" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Resource) TableName() string {
	return "resources"
}

// NearbyResource is a resource row annotated with the distance to the
// search origin, as computed by the spatial query
type NearbyResource struct {
	Resource
	DistanceMeters float64 `gorm:"column:distance" json:"distance_meters"`
}
