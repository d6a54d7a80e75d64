package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/database"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/models"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/realtime"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Nearby search defaults
const (
	DefaultNearbyDistance = 10000 // meters
	DefaultNearbyLimit    = 50
)

type ResourceService struct {
	db       *database.DB
	geocoder Geocoder
	events   Emitter
}

func NewResourceService(db *database.DB, geocoder Geocoder, events Emitter) *ResourceService {
	return &ResourceService{db: db, geocoder: geocoder, events: events}
}

type CreateResourceRequest struct {
	Name         string `json:"name"`
	LocationName string `json:"location_name"`
	Type         string `json:"type"`
}

// NearbyFilter carries the raw nearby-search parameters. Origin sources
// are mutually exclusive and resolved by precedence: explicit coordinates,
// then location name, then the scoped disaster's stored point.
type NearbyFilter struct {
	Latitude       *float64
	Longitude      *float64
	LocationName   string
	DistanceMeters int
	Type           string
	DisasterID     *uuid.UUID
	Limit          int
}

type NearbyMetadata struct {
	Total          int     `json:"total"`
	SearchLocation string  `json:"search_location"`
	DistanceKm     float64 `json:"distance_km"`
	TypeFilter     string  `json:"type_filter"`
}

type NearbyResponse struct {
	Data     []models.NearbyResource `json:"data"`
	Metadata NearbyMetadata          `json:"metadata"`
}

func (s *ResourceService) emit(payload interface{}) {
	if s.events != nil {
		s.events.Emit(realtime.EventResourceUpdated, payload)
	}
}

// Create geocodes the resource location and persists it under the disaster
func (s *ResourceService) Create(ctx context.Context, disasterID uuid.UUID, req *CreateResourceRequest) (*models.Resource, error) {
	if strings.TrimSpace(req.LocationName) == "" {
		return nil, fmt.Errorf("%w: location name is required", ErrInvalidInput)
	}

	if err := s.checkDisasterExists(ctx, disasterID); err != nil {
		return nil, err
	}

	point, err := s.geocoder.Resolve(ctx, req.LocationName)
	if err != nil {
		return nil, err
	}

	resource := models.Resource{
		DisasterID:   disasterID,
		Name:         req.Name,
		LocationName: req.LocationName,
		Location:     &point,
		Type:         req.Type,
	}

	if err := s.db.WithContext(ctx).Create(&resource).Error; err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	s.emit(map[string]interface{}{"action": "create", "resource": resource})
	return &resource, nil
}

func (s *ResourceService) List(ctx context.Context, disasterID uuid.UUID) ([]models.Resource, error) {
	var resources []models.Resource
	err := s.db.WithContext(ctx).
		Where("disaster_id = ?", disasterID).
		Order("created_at DESC").
		Find(&resources).Error
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return resources, nil
}

// Update re-geocodes only when a new location name is supplied
func (s *ResourceService) Update(ctx context.Context, id uuid.UUID, req *CreateResourceRequest) (*models.Resource, error) {
	var resource models.Resource
	err := s.db.WithContext(ctx).First(&resource, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: resource %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get resource: %w", err)
	}

	resource.Name = req.Name
	resource.Type = req.Type
	if strings.TrimSpace(req.LocationName) != "" {
		point, err := s.geocoder.Resolve(ctx, req.LocationName)
		if err != nil {
			return nil, err
		}
		resource.LocationName = req.LocationName
		resource.Location = &point
	}

	if err := s.db.WithContext(ctx).Save(&resource).Error; err != nil {
		return nil, fmt.Errorf("update resource: %w", err)
	}

	s.emit(map[string]interface{}{"action": "update", "resource": resource})
	return &resource, nil
}

func (s *ResourceService) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Resource{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete resource: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: resource %s", ErrNotFound, id)
	}

	s.emit(map[string]interface{}{"action": "delete", "resourceId": id})
	return nil
}

// FindNearby resolves the search origin and delegates the proximity
// query to PostGIS: every resource within the radius, annotated with its
// distance, nearest first.
func (s *ResourceService) FindNearby(ctx context.Context, filter *NearbyFilter) (*NearbyResponse, error) {
	// The scoped disaster's stored point is the last-resort origin
	var disasterPoint *models.GeoPoint
	var disasterLabel string
	if needsDisasterOrigin(filter) {
		var disaster models.Disaster
		err := s.db.WithContext(ctx).First(&disaster, "id = ?", *filter.DisasterID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: disaster %s", ErrNotFound, *filter.DisasterID)
			}
			return nil, fmt.Errorf("get disaster: %w", err)
		}
		disasterPoint = disaster.Location
		disasterLabel = disaster.LocationName
	}

	origin, searchLocation, err := resolveOrigin(ctx, s.geocoder, filter, disasterPoint, disasterLabel)
	if err != nil {
		return nil, err
	}

	distance := filter.DistanceMeters
	if distance <= 0 {
		distance = DefaultNearbyDistance
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultNearbyLimit
	}

	query := s.db.WithContext(ctx).Model(&models.Resource{}).
		Select("resources.*, ST_Distance(location, ST_GeogFromText(?)) AS distance", origin.EWKT()).
		Where("ST_DWithin(location, ST_GeogFromText(?), ?)", origin.EWKT(), distance)

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.DisasterID != nil {
		query = query.Where("disaster_id = ?", *filter.DisasterID)
	}

	var data []models.NearbyResource
	err = query.Order("distance ASC").Limit(limit).Find(&data).Error
	if err != nil {
		return nil, fmt.Errorf("nearby query: %w", err)
	}

	typeFilter := filter.Type
	if typeFilter == "" {
		typeFilter = "all"
	}

	return &NearbyResponse{
		Data: data,
		Metadata: NearbyMetadata{
			Total:          len(data),
			SearchLocation: searchLocation,
			DistanceKm:     float64(distance) / 1000,
			TypeFilter:     typeFilter,
		},
	}, nil
}

// needsDisasterOrigin reports whether the scoped disaster's stored point
// must be fetched as the fallback search origin. A lone latitude or
// longitude does not count as an origin, so the fallback still applies.
func needsDisasterOrigin(filter *NearbyFilter) bool {
	if filter.DisasterID == nil || filter.LocationName != "" {
		return false
	}
	return filter.Latitude == nil || filter.Longitude == nil
}

// resolveOrigin picks the search origin by precedence. It is split from
// FindNearby so the precedence rules are testable without a database.
func resolveOrigin(ctx context.Context, geocoder Geocoder, filter *NearbyFilter, disasterPoint *models.GeoPoint, disasterLabel string) (models.GeoPoint, string, error) {
	switch {
	case filter.Latitude != nil && filter.Longitude != nil:
		point := models.NewGeoPoint(*filter.Latitude, *filter.Longitude)
		label := strconv.FormatFloat(*filter.Latitude, 'f', -1, 64) + "," +
			strconv.FormatFloat(*filter.Longitude, 'f', -1, 64)
		return point, label, nil

	case filter.LocationName != "":
		point, err := geocoder.Resolve(ctx, filter.LocationName)
		if err != nil {
			return models.GeoPoint{}, "", fmt.Errorf("%w: %q", ErrGeocode, filter.LocationName)
		}
		return point, filter.LocationName, nil

	case disasterPoint != nil:
		return *disasterPoint, disasterLabel, nil

	default:
		return models.GeoPoint{}, "", ErrMissingLocation
	}
}

func (s *ResourceService) checkDisasterExists(ctx context.Context, id uuid.UUID) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Disaster{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return fmt.Errorf("check disaster: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: disaster %s", ErrNotFound, id)
	}
	return nil
}
