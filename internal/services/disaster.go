package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/database"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/models"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/realtime"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/pkg/logger"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Emitter publishes a change event after a successful mutation. The
// services never see the transport behind it.
type Emitter interface {
	Emit(event string, payload interface{})
}

type DisasterService struct {
	db        *database.DB
	geocoder  Geocoder
	extractor *LocationExtractor
	events    Emitter
}

func NewDisasterService(db *database.DB, geocoder Geocoder, extractor *LocationExtractor, events Emitter) *DisasterService {
	return &DisasterService{db: db, geocoder: geocoder, extractor: extractor, events: events}
}

type CreateDisasterRequest struct {
	Title        string   `json:"title"`
	LocationName string   `json:"location_name"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
}

func (s *DisasterService) emit(payload interface{}) {
	if s.events != nil {
		s.events.Emit(realtime.EventDisasterUpdated, payload)
	}
}

// Create geocodes the disaster location and persists the record. When no
// location name is supplied the description is run through the location
// extractor first.
func (s *DisasterService) Create(ctx context.Context, principal string, req *CreateDisasterRequest) (*models.Disaster, error) {
	log := logger.GetLogger("disasters")

	locationName, err := s.resolveLocationName(ctx, req.LocationName, req.Description)
	if err != nil {
		return nil, err
	}

	point, err := s.geocoder.Resolve(ctx, locationName)
	if err != nil {
		return nil, err
	}

	disaster := models.Disaster{
		Title:        req.Title,
		LocationName: locationName,
		Location:     &point,
		Description:  req.Description,
		Tags:         pq.StringArray(req.Tags),
		OwnerID:      principal,
	}

	if err := s.db.WithContext(ctx).Create(&disaster).Error; err != nil {
		return nil, fmt.Errorf("create disaster: %w", err)
	}

	log.Infof("Disaster %s created at %s", disaster.ID, point.EWKT())
	s.emit(map[string]interface{}{"action": "create", "disaster": disaster})
	return &disaster, nil
}

// resolveLocationName falls back to AI extraction when the caller supplied
// only a description
func (s *DisasterService) resolveLocationName(ctx context.Context, locationName, description string) (string, error) {
	locationName = strings.TrimSpace(locationName)
	if locationName != "" {
		return locationName, nil
	}
	if strings.TrimSpace(description) == "" {
		return "", fmt.Errorf("%w: location name is required", ErrInvalidInput)
	}

	extracted, err := s.extractor.Extract(ctx, description)
	if err != nil {
		if errors.Is(err, ErrNoLocationFound) {
			return "", fmt.Errorf("%w: no location found in description", ErrInvalidInput)
		}
		return "", err
	}
	return extracted, nil
}

// List returns all disasters, optionally narrowed to those carrying a tag
func (s *DisasterService) List(ctx context.Context, tag string) ([]models.Disaster, error) {
	query := s.db.WithContext(ctx).Model(&models.Disaster{}).Order("created_at DESC")
	if tag != "" {
		query = query.Where("tags @> ?", pq.StringArray{tag})
	}

	var disasters []models.Disaster
	if err := query.Find(&disasters).Error; err != nil {
		return nil, fmt.Errorf("list disasters: %w", err)
	}
	return disasters, nil
}

func (s *DisasterService) Get(ctx context.Context, id uuid.UUID) (*models.Disaster, error) {
	var disaster models.Disaster
	err := s.db.WithContext(ctx).First(&disaster, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: disaster %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get disaster: %w", err)
	}
	return &disaster, nil
}

// Update re-geocodes the location and saves the new fields. Only the
// owner may update; the check is last-write-wins, there is no concurrency
// token.
func (s *DisasterService) Update(ctx context.Context, principal string, id uuid.UUID, req *CreateDisasterRequest) (*models.Disaster, error) {
	disaster, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if disaster.OwnerID != principal {
		return nil, fmt.Errorf("%w: not authorized to update this disaster", ErrUnauthorized)
	}

	locationName, err := s.resolveLocationName(ctx, req.LocationName, req.Description)
	if err != nil {
		return nil, err
	}
	point, err := s.geocoder.Resolve(ctx, locationName)
	if err != nil {
		return nil, err
	}

	disaster.Title = req.Title
	disaster.LocationName = locationName
	disaster.Location = &point
	disaster.Description = req.Description
	disaster.Tags = pq.StringArray(req.Tags)

	if err := s.db.WithContext(ctx).Save(disaster).Error; err != nil {
		return nil, fmt.Errorf("update disaster: %w", err)
	}

	s.emit(map[string]interface{}{"action": "update", "disaster": disaster})
	return disaster, nil
}

func (s *DisasterService) Delete(ctx context.Context, principal string, id uuid.UUID) error {
	disaster, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if disaster.OwnerID != principal {
		return fmt.Errorf("%w: not authorized to delete this disaster", ErrUnauthorized)
	}

	if err := s.db.WithContext(ctx).Delete(&models.Disaster{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete disaster: %w", err)
	}

	s.emit(map[string]interface{}{"action": "delete", "disasterId": id})
	return nil
}
