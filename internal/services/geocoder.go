package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/models"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/pkg/logger"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/pkg/nominatim"
)

// Geocoder resolves a free-text location name to a point. Satisfied by
// NominatimGeocoder in production and by fakes in tests.
type Geocoder interface {
	Resolve(ctx context.Context, locationName string) (models.GeoPoint, error)
}

// NominatimGeocoder backs the Geocoder contract with the Nominatim
// place-search service. One attempt per call, no retries.
type NominatimGeocoder struct {
	client *nominatim.Client
}

func NewNominatimGeocoder(client *nominatim.Client) *NominatimGeocoder {
	return &NominatimGeocoder{client: client}
}

// Resolve converts a location name to a GeoPoint using the best match.
// The upstream cause is logged here and replaced with a generic error so
// it never leaks to API clients.
func (g *NominatimGeocoder) Resolve(ctx context.Context, locationName string) (models.GeoPoint, error) {
	log := logger.GetLogger("geocoder")

	locationName = strings.TrimSpace(locationName)
	if locationName == "" {
		return models.GeoPoint{}, fmt.Errorf("%w: location name is required", ErrInvalidInput)
	}

	lat, lon, err := g.client.Search(ctx, locationName)
	if err != nil {
		if errors.Is(err, nominatim.ErrNotFound) {
			return models.GeoPoint{}, fmt.Errorf("%w: location %q", ErrNotFound, locationName)
		}
		log.Errorf("Geocoding error for %q: %v", locationName, err)
		return models.GeoPoint{}, fmt.Errorf("%w: failed to geocode location", ErrUpstream)
	}

	return models.NewGeoPoint(lat, lon), nil
}
