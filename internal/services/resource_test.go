package services

import (
	"context"
	"errors"
	"testing"

	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/models"
	"github.com/google/uuid"
)

type fakeGeocoder struct {
	point models.GeoPoint
	err   error

	calls []string
}

func (f *fakeGeocoder) Resolve(_ context.Context, locationName string) (models.GeoPoint, error) {
	f.calls = append(f.calls, locationName)
	return f.point, f.err
}

func floatPtr(v float64) *float64 { return &v }

func TestResolveOriginExplicitCoordinates(t *testing.T) {
	geo := &fakeGeocoder{}
	filter := &NearbyFilter{
		Latitude:     floatPtr(40.7128),
		Longitude:    floatPtr(-74.006),
		LocationName: "Tokyo", // must be ignored: coordinates take precedence
	}

	point, label, err := resolveOrigin(context.Background(), geo, filter, nil, "")
	if err != nil {
		t.Fatalf("resolveOrigin failed: %v", err)
	}
	if point.Lng != -74.006 || point.Lat != 40.7128 {
		t.Errorf("Expected origin (-74.006, 40.7128), got %+v", point)
	}
	if label != "40.7128,-74.006" {
		t.Errorf("Unexpected search location %q", label)
	}
	if len(geo.calls) != 0 {
		t.Error("Geocoder must not be called when explicit coordinates are given")
	}
}

func TestResolveOriginLocationName(t *testing.T) {
	geo := &fakeGeocoder{point: models.NewGeoPoint(35.6768601, 139.7638947)}
	filter := &NearbyFilter{LocationName: "Tokyo"}

	point, label, err := resolveOrigin(context.Background(), geo, filter, nil, "")
	if err != nil {
		t.Fatalf("resolveOrigin failed: %v", err)
	}
	if point.Lat != 35.6768601 || point.Lng != 139.7638947 {
		t.Errorf("Unexpected origin %+v", point)
	}
	if label != "Tokyo" {
		t.Errorf("Expected search location 'Tokyo', got %q", label)
	}
}

func TestResolveOriginGeocodeFailure(t *testing.T) {
	geo := &fakeGeocoder{err: errors.New("boom")}
	filter := &NearbyFilter{LocationName: "Tokyo"}

	_, _, err := resolveOrigin(context.Background(), geo, filter, nil, "")
	if !errors.Is(err, ErrGeocode) {
		t.Errorf("Expected ErrGeocode, got %v", err)
	}
}

func TestResolveOriginDisasterFallback(t *testing.T) {
	geo := &fakeGeocoder{}
	disasterPoint := models.NewGeoPoint(25.7741728, -80.19362)

	point, label, err := resolveOrigin(context.Background(), geo, &NearbyFilter{}, &disasterPoint, "Miami")
	if err != nil {
		t.Fatalf("resolveOrigin failed: %v", err)
	}
	if point != disasterPoint {
		t.Errorf("Expected the disaster's stored point, got %+v", point)
	}
	if label != "Miami" {
		t.Errorf("Expected search location 'Miami', got %q", label)
	}
	if len(geo.calls) != 0 {
		t.Error("Geocoder must not be called for the disaster fallback")
	}
}

func TestResolveOriginMissingLocation(t *testing.T) {
	_, _, err := resolveOrigin(context.Background(), &fakeGeocoder{}, &NearbyFilter{}, nil, "")
	if !errors.Is(err, ErrMissingLocation) {
		t.Errorf("Expected ErrMissingLocation, got %v", err)
	}
}

func TestResolveOriginLatitudeAloneIsNotEnough(t *testing.T) {
	// A lone latitude must fall through to the next origin source
	geo := &fakeGeocoder{point: models.NewGeoPoint(1, 2)}
	filter := &NearbyFilter{Latitude: floatPtr(40.0), LocationName: "Tokyo"}

	_, label, err := resolveOrigin(context.Background(), geo, filter, nil, "")
	if err != nil {
		t.Fatalf("resolveOrigin failed: %v", err)
	}
	if label != "Tokyo" {
		t.Errorf("Expected fall-through to location name, got %q", label)
	}
}

func TestResolveOriginLoneCoordinateUsesDisasterFallback(t *testing.T) {
	geo := &fakeGeocoder{}
	disasterPoint := models.NewGeoPoint(25.7741728, -80.19362)
	filter := &NearbyFilter{Latitude: floatPtr(40.0)}

	point, label, err := resolveOrigin(context.Background(), geo, filter, &disasterPoint, "Miami")
	if err != nil {
		t.Fatalf("resolveOrigin failed: %v", err)
	}
	if point != disasterPoint || label != "Miami" {
		t.Errorf("Expected the disaster's stored point with label 'Miami', got %+v %q", point, label)
	}
}

func TestNeedsDisasterOrigin(t *testing.T) {
	id := uuid.New()
	cases := []struct {
		name     string
		filter   NearbyFilter
		expected bool
	}{
		{"no disaster scope", NearbyFilter{Latitude: floatPtr(1)}, false},
		{"disaster scope only", NearbyFilter{DisasterID: &id}, true},
		{"location name wins", NearbyFilter{DisasterID: &id, LocationName: "Tokyo"}, false},
		{"both coordinates win", NearbyFilter{DisasterID: &id, Latitude: floatPtr(1), Longitude: floatPtr(2)}, false},
		{"lone latitude still falls back", NearbyFilter{DisasterID: &id, Latitude: floatPtr(1)}, true},
		{"lone longitude still falls back", NearbyFilter{DisasterID: &id, Longitude: floatPtr(2)}, true},
	}

	for _, tc := range cases {
		if got := needsDisasterOrigin(&tc.filter); got != tc.expected {
			t.Errorf("%s: needsDisasterOrigin = %v, expected %v", tc.name, got, tc.expected)
		}
	}
}
