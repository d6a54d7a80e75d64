package services

import (
	"context"
	"errors"
	"testing"
)

func extractorService(gen *fakeTextGenerator) *DisasterService {
	return NewDisasterService(nil, &fakeGeocoder{}, NewLocationExtractor(gen), nil)
}

func TestResolveLocationNameExplicitWins(t *testing.T) {
	gen := &fakeTextGenerator{reply: "should not be asked"}
	s := extractorService(gen)

	name, err := s.resolveLocationName(context.Background(), "Manhattan, NYC", "Heavy flooding downtown")
	if err != nil {
		t.Fatalf("resolveLocationName failed: %v", err)
	}
	if name != "Manhattan, NYC" {
		t.Errorf("Expected 'Manhattan, NYC', got %q", name)
	}
	if gen.lastPrompt != "" {
		t.Error("Extractor must not run when a location name is supplied")
	}
}

func TestResolveLocationNameExtractsFromDescription(t *testing.T) {
	gen := &fakeTextGenerator{reply: "Miami"}
	s := extractorService(gen)

	name, err := s.resolveLocationName(context.Background(), "", "Severe flooding in Miami after the storm")
	if err != nil {
		t.Fatalf("resolveLocationName failed: %v", err)
	}
	if name != "Miami" {
		t.Errorf("Expected extracted location 'Miami', got %q", name)
	}
}

func TestResolveLocationNameNothingToWorkWith(t *testing.T) {
	s := extractorService(&fakeTextGenerator{})

	_, err := s.resolveLocationName(context.Background(), "  ", "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestResolveLocationNameNoLocationInDescription(t *testing.T) {
	// The sentinel reply surfaces as a client error, not an upstream one
	gen := &fakeTextGenerator{reply: "Unknown location"}
	s := extractorService(gen)

	_, err := s.resolveLocationName(context.Background(), "", "Something bad happened somewhere")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
	if errors.Is(err, ErrNoLocationFound) {
		t.Error("ErrNoLocationFound must not leak past the service")
	}
}

func TestResolveLocationNameExtractorFailure(t *testing.T) {
	gen := &fakeTextGenerator{err: errors.New("model down")}
	s := extractorService(gen)

	_, err := s.resolveLocationName(context.Background(), "", "Severe flooding in Miami")
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("Expected ErrUpstream, got %v", err)
	}
}
