package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeTextGenerator struct {
	reply string
	err   error

	lastPrompt string
}

func (f *fakeTextGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.reply, f.err
}

func TestExtractReturnsTrimmedLocation(t *testing.T) {
	gen := &fakeTextGenerator{reply: "  Miami\n"}
	e := NewLocationExtractor(gen)

	location, err := e.Extract(context.Background(), "Severe flooding in Miami after the storm")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if location != "Miami" {
		t.Errorf("Expected 'Miami', got %q", location)
	}
	if !strings.Contains(gen.lastPrompt, "Severe flooding in Miami after the storm") {
		t.Error("Prompt should embed the description")
	}
	if !strings.Contains(gen.lastPrompt, "Unknown location") {
		t.Error("Prompt should instruct the sentinel reply")
	}
}

func TestExtractUnknownLocationSentinel(t *testing.T) {
	e := NewLocationExtractor(&fakeTextGenerator{reply: " Unknown location "})

	_, err := e.Extract(context.Background(), "something happened somewhere")
	if !errors.Is(err, ErrNoLocationFound) {
		t.Errorf("Expected ErrNoLocationFound, got %v", err)
	}
}

func TestExtractSentinelMustMatchExactly(t *testing.T) {
	// A reply merely containing the sentinel is still a location
	e := NewLocationExtractor(&fakeTextGenerator{reply: "Unknown location, Ohio"})

	location, err := e.Extract(context.Background(), "x")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if location != "Unknown location, Ohio" {
		t.Errorf("Unexpected location %q", location)
	}
}

func TestExtractUpstreamFailure(t *testing.T) {
	e := NewLocationExtractor(&fakeTextGenerator{err: errors.New("quota exceeded")})

	_, err := e.Extract(context.Background(), "flooding in Miami")
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("Expected ErrUpstream, got %v", err)
	}
	if strings.Contains(err.Error(), "quota") {
		t.Error("Upstream cause must not leak into the returned error")
	}
}
