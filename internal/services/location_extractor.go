package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/pkg/logger"
)

// unknownLocationSentinel is what the model is instructed to reply when the
// description names no place
const unknownLocationSentinel = "Unknown location"

// locationPrompt frames the description for the text model. The framing is
// fixed; whatever non-determinism the model has is accepted as-is.
const locationPrompt = `Extract the main location from this disaster description. Return ONLY the location name, nothing else.
    If no specific location is found, respond with "Unknown location".

    Description: "%s"`

// TextGenerator is the slice of the AI client the extractor needs
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// LocationExtractor derives a location name from unstructured disaster
// description text
type LocationExtractor struct {
	model TextGenerator
}

func NewLocationExtractor(model TextGenerator) *LocationExtractor {
	return &LocationExtractor{model: model}
}

// Extract returns the bare location name mentioned in the description.
// ErrNoLocationFound when the model reports the sentinel, ErrUpstream on
// any model failure.
func (e *LocationExtractor) Extract(ctx context.Context, description string) (string, error) {
	log := logger.GetLogger("extractor")

	raw, err := e.model.GenerateText(ctx, fmt.Sprintf(locationPrompt, description))
	if err != nil {
		log.Errorf("Location extraction error: %v", err)
		return "", fmt.Errorf("%w: failed to extract location from description", ErrUpstream)
	}

	location := strings.TrimSpace(raw)
	if location == unknownLocationSentinel {
		return "", ErrNoLocationFound
	}

	return location, nil
}
