package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/pkg/logger"
)

// VerificationResult is the verdict the vision model returns for an image
type VerificationResult struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

// VisionAnalyzer is the slice of the AI client the verifier needs
type VisionAnalyzer interface {
	AnalyzeImage(ctx context.Context, instructions []string, mimeType string, image []byte) (string, error)
}

// verifyInstructions is the fixed analytical framing sent ahead of the
// image bytes. The output-format directive demands a single JSON object.
var verifyInstructions = []string{
	"Analyze this disaster-related image and verify its authenticity. The reported disaster is described as:",
	"", // disaster description is spliced in here
	"Please assess:",
	"1. Does the image show signs of manipulation or editing?",
	"2. Does the image content match the described disaster? Consider:",
	"   - Type of disaster shown vs described",
	"   - Environmental conditions",
	"   - Location characteristics",
	"3. Are there inconsistencies between the image and the description?",
	"4. Can you identify any metadata or visual elements that help verify its authenticity?",
	"Provide a clear yes/no on whether the image appears authentic AND matches the description",
	`Output format:
{
  "status": "verified" | "suspicious",
  "details": "Detailed explanation of findings"
}`,
}

// ImageVerifier runs the authenticity check on a report image against the
// disaster's textual description
type ImageVerifier struct {
	model      VisionAnalyzer
	httpClient *http.Client
	// strictStatus rejects verdicts outside verified/suspicious instead of
	// passing them through
	strictStatus bool
}

func NewImageVerifier(model VisionAnalyzer, strictStatus bool) *ImageVerifier {
	return &ImageVerifier{
		model: model,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		strictStatus: strictStatus,
	}
}

// WithHTTPClient swaps the image-fetch client, e.g. for tests or an
// instrumented transport
func (v *ImageVerifier) WithHTTPClient(c *http.Client) *ImageVerifier {
	if c != nil {
		v.httpClient = c
	}
	return v
}

// Verify fetches the image, submits it with the disaster context to the
// vision model and parses the JSON verdict out of the reply.
func (v *ImageVerifier) Verify(ctx context.Context, imageURL, disasterDescription string) (*VerificationResult, error) {
	log := logger.GetLogger("verifier")

	if strings.TrimSpace(disasterDescription) == "" {
		return nil, fmt.Errorf("%w: disaster description is required for verification", ErrInvalidInput)
	}

	image, mimeType, err := v.fetchImage(ctx, imageURL)
	if err != nil {
		log.Errorf("Image fetch error for %s: %v", imageURL, err)
		return nil, fmt.Errorf("%w: failed to fetch image", ErrUpstream)
	}

	instructions := make([]string, len(verifyInstructions))
	copy(instructions, verifyInstructions)
	instructions[1] = disasterDescription

	reply, err := v.model.AnalyzeImage(ctx, instructions, mimeType, image)
	if err != nil {
		log.Errorf("Image verification error: %v", err)
		return nil, fmt.Errorf("%w: failed to verify image", ErrUpstream)
	}

	result, err := parseVerdict(reply)
	if err != nil {
		log.Errorf("Failed to parse vision model response: %v", err)
		return nil, err
	}

	if v.strictStatus &&
		result.Status != "verified" && result.Status != "suspicious" {
		log.Errorf("Vision model returned unexpected status %q", result.Status)
		return nil, fmt.Errorf("%w: unexpected status %q", ErrInvalidResponse, result.Status)
	}

	return result, nil
}

func (v *ImageVerifier) fetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create image request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read image body: %w", err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// parseVerdict pulls the single JSON object out of the model reply. The
// model tends to wrap the JSON in prose, so the first balanced {...}
// substring is tried before falling back to the full text.
func parseVerdict(reply string) (*VerificationResult, error) {
	candidate := extractJSONObject(reply)
	if candidate == "" {
		candidate = reply
	}

	var result VerificationResult
	if err := json.Unmarshal([]byte(candidate), &result); err != nil {
		// Fallback: the whole reply may itself be the object
		if err2 := json.Unmarshal([]byte(reply), &result); err2 != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}
	return &result, nil
}

// extractJSONObject returns the first balanced top-level {...} substring,
// or "" when the text contains none
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
