package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	// DefaultTextModel handles location extraction prompts
	DefaultTextModel = "gemini-pro"
	// DefaultVisionModel handles multimodal image analysis
	DefaultVisionModel = "gemini-2.0-flash"
)

// Client wraps the Gemini API for the two capabilities the platform
// needs: plain text completion and multimodal image analysis. It is
// constructed once per process and shared across requests.
type Client struct {
	genai       *genai.Client
	textModel   string
	visionModel string
}

// New creates a Gemini client. Empty model names fall back to defaults.
func New(ctx context.Context, apiKey, textModel, visionModel string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	if textModel == "" {
		textModel = DefaultTextModel
	}
	if visionModel == "" {
		visionModel = DefaultVisionModel
	}
	return &Client{genai: c, textModel: textModel, visionModel: visionModel}, nil
}

// Close releases the underlying connection
func (c *Client) Close() error {
	return c.genai.Close()
}

// GenerateText submits a prompt to the text model and returns the raw reply
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	model := c.genai.GenerativeModel(c.textModel)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate text: %w", err)
	}
	return responseText(resp)
}

// AnalyzeImage submits instruction strings plus inline image bytes to the
// vision model and returns the raw reply. mimeType is the image content
// type as reported by its source, e.g. "image/jpeg".
func (c *Client) AnalyzeImage(ctx context.Context, instructions []string, mimeType string, image []byte) (string, error) {
	parts := make([]genai.Part, 0, len(instructions)+1)
	for _, in := range instructions {
		parts = append(parts, genai.Text(in))
	}
	parts = append(parts, genai.ImageData(imageFormat(mimeType), image))

	model := c.genai.GenerativeModel(c.visionModel)
	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini: analyze image: %w", err)
	}
	return responseText(resp)
}

// responseText flattens the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: empty response")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

// imageFormat converts a MIME type like "image/png" to the bare format
// name the inline-data API expects
func imageFormat(mimeType string) string {
	if idx := strings.Index(mimeType, "/"); idx >= 0 {
		mimeType = mimeType[idx+1:]
	}
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	return strings.TrimSpace(mimeType)
}
