package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/pkg/logger"
)

const (
	// DefaultBaseURL is the public Nominatim instance
	DefaultBaseURL = "https://nominatim.openstreetmap.org"
	// userAgent identifies this client to the Nominatim usage policy
	userAgent = "Disaster-Response-Platform/1.0"
)

// ErrNotFound is returned when the query matches no place
var ErrNotFound = errors.New("location not found")

// Client is a minimal Nominatim search client
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Nominatim client against the given base URL.
// An empty baseURL falls back to the public instance.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewWithHTTPClient creates a client with a caller-supplied *http.Client,
// e.g. an instrumented one.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	c := New(baseURL)
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c
}

// searchResult is a single candidate in the jsonv2 response
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Search resolves a free-text place name to coordinates, taking the single
// best match. Returns ErrNotFound when the service has no candidate.
func (c *Client) Search(ctx context.Context, query string) (lat, lon float64, err error) {
	log := logger.GetLogger("nominatim")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search", nil)
	if err != nil {
		return 0, 0, fmt.Errorf("create geocode request: %w", err)
	}

	q := req.URL.Query()
	q.Set("q", query)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocode request returned status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(results) == 0 {
		return 0, 0, ErrNotFound
	}

	best := results[0]
	lat, err = strconv.ParseFloat(best.Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse latitude %q: %w", best.Lat, err)
	}
	lon, err = strconv.ParseFloat(best.Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse longitude %q: %w", best.Lon, err)
	}

	log.Infof("Geocoded %q -> (%f, %f)", query, lat, lon)
	return lat, lon, nil
}
