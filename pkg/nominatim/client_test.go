package nominatim

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchFirstMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Miami" {
			t.Errorf("Expected query 'Miami', got %q", got)
		}
		if got := r.URL.Query().Get("format"); got != "jsonv2" {
			t.Errorf("Expected format 'jsonv2', got %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("Expected limit '1', got %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "Disaster-Response-Platform/1.0" {
			t.Errorf("Unexpected User-Agent %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"25.7741728","lon":"-80.19362","display_name":"Miami, Florida"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	lat, lon, err := c.Search(context.Background(), "Miami")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if lat != 25.7741728 {
		t.Errorf("Expected lat 25.7741728, got %f", lat)
	}
	if lon != -80.19362 {
		t.Errorf("Expected lon -80.19362, got %f", lon)
	}
}

func TestSearchNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, _, err := c.Search(context.Background(), "Nowhereville-xyz")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSearchUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, _, err := c.Search(context.Background(), "Tokyo")
	if err == nil {
		t.Fatal("Expected error on 503, got nil")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("Upstream failure must not be reported as ErrNotFound")
	}
}

func TestSearchMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, _, err := c.Search(context.Background(), "Tokyo")
	if err == nil {
		t.Fatal("Expected decode error, got nil")
	}
}
