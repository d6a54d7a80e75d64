package models

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"testing"
)

func TestGeoPointEWKT(t *testing.T) {
	p := NewGeoPoint(40.7128, -74.006)
	expected := "SRID=4326;POINT(-74.006 40.7128)"
	if got := p.EWKT(); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestGeoPointScanEWKT(t *testing.T) {
	var p GeoPoint
	if err := p.Scan("SRID=4326;POINT(-80.19362 25.7741728)"); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if p.Lng != -80.19362 || p.Lat != 25.7741728 {
		t.Errorf("Unexpected coordinates: %+v", p)
	}
}

// encodeEWKB builds the hex EWKB form PostGIS returns for a point
func encodeEWKB(lng, lat float64) string {
	buf := make([]byte, 0, 25)
	buf = append(buf, 1) // little endian
	buf = binary.LittleEndian.AppendUint32(buf, 1|ewkbSRIDFlag)
	buf = binary.LittleEndian.AppendUint32(buf, SRID)
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(lng))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(lat))
	return hex.EncodeToString(buf)
}

func TestGeoPointScanHexEWKB(t *testing.T) {
	var p GeoPoint
	if err := p.Scan(encodeEWKB(-74.006, 40.7128)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if p.Lng != -74.006 || p.Lat != 40.7128 {
		t.Errorf("Unexpected coordinates: %+v", p)
	}
}

func TestGeoPointScanGarbage(t *testing.T) {
	var p GeoPoint
	if err := p.Scan("not a point"); err == nil {
		t.Error("Expected error scanning garbage input")
	}
}

func TestGeoPointValueRoundTrip(t *testing.T) {
	p := NewGeoPoint(25.7741728, -80.19362)
	v, err := p.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	var back GeoPoint
	if err := back.Scan(v.(string)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if back != p {
		t.Errorf("Round trip mismatch: %+v != %+v", back, p)
	}
}
