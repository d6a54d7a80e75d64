package models

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SRID for WGS84, the spatial reference every point in the platform uses
const SRID = 4326

// GeoPoint is a WGS84 longitude/latitude pair. It is stored in a PostGIS
// geography(Point,4326) column: written as extended well-known text and
// read back from either EWKT or the hex EWKB PostGIS returns by default.
type GeoPoint struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// NewGeoPoint builds a point from a latitude/longitude pair
func NewGeoPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Lng: lng, Lat: lat}
}

// EWKT renders the point as SRID-prefixed well-known text,
// e.g. "SRID=4326;POINT(-80.19362 25.7741728)"
func (p GeoPoint) EWKT() string {
	return fmt.Sprintf("SRID=%d;POINT(%s %s)", SRID,
		strconv.FormatFloat(p.Lng, 'f', -1, 64),
		strconv.FormatFloat(p.Lat, 'f', -1, 64))
}

// Value implements driver.Valuer
func (p GeoPoint) Value() (driver.Value, error) {
	return p.EWKT(), nil
}

// Scan implements sql.Scanner
func (p *GeoPoint) Scan(src interface{}) error {
	if src == nil {
		return nil
	}

	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("geopoint: cannot scan %T", src)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if strings.Contains(s, "POINT") {
		return p.parseEWKT(s)
	}
	return p.parseHexEWKB(s)
}

func (p *GeoPoint) parseEWKT(s string) error {
	open := strings.Index(s, "(")
	closeIdx := strings.Index(s, ")")
	if open < 0 || closeIdx < open {
		return fmt.Errorf("geopoint: malformed WKT %q", s)
	}
	fields := strings.Fields(s[open+1 : closeIdx])
	if len(fields) != 2 {
		return fmt.Errorf("geopoint: expected 2 coordinates in %q", s)
	}
	lng, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return fmt.Errorf("geopoint: parse longitude: %w", err)
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return fmt.Errorf("geopoint: parse latitude: %w", err)
	}
	p.Lng, p.Lat = lng, lat
	return nil
}

// ewkbSRIDFlag marks an EWKB geometry that carries an embedded SRID
const ewkbSRIDFlag = 0x20000000

func (p *GeoPoint) parseHexEWKB(s string) error {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("geopoint: decode hex EWKB: %w", err)
	}
	// byte order + geometry type + optional SRID + 2 coordinates
	if len(raw) < 1+4 {
		return fmt.Errorf("geopoint: EWKB too short (%d bytes)", len(raw))
	}

	var order binary.ByteOrder = binary.LittleEndian
	if raw[0] == 0 {
		order = binary.BigEndian
	}
	raw = raw[1:]

	geomType := order.Uint32(raw[:4])
	raw = raw[4:]

	if geomType&ewkbSRIDFlag != 0 {
		if len(raw) < 4 {
			return fmt.Errorf("geopoint: EWKB truncated before SRID")
		}
		raw = raw[4:] // SRID is always 4326 here
	}

	if geomType&0xFF != 1 { // 1 = point
		return fmt.Errorf("geopoint: unsupported geometry type %d", geomType&0xFF)
	}
	if len(raw) < 16 {
		return fmt.Errorf("geopoint: EWKB truncated before coordinates")
	}

	p.Lng = math.Float64frombits(order.Uint64(raw[:8]))
	p.Lat = math.Float64frombits(order.Uint64(raw[8:16]))
	return nil
}

// GormDataType tells GORM which column type to migrate
func (GeoPoint) GormDataType() string {
	return "geography(Point,4326)"
}
