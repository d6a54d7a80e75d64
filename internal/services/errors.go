package services

import "errors"

// Error taxonomy shared by the services. Handlers translate these with
// errors.Is into HTTP statuses; the wrapped causes stay in the logs and
// are never echoed to clients.
var (
	// ErrNotFound - a record lookup or geocode query matched nothing
	ErrNotFound = errors.New("not found")
	// ErrUpstream - an external service call failed (network, status, payload)
	ErrUpstream = errors.New("upstream service failed")
	// ErrInvalidInput - caller-supplied fields are missing or malformed
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidResponse - an AI reply could not be parsed into the expected structure
	ErrInvalidResponse = errors.New("invalid response format")
	// ErrUnauthorized - the ownership check failed
	ErrUnauthorized = errors.New("not authorized")
	// ErrGeocode - a nearby-search location name could not be resolved
	ErrGeocode = errors.New("could not geocode provided location")
	// ErrMissingLocation - no origin could be derived for a nearby search
	ErrMissingLocation = errors.New("either coordinates (latitude & longitude) or a location name is required")
	// ErrNoLocationFound - the extractor saw no location in the description
	ErrNoLocationFound = errors.New("no location found in description")
)
