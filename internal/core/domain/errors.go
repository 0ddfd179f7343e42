package domain

import "errors"

var (
	// ErrNotFound is returned when a session, post, or stored key does not exist.
	ErrNotFound = errors.New("not found")

	// ErrProviderUnavailable means no map credential is configured.
	ErrProviderUnavailable = errors.New("map provider unavailable: api key required")

	// ErrNoViewport means the map has not reported bounds or center yet.
	ErrNoViewport = errors.New("map viewport not available")

	// ErrUnknownPOI is returned when an interaction references a POI outside the visible set.
	ErrUnknownPOI = errors.New("poi is not in the visible set")

	ErrInvalidViewport = errors.New("invalid viewport")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidFilter   = errors.New("invalid sub-category filter")
	ErrEmptyQuery      = errors.New("search query must not be empty")
	ErrInvalidPost     = errors.New("invalid post")
)
