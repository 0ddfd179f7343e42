package domain

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds represents a map viewport as its south-west and north-east corners.
// MinLng > MaxLng means the box crosses the antimeridian.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// SouthWest returns the south-west corner.
func (b Bounds) SouthWest() GeoPoint { return GeoPoint{Lat: b.MinLat, Lng: b.MinLng} }

// NorthEast returns the north-east corner.
func (b Bounds) NorthEast() GeoPoint { return GeoPoint{Lat: b.MaxLat, Lng: b.MaxLng} }

// CrossesAntimeridian reports whether the box wraps past longitude 180.
func (b Bounds) CrossesAntimeridian() bool { return b.MinLng > b.MaxLng }

// Valid reports whether the latitudes are ordered and every value is in range.
func (b Bounds) Valid() bool {
	return b.MinLat <= b.MaxLat &&
		b.MinLat >= -90 && b.MaxLat <= 90 &&
		b.MinLng >= -180 && b.MinLng <= 180 &&
		b.MaxLng >= -180 && b.MaxLng <= 180
}

// Viewport is what the map provider reports after it settles.
// Nil fields mean the provider has not produced the value yet. Zoom may be
// fractional while a pinch or animated zoom settles.
type Viewport struct {
	Bounds *Bounds   `json:"bounds,omitempty"`
	Center *GeoPoint `json:"center,omitempty"`
	Zoom   *float64  `json:"zoom,omitempty"`
}
