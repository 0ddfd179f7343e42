package mapview

import (
	"github.com/samirrijal/tripmap/internal/core/domain"
)

// fixedRandom cycles through vals.
type fixedRandom struct {
	vals []float64
	i    int
}

func (r *fixedRandom) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

var (
	seoulCenter = domain.GeoPoint{Lat: 37.5665, Lng: 126.978}
	seoulBounds = domain.Bounds{MinLat: 37.54, MinLng: 126.95, MaxLat: 37.59, MaxLng: 127.01}
)

func zoomPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

func poi(id string, t domain.POIType, lat, lng float64) domain.POI {
	return domain.POI{ID: id, Type: t, Lat: lat, Lng: lng, Name: id}
}

func spotPOI(id string, sub domain.SpotSub, sub2 domain.SpotSub2, lat, lng float64) domain.POI {
	p := poi(id, domain.TypeSpot, lat, lng)
	p.SpotSub = &sub
	p.SpotSub2 = &sub2
	return p
}

// readyState returns an initialized session over seoulBounds holding pois.
func readyState(layout domain.Layout, pois ...domain.POI) *State {
	s := NewState(Options{Center: seoulCenter, Zoom: 14, RadiusMeters: 1500, Mobile: layout == domain.LayoutMobile})
	b := seoulBounds
	c := seoulCenter
	s.Bounds = &b
	s.Center = &c
	s.Initialized = true
	s.POIs = pois
	Recompute(s)
	return s
}
