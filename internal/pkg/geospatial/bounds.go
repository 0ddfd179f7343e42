package geospatial

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/samirrijal/tripmap/internal/core/domain"
)

// ToOrb converts domain bounds into an orb.Bound. Boxes crossing the
// antimeridian are split by the caller, orb has no notion of wrap-around.
func ToOrb(b domain.Bounds) orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinLng, b.MinLat},
		Max: orb.Point{b.MaxLng, b.MaxLat},
	}
}

// BoundsContains reports whether p lies inside b, edges included.
func BoundsContains(b domain.Bounds, p domain.GeoPoint) bool {
	pt := orb.Point{p.Lng, p.Lat}
	if !b.CrossesAntimeridian() {
		return ToOrb(b).Contains(pt)
	}
	east := orb.Bound{Min: orb.Point{b.MinLng, b.MinLat}, Max: orb.Point{180, b.MaxLat}}
	west := orb.Bound{Min: orb.Point{-180, b.MinLat}, Max: orb.Point{b.MaxLng, b.MaxLat}}
	return east.Contains(pt) || west.Contains(pt)
}

// LngSpan returns the east-west width of b in degrees, honouring wrap-around.
func LngSpan(b domain.Bounds) float64 {
	if b.CrossesAntimeridian() {
		return b.MaxLng + 360 - b.MinLng
	}
	return b.MaxLng - b.MinLng
}

// Region polygon offsets around the search center, in degrees.
const (
	regionDLat = 0.025
	regionDLng = 0.03
)

// RegionPolygon returns the decorative district outline drawn in region view.
func RegionPolygon(center domain.GeoPoint) orb.Polygon {
	lat, lng := center.Lat, center.Lng
	ring := orb.Ring{
		{lng - regionDLng*0.6, lat + regionDLat},
		{lng + regionDLng, lat + regionDLat*0.4},
		{lng + regionDLng*1.2, lat},
		{lng + regionDLng*0.4, lat - regionDLat*0.6},
		{lng - regionDLng*0.8, lat - regionDLat},
		{lng - regionDLng*1.1, lat - regionDLat*0.2},
	}
	// GeoJSON rings are closed.
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

// RegionFeature wraps the region polygon in a GeoJSON feature.
func RegionFeature(center domain.GeoPoint) *geojson.Feature {
	f := geojson.NewFeature(RegionPolygon(center))
	f.Properties["kind"] = "region"
	return f
}
