package geospatial

import (
	"math"

	"github.com/samirrijal/tripmap/internal/core/domain"
)

// EarthRadiusMeters is the mean Earth radius.
const EarthRadiusMeters = 6371000.0

// Haversine calculates the great-circle distance in meters between two points.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

// Distance is Haversine over GeoPoints.
func Distance(a, b domain.GeoPoint) float64 {
	return Haversine(a.Lat, a.Lng, b.Lat, b.Lng)
}

// Destination returns the point reached by travelling meters from p along
// the initial bearing (degrees clockwise from north).
func Destination(p domain.GeoPoint, bearingDeg, meters float64) domain.GeoPoint {
	d := meters / EarthRadiusMeters
	brg := toRad(bearingDeg)
	lat1 := toRad(p.Lat)
	lng1 := toRad(p.Lng)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(brg))
	lng2 := lng1 + math.Atan2(
		math.Sin(brg)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*math.Sin(lat2),
	)

	return domain.GeoPoint{Lat: toDeg(lat2), Lng: normalizeLng(toDeg(lng2))}
}

// CircleBounds returns a box enclosing the circle of radiusMeters around center.
func CircleBounds(center domain.GeoPoint, radiusMeters float64) domain.Bounds {
	latDelta := toDeg(radiusMeters / EarthRadiusMeters)
	lngDelta := latDelta / math.Cos(toRad(center.Lat))

	return domain.Bounds{
		MinLat: math.Max(center.Lat-latDelta, -90),
		MinLng: normalizeLng(center.Lng - lngDelta),
		MaxLat: math.Min(center.Lat+latDelta, 90),
		MaxLng: normalizeLng(center.Lng + lngDelta),
	}
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

func normalizeLng(lng float64) float64 {
	for lng > 180 {
		lng -= 360
	}
	for lng < -180 {
		lng += 360
	}
	return lng
}
