package mapview

import (
	"github.com/samirrijal/tripmap/internal/core/domain"
	"github.com/samirrijal/tripmap/internal/pkg/geospatial"
)

// Geofence is the viewport box combined with the search circle.
type Geofence struct {
	Bounds       *domain.Bounds
	Center       domain.GeoPoint
	RadiusMeters float64
}

// Contains reports whether p is inside the bounds and within the radius, both inclusive.
func (g Geofence) Contains(p domain.GeoPoint) bool {
	if g.Bounds == nil {
		return false
	}
	if !geospatial.BoundsContains(*g.Bounds, p) {
		return false
	}
	return geospatial.Distance(p, g.Center) <= g.RadiusMeters
}

// Visibility is the output of the visibility gate.
type Visibility struct {
	Visible        []domain.POI
	AvailableTypes []domain.POIType
}

// ComputeVisible gates filtered through g. Available types are taken from
// all, the unfiltered set, so the category bar does not depend on the
// active filter. Without bounds both results are empty.
func ComputeVisible(filtered, all []domain.POI, g Geofence) Visibility {
	v := Visibility{
		Visible:        []domain.POI{},
		AvailableTypes: []domain.POIType{},
	}
	if g.Bounds == nil {
		return v
	}

	for _, p := range filtered {
		if g.Contains(p.Location()) {
			v.Visible = append(v.Visible, p)
		}
	}

	present := make(map[domain.POIType]bool, len(domain.POITypes))
	for _, p := range all {
		if present[p.Type] {
			continue
		}
		if g.Contains(p.Location()) {
			present[p.Type] = true
		}
	}
	for _, t := range domain.POITypes {
		if present[t] {
			v.AvailableTypes = append(v.AvailableTypes, t)
		}
	}
	return v
}
