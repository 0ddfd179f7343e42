package mapview

import "github.com/samirrijal/tripmap/internal/core/domain"

// State is the single-writer container for one map session. Callers load a
// State, apply one Controller transition, and store the result whole.
type State struct {
	Initialized  bool                   `json:"initialized"`
	Layout       domain.Layout          `json:"layout"`
	Zoom         int                    `json:"zoom"`
	Bounds       *domain.Bounds         `json:"bounds,omitempty"`
	Center       *domain.GeoPoint       `json:"center,omitempty"`
	SearchCenter domain.GeoPoint        `json:"search_center"`
	RadiusMeters float64                `json:"radius_m"`
	POIs         []domain.POI           `json:"pois"`
	Filters      domain.FilterSelection `json:"filters"`
	Selection    domain.Selection       `json:"selection"`
	RegionView   bool                   `json:"region_view"`
	SidebarMode  domain.SidebarMode     `json:"sidebar_mode"`

	// Derived on every transition.
	Filtered       []domain.POI     `json:"filtered"`
	Visible        []domain.POI     `json:"visible"`
	AvailableTypes []domain.POIType `json:"available_types"`
}

// Options seed a new session.
type Options struct {
	Center       domain.GeoPoint
	Zoom         int
	RadiusMeters float64
	Mobile       bool
}

// NewState returns an uninitialized session with no POIs.
func NewState(opts Options) *State {
	layout := domain.LayoutDesktop
	if opts.Mobile {
		layout = domain.LayoutMobile
	}
	return &State{
		Layout:         layout,
		Zoom:           opts.Zoom,
		SearchCenter:   opts.Center,
		RadiusMeters:   opts.RadiusMeters,
		POIs:           []domain.POI{},
		Filters:        domain.DefaultFilters(),
		SidebarMode:    domain.SidebarProduct,
		Filtered:       []domain.POI{},
		Visible:        []domain.POI{},
		AvailableTypes: []domain.POIType{},
	}
}

// Clone returns a copy that shares no slices or pointers with s that a
// transition writes through.
func (s *State) Clone() *State {
	c := *s
	if s.Bounds != nil {
		b := *s.Bounds
		c.Bounds = &b
	}
	if s.Center != nil {
		p := *s.Center
		c.Center = &p
	}
	c.POIs = append([]domain.POI(nil), s.POIs...)
	c.Filtered = append([]domain.POI(nil), s.Filtered...)
	c.Visible = append([]domain.POI(nil), s.Visible...)
	c.AvailableTypes = append([]domain.POIType(nil), s.AvailableTypes...)
	return &c
}

// Geofence returns the current visibility gate parameters.
func (s *State) Geofence() Geofence {
	return Geofence{Bounds: s.Bounds, Center: s.SearchCenter, RadiusMeters: s.RadiusMeters}
}

// VisiblePOI looks id up in the visible set.
func (s *State) VisiblePOI(id string) (domain.POI, bool) {
	return findPOI(s.Visible, id)
}

// IsMobile reports whether the session uses the mobile presentation.
func (s *State) IsMobile() bool { return s.Layout == domain.LayoutMobile }

func findPOI(pois []domain.POI, id string) (domain.POI, bool) {
	for _, p := range pois {
		if p.ID == id {
			return p, true
		}
	}
	return domain.POI{}, false
}
