package mapview

import (
	"github.com/paulmach/orb/geojson"

	"github.com/samirrijal/tripmap/internal/core/domain"
	"github.com/samirrijal/tripmap/internal/pkg/geospatial"
)

// Overlay colors.
const (
	circleFill   = "#22c55e"
	circleStroke = "#16a34a"
	regionFill   = "#fb923c"
	regionStroke = "#f97316"
	fillOpacity  = 0.25
)

// CategoryState is one entry of the category filter bar.
type CategoryState struct {
	ID      domain.Category `json:"id"`
	Label   string          `json:"label"`
	Active  bool            `json:"active"`
	Enabled bool            `json:"enabled"`
}

// Marker is a POI pin on the map.
type Marker struct {
	ID       string         `json:"id"`
	Type     domain.POIType `json:"type"`
	Lat      float64        `json:"lat"`
	Lng      float64        `json:"lng"`
	Color    string         `json:"color"`
	Selected bool           `json:"selected"`
}

// CircleOverlay describes the search geofence drawn on the map.
type CircleOverlay struct {
	Center       domain.GeoPoint `json:"center"`
	RadiusMeters float64         `json:"radius_m"`
	Extent       domain.Bounds   `json:"extent"`
	FillColor    string          `json:"fill_color"`
	FillOpacity  float64         `json:"fill_opacity"`
	StrokeColor  string          `json:"stroke_color"`
}

// RegionOverlay is the region view decoration.
type RegionOverlay struct {
	Polygon     *geojson.Feature `json:"polygon"`
	FillColor   string           `json:"fill_color"`
	StrokeColor string           `json:"stroke_color"`
	POICount    int              `json:"poi_count"`
}

// View is everything the presentation layer renders for a session.
type View struct {
	Layout       domain.Layout          `json:"layout"`
	Zoom         int                    `json:"zoom"`
	Bounds       *domain.Bounds         `json:"bounds,omitempty"`
	SearchCenter domain.GeoPoint        `json:"search_center"`
	Filters      domain.FilterSelection `json:"filters"`
	Categories   []CategoryState        `json:"categories"`
	Selection    domain.Selection       `json:"selection"`
	Visible      []domain.POI           `json:"visible"`
	Markers      []Marker               `json:"markers"`
	TotalCount   int                    `json:"total_count"`
	Circle       CircleOverlay          `json:"circle"`
	RegionView   bool                   `json:"region_view"`
	SidebarMode  domain.SidebarMode     `json:"sidebar_mode"`
	Region       *RegionOverlay         `json:"region,omitempty"`
	Detail       *domain.POI            `json:"detail,omitempty"`
	MobileCard   *domain.POI            `json:"mobile_card,omitempty"`
}

// EffectiveSidebarMode is product whenever region view is off.
func (s *State) EffectiveSidebarMode() domain.SidebarMode {
	if !s.RegionView {
		return domain.SidebarProduct
	}
	return s.SidebarMode
}

// BuildView derives the render model from s.
func BuildView(s *State) View {
	v := View{
		Layout:       s.Layout,
		Zoom:         s.Zoom,
		Bounds:       s.Bounds,
		SearchCenter: s.SearchCenter,
		Filters:      s.Filters,
		Categories:   categoryBar(s),
		Selection:    s.Selection,
		Visible:      s.Visible,
		Markers:      make([]Marker, 0, len(s.Visible)),
		TotalCount:   len(s.POIs),
		Circle: CircleOverlay{
			Center:       s.SearchCenter,
			RadiusMeters: s.RadiusMeters,
			Extent:       geospatial.CircleBounds(s.SearchCenter, s.RadiusMeters),
			FillColor:    circleFill,
			FillOpacity:  fillOpacity,
			StrokeColor:  circleStroke,
		},
		RegionView:  s.RegionView,
		SidebarMode: s.EffectiveSidebarMode(),
	}
	if v.Visible == nil {
		v.Visible = []domain.POI{}
	}

	for _, p := range s.Visible {
		v.Markers = append(v.Markers, Marker{
			ID:       p.ID,
			Type:     p.Type,
			Lat:      p.Lat,
			Lng:      p.Lng,
			Color:    p.Type.MarkerColor(),
			Selected: s.Selection.SelectedID != nil && *s.Selection.SelectedID == p.ID,
		})
	}

	if s.RegionView {
		v.Region = &RegionOverlay{
			Polygon:     geospatial.RegionFeature(s.SearchCenter),
			FillColor:   regionFill,
			StrokeColor: regionStroke,
			POICount:    len(s.Visible),
		}
	}

	if s.Selection.DetailID != nil {
		if p, ok := s.VisiblePOI(*s.Selection.DetailID); ok {
			v.Detail = &p
		}
	}
	if s.Selection.SelectedID != nil && v.Detail == nil {
		if p, ok := s.VisiblePOI(*s.Selection.SelectedID); ok && !p.Type.DetailEligible() {
			v.MobileCard = &p
		}
	}
	return v
}

func categoryBar(s *State) []CategoryState {
	avail := make(map[domain.POIType]bool, len(s.AvailableTypes))
	for _, t := range s.AvailableTypes {
		avail[t] = true
	}
	out := make([]CategoryState, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		out = append(out, CategoryState{
			ID:      c,
			Label:   c.Label(),
			Active:  s.Filters.Category == c,
			Enabled: c == domain.CategoryAll || avail[domain.POIType(c)],
		})
	}
	return out
}
