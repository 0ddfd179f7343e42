package domain

import "fmt"

// POI is a synthetic point of interest placed on the map.
type POI struct {
	ID       string    `json:"id"`
	Type     POIType   `json:"type"`
	Lat      float64   `json:"lat"`
	Lng      float64   `json:"lng"`
	SpotSub  *SpotSub  `json:"spot_sub,omitempty"`
	SpotSub2 *SpotSub2 `json:"spot_sub2,omitempty"`
	Name     string    `json:"name"`
	Image    string    `json:"image"`
	Price    *int      `json:"price,omitempty"`
	Rating   *float64  `json:"rating,omitempty"`
	Reviews  *int      `json:"reviews,omitempty"`
}

// Location returns the POI coordinates.
func (p POI) Location() GeoPoint { return GeoPoint{Lat: p.Lat, Lng: p.Lng} }

// FilterSelection is the category state driving the filter pipeline.
// Lower levels are only set while their parent level is set.
type FilterSelection struct {
	Category Category  `json:"category"`
	SpotSub  *SpotSub  `json:"spot_sub,omitempty"`
	SpotSub2 *SpotSub2 `json:"spot_sub2,omitempty"`
}

// DefaultFilters returns the "all" selection.
func DefaultFilters() FilterSelection {
	return FilterSelection{Category: CategoryAll}
}

// SetCategory changes the top level. Leaving spot clears both lower levels.
func (f *FilterSelection) SetCategory(c Category) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, c)
	}
	f.Category = c
	if c != Category(TypeSpot) {
		f.SpotSub = nil
		f.SpotSub2 = nil
	}
	return nil
}

// SetSpotSub changes the second level. A nil sub clears it; any change of
// second level clears the third level.
func (f *FilterSelection) SetSpotSub(s *SpotSub) error {
	if s == nil {
		f.SpotSub = nil
		f.SpotSub2 = nil
		return nil
	}
	if f.Category != Category(TypeSpot) {
		return fmt.Errorf("%w: spot_sub requires category spot", ErrInvalidFilter)
	}
	if !s.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFilter, *s)
	}
	if f.SpotSub == nil || *f.SpotSub != *s {
		f.SpotSub2 = nil
	}
	v := *s
	f.SpotSub = &v
	return nil
}

// SetSpotSub2 changes the third level. It must belong to the current second level.
func (f *FilterSelection) SetSpotSub2(s2 *SpotSub2) error {
	if s2 == nil {
		f.SpotSub2 = nil
		return nil
	}
	if f.SpotSub == nil {
		return fmt.Errorf("%w: spot_sub2 requires spot_sub", ErrInvalidFilter)
	}
	if !f.SpotSub.Allows(*s2) {
		return fmt.Errorf("%w: %q is not an option of %q", ErrInvalidFilter, *s2, *f.SpotSub)
	}
	v := *s2
	f.SpotSub2 = &v
	return nil
}

// Apply sets all three levels top-down so the cascade rules hold.
func (f *FilterSelection) Apply(c Category, s *SpotSub, s2 *SpotSub2) error {
	next := *f
	if err := next.SetCategory(c); err != nil {
		return err
	}
	if err := next.SetSpotSub(s); err != nil {
		return err
	}
	if err := next.SetSpotSub2(s2); err != nil {
		return err
	}
	*f = next
	return nil
}

// Layout is the responsive presentation mode.
type Layout string

const (
	LayoutDesktop Layout = "desktop"
	LayoutMobile  Layout = "mobile"
)

// SidebarMode selects what the desktop sidebar shows while region view is on.
type SidebarMode string

const (
	SidebarRegion  SidebarMode = "region"
	SidebarProduct SidebarMode = "product"
)

// Selection holds the ids the user is interacting with. Each id, when set,
// references a POI in the current visible set.
type Selection struct {
	SelectedID      *string `json:"selected_id,omitempty"`
	DetailID        *string `json:"detail_id,omitempty"`
	MobileFocusedID *string `json:"mobile_focused_id,omitempty"`
}

// Clear resets every field.
func (s *Selection) Clear() {
	*s = Selection{}
}

// Container names a scrollable list in the presentation layer.
type Container string

const (
	ContainerSidebar  Container = "sidebar"
	ContainerCarousel Container = "carousel"
)

// Axis is a scroll direction.
type Axis string

const (
	AxisVertical   Axis = "vertical"
	AxisHorizontal Axis = "horizontal"
)

// CommandKind identifies a command sent back to the map client.
type CommandKind string

const (
	CommandPanTo          CommandKind = "pan_to"
	CommandScrollIntoView CommandKind = "scroll_into_view"
)

// Command is an instruction for the map client produced by a transition.
type Command struct {
	Kind      CommandKind `json:"kind"`
	Target    *GeoPoint   `json:"target,omitempty"`
	Container Container   `json:"container,omitempty"`
	ItemID    string      `json:"item_id,omitempty"`
	Axis      Axis        `json:"axis,omitempty"`
}

// CarouselCard is the measured horizontal extent of one carousel card.
type CarouselCard struct {
	ID    string  `json:"id"`
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
}

// CarouselFrame is a snapshot of the mobile carousel after a scroll.
type CarouselFrame struct {
	ViewportCenter float64        `json:"viewport_center"`
	Cards          []CarouselCard `json:"cards"`
}
