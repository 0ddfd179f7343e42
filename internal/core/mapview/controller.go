package mapview

import (
	"fmt"
	"math"

	"github.com/samirrijal/tripmap/internal/core/domain"
)

// Outcome describes what one transition did.
type Outcome struct {
	Commands    []domain.Command `json:"commands"`
	Regenerated int              `json:"regenerated"`
	NoViewport  bool             `json:"no_viewport"`
	Invalidated []Invalidation   `json:"invalidated,omitempty"`
}

// Controller applies map events to a State. Every transition recomputes the
// derived sets in pipeline order: filter, visibility gate, selection
// validation, then flushes deferred scroll commands.
type Controller struct {
	rnd Random
}

// NewController returns a Controller drawing POIs from rnd.
// A nil rnd uses SystemRandom.
func NewController(rnd Random) *Controller {
	if rnd == nil {
		rnd = SystemRandom()
	}
	return &Controller{rnd: rnd}
}

func (c *Controller) run(s *State, fn func(t *transition, o *Outcome) error) (Outcome, error) {
	var t transition
	var o Outcome
	if err := fn(&t, &o); err != nil {
		return Outcome{}, err
	}
	o.Invalidated = Recompute(s)
	o.Commands = t.flush(s)
	return o, nil
}

// Recompute refreshes the filtered and visible sets and clears stale
// selection fields.
func Recompute(s *State) []Invalidation {
	s.Filtered = Filter(s.POIs, s.Filters)
	v := ComputeVisible(s.Filtered, s.POIs, s.Geofence())
	s.Visible = v.Visible
	s.AvailableTypes = v.AvailableTypes
	return invalidate(s)
}

func (c *Controller) regenerate(s *State, o *Outcome) {
	s.POIs = Generate(*s.Bounds, s.Zoom, c.rnd)
	s.Selection.Clear()
	o.Regenerated = len(s.POIs)
}

// observe records whatever the map reported.
func observe(s *State, vp domain.Viewport) {
	if vp.Zoom != nil {
		s.Zoom = int(math.Floor(*vp.Zoom))
	}
	if vp.Center != nil {
		p := *vp.Center
		s.Center = &p
	}
	if vp.Bounds != nil {
		b := *vp.Bounds
		s.Bounds = &b
	}
}

// Idle handles the map settling after a pan or zoom. The first idle with
// bounds seeds POIs around the map center; later ones only re-gate.
func (c *Controller) Idle(s *State, vp domain.Viewport) (Outcome, error) {
	if vp.Bounds != nil && !vp.Bounds.Valid() {
		return Outcome{}, fmt.Errorf("%w: bounds out of range", domain.ErrInvalidViewport)
	}
	return c.run(s, func(_ *transition, o *Outcome) error {
		observe(s, vp)
		if vp.Bounds == nil {
			s.Bounds = nil
			o.NoViewport = true
			return nil
		}
		if !s.Initialized && len(s.POIs) == 0 {
			s.Initialized = true
			if s.Center != nil {
				s.SearchCenter = *s.Center
			}
			c.regenerate(s, o)
		}
		return nil
	})
}

// SearchAgain re-centers the search circle on the current map center and
// regenerates POIs for the current bounds and zoom. vp may carry fresher
// values than the last idle event. Without bounds or center it is a no-op.
func (c *Controller) SearchAgain(s *State, vp domain.Viewport) (Outcome, error) {
	if vp.Bounds != nil && !vp.Bounds.Valid() {
		return Outcome{}, fmt.Errorf("%w: bounds out of range", domain.ErrInvalidViewport)
	}
	return c.run(s, func(_ *transition, o *Outcome) error {
		observe(s, vp)
		if s.Bounds == nil || s.Center == nil {
			o.NoViewport = true
			return nil
		}
		s.Initialized = true
		s.SearchCenter = *s.Center
		c.regenerate(s, o)
		return nil
	})
}

// SetFilters applies a category selection with the cascade rules. It never
// regenerates or moves the map.
func (c *Controller) SetFilters(s *State, cat domain.Category, sub *domain.SpotSub, sub2 *domain.SpotSub2) (Outcome, error) {
	return c.run(s, func(_ *transition, _ *Outcome) error {
		return s.Filters.Apply(cat, sub, sub2)
	})
}

// Select highlights a visible POI.
func (c *Controller) Select(s *State, id string) (Outcome, error) {
	return c.run(s, func(t *transition, _ *Outcome) error {
		poi, ok := s.VisiblePOI(id)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownPOI, id)
		}
		t.selectPOI(s, poi)
		return nil
	})
}

// OpenDetail selects a visible POI and expands it if its type allows.
func (c *Controller) OpenDetail(s *State, id string) (Outcome, error) {
	return c.run(s, func(t *transition, _ *Outcome) error {
		poi, ok := s.VisiblePOI(id)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownPOI, id)
		}
		t.openDetail(s, poi)
		return nil
	})
}

// MarkerClicked handles a tap on a map marker. On mobile, detail-eligible
// markers open their detail; everything else is a plain selection.
func (c *Controller) MarkerClicked(s *State, id string) (Outcome, error) {
	return c.run(s, func(t *transition, _ *Outcome) error {
		poi, ok := s.VisiblePOI(id)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownPOI, id)
		}
		if s.IsMobile() && poi.Type.DetailEligible() {
			t.openDetail(s, poi)
			return nil
		}
		t.selectPOI(s, poi)
		return nil
	})
}

// CloseDetail collapses the detail view and keeps the selection.
func (c *Controller) CloseDetail(s *State) (Outcome, error) {
	return c.run(s, func(_ *transition, _ *Outcome) error {
		s.Selection.DetailID = nil
		return nil
	})
}

// CarouselScrolled tracks the card nearest the carousel center on mobile.
// A new focus becomes the selection and pans the map once; the carousel is
// not scrolled back since the user is already scrolling it.
func (c *Controller) CarouselScrolled(s *State, frame domain.CarouselFrame) (Outcome, error) {
	return c.run(s, func(t *transition, _ *Outcome) error {
		if !s.IsMobile() {
			return nil
		}
		id, ok := nearestCard(s, frame)
		if !ok {
			return nil
		}
		if s.Selection.MobileFocusedID != nil && *s.Selection.MobileFocusedID == id {
			return nil
		}
		poi, _ := s.VisiblePOI(id)
		focused, selected := id, id
		s.Selection.MobileFocusedID = &focused
		s.Selection.SelectedID = &selected
		t.panTo(poi.Location())
		return nil
	})
}

// SetLayout switches between desktop and mobile presentation. Selection
// state is kept; both presentations read the same fields.
func (c *Controller) SetLayout(s *State, layout domain.Layout) (Outcome, error) {
	return c.run(s, func(_ *transition, _ *Outcome) error {
		switch layout {
		case domain.LayoutDesktop, domain.LayoutMobile:
			s.Layout = layout
			return nil
		}
		return fmt.Errorf("%w: layout %q", domain.ErrInvalidViewport, layout)
	})
}

// SetRegionView toggles the region decoration. A nil mode keeps the current one.
func (c *Controller) SetRegionView(s *State, enabled bool, mode *domain.SidebarMode) (Outcome, error) {
	return c.run(s, func(_ *transition, _ *Outcome) error {
		if mode != nil {
			switch *mode {
			case domain.SidebarRegion, domain.SidebarProduct:
				s.SidebarMode = *mode
			default:
				return fmt.Errorf("%w: sidebar mode %q", domain.ErrInvalidFilter, *mode)
			}
		}
		s.RegionView = enabled
		return nil
	})
}
