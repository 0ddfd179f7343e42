package mapview

import "github.com/samirrijal/tripmap/internal/core/domain"

// Invalidation records a selection field cleared because its POI went stale.
type Invalidation struct {
	Field string `json:"field"`
	ID    string `json:"id"`
}

// transition collects the commands one event produces. Pan commands are
// emitted immediately; scroll commands wait until derived state has been
// recomputed so they reference the fresh list.
type transition struct {
	commands []domain.Command
	deferred []domain.Command
}

func (t *transition) panTo(p domain.GeoPoint) {
	t.commands = append(t.commands, domain.Command{Kind: domain.CommandPanTo, Target: &p})
}

func (t *transition) scrollIntoView(c domain.Container, id string, axis domain.Axis) {
	t.deferred = append(t.deferred, domain.Command{
		Kind:      domain.CommandScrollIntoView,
		Container: c,
		ItemID:    id,
		Axis:      axis,
	})
}

// flush appends deferred scrolls whose item is still in the visible set.
func (t *transition) flush(s *State) []domain.Command {
	out := t.commands
	for _, cmd := range t.deferred {
		if _, ok := s.VisiblePOI(cmd.ItemID); ok {
			out = append(out, cmd)
		}
	}
	if out == nil {
		out = []domain.Command{}
	}
	return out
}

// selectPOI highlights poi. Desktop pans the camera and scrolls the sidebar;
// mobile keeps the camera still and scrolls the carousel.
func (t *transition) selectPOI(s *State, poi domain.POI) {
	id := poi.ID
	s.Selection.SelectedID = &id
	if s.IsMobile() {
		t.scrollIntoView(domain.ContainerCarousel, id, domain.AxisHorizontal)
		return
	}
	t.panTo(poi.Location())
	t.scrollIntoView(domain.ContainerSidebar, id, domain.AxisVertical)
}

// openDetail selects poi and expands it when its type has a detail view.
func (t *transition) openDetail(s *State, poi domain.POI) {
	t.selectPOI(s, poi)
	if poi.Type.DetailEligible() {
		id := poi.ID
		s.Selection.DetailID = &id
	}
}

// invalidate clears selection fields that reference POIs outside the
// current sets. Selected and focused ids must be visible; the detail id
// must be both filtered-in and visible.
func invalidate(s *State) []Invalidation {
	var out []Invalidation

	sel := &s.Selection
	if sel.SelectedID != nil {
		if _, ok := findPOI(s.Visible, *sel.SelectedID); !ok {
			out = append(out, Invalidation{Field: "selected", ID: *sel.SelectedID})
			sel.SelectedID = nil
		}
	}
	if sel.DetailID != nil {
		_, filtered := findPOI(s.Filtered, *sel.DetailID)
		_, visible := findPOI(s.Visible, *sel.DetailID)
		if !filtered || !visible {
			out = append(out, Invalidation{Field: "detail", ID: *sel.DetailID})
			sel.DetailID = nil
		}
	}
	if sel.MobileFocusedID != nil {
		if _, ok := findPOI(s.Visible, *sel.MobileFocusedID); !ok {
			out = append(out, Invalidation{Field: "mobile_focused", ID: *sel.MobileFocusedID})
			sel.MobileFocusedID = nil
		}
	}
	return out
}

// nearestCard returns the id of the visible card whose center is closest to
// the frame's viewport center. Ties keep the earlier card.
func nearestCard(s *State, frame domain.CarouselFrame) (string, bool) {
	best := ""
	bestDist := 0.0
	found := false
	for _, card := range frame.Cards {
		if _, ok := s.VisiblePOI(card.ID); !ok {
			continue
		}
		center := card.Left + card.Width/2
		dist := center - frame.ViewportCenter
		if dist < 0 {
			dist = -dist
		}
		if !found || dist < bestDist {
			best, bestDist, found = card.ID, dist, true
		}
	}
	return best, found
}
