package mapview

import "github.com/samirrijal/tripmap/internal/core/domain"

// Filter narrows pois by the category selection, preserving order.
// Sub-category levels only apply while the category is spot.
func Filter(pois []domain.POI, f domain.FilterSelection) []domain.POI {
	if f.Category == domain.CategoryAll {
		return pois
	}

	out := make([]domain.POI, 0, len(pois))
	for _, p := range pois {
		if domain.Category(p.Type) != f.Category {
			continue
		}
		if f.Category == domain.Category(domain.TypeSpot) {
			if f.SpotSub != nil && (p.SpotSub == nil || *p.SpotSub != *f.SpotSub) {
				continue
			}
			if f.SpotSub != nil && f.SpotSub2 != nil && (p.SpotSub2 == nil || *p.SpotSub2 != *f.SpotSub2) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}
