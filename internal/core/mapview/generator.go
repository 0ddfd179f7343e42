package mapview

import (
	"fmt"
	"math"
	"net/url"

	"github.com/samirrijal/tripmap/internal/core/domain"
	"github.com/samirrijal/tripmap/internal/pkg/geospatial"
)

// CountForZoom returns how many POIs of each type are generated at zoom.
func CountForZoom(zoom int) int {
	switch {
	case zoom >= 16:
		return 10
	case zoom >= 15:
		return 14
	case zoom >= 14:
		return 18
	case zoom >= 13:
		return 24
	case zoom >= 12:
		return 30
	default:
		return 36
	}
}

// Generate fills b with CountForZoom(zoom) POIs of every type. Ids share one
// sequence across types and restart at 1 for every batch; callers clear any
// selection that pointed into the previous batch.
func Generate(b domain.Bounds, zoom int, rnd Random) []domain.POI {
	perType := CountForZoom(zoom)
	pois := make([]domain.POI, 0, perType*len(domain.POITypes))

	seq := 1
	for _, t := range domain.POITypes {
		for i := 0; i < perType; i++ {
			pos := randomPointIn(b, rnd)
			id := fmt.Sprintf("%s-%d", t, seq)
			seq++

			p := domain.POI{
				ID:    id,
				Type:  t,
				Lat:   pos.Lat,
				Lng:   pos.Lng,
				Name:  t.Title(i),
				Image: imageURL(id),
			}

			if t == domain.TypeSpot {
				sub := domain.SpotSubs[i%len(domain.SpotSubs)]
				p.SpotSub = &sub
				if opts := sub.Options(); len(opts) > 0 {
					sub2 := opts[i%len(opts)]
					p.SpotSub2 = &sub2
				}
			}

			if t.HasOffer() {
				price := int(math.Floor(40000 + rnd.Float64()*200000))
				rating := math.Round((3+rnd.Float64()*2)*10) / 10
				reviews := int(math.Floor(10 + rnd.Float64()*900))
				p.Price = &price
				p.Rating = &rating
				p.Reviews = &reviews
			}

			pois = append(pois, p)
		}
	}
	return pois
}

// randomPointIn draws latitude then longitude uniformly between the corners.
func randomPointIn(b domain.Bounds, rnd Random) domain.GeoPoint {
	sw, ne := b.SouthWest(), b.NorthEast()
	lat := sw.Lat + rnd.Float64()*(ne.Lat-sw.Lat)
	lng := sw.Lng + rnd.Float64()*geospatial.LngSpan(b)
	if lng > 180 {
		lng -= 360
	}
	return domain.GeoPoint{Lat: lat, Lng: lng}
}

func imageURL(id string) string {
	return "https://picsum.photos/seed/" + url.PathEscape(id) + "/320/200"
}
