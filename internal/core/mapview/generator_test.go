package mapview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/tripmap/internal/core/domain"
	"github.com/samirrijal/tripmap/internal/pkg/geospatial"
)

func TestCountForZoom(t *testing.T) {
	cases := map[int]int{
		20: 10, 16: 10, 15: 14, 14: 18, 13: 24, 12: 30, 11: 36, 3: 36,
	}
	for zoom, want := range cases {
		assert.Equal(t, want, CountForZoom(zoom), "zoom %d", zoom)
	}
}

func TestGenerate_ZoomDensity(t *testing.T) {
	tests := []struct {
		zoom    int
		perType int
	}{
		{zoom: 16, perType: 10},
		{zoom: 11, perType: 36},
	}
	for _, tt := range tests {
		pois := Generate(seoulBounds, tt.zoom, SystemRandom())
		require.Len(t, pois, tt.perType*len(domain.POITypes))

		counts := map[domain.POIType]int{}
		for _, p := range pois {
			counts[p.Type]++
		}
		for _, typ := range domain.POITypes {
			assert.Equal(t, tt.perType, counts[typ], "zoom %d type %s", tt.zoom, typ)
		}
	}
}

func TestGenerate_Containment(t *testing.T) {
	for i := 0; i < 20; i++ {
		for _, p := range Generate(seoulBounds, 11, SystemRandom()) {
			assert.True(t, geospatial.BoundsContains(seoulBounds, p.Location()), "%s at %v,%v", p.ID, p.Lat, p.Lng)
		}
	}
}

func TestGenerate_ContainmentAcrossAntimeridian(t *testing.T) {
	b := domain.Bounds{MinLat: -17.9, MinLng: 179.9, MaxLat: -17.7, MaxLng: -179.9}
	rnd := &fixedRandom{vals: []float64{0.1, 0.25, 0.5, 0.75, 0.99}}

	for _, p := range Generate(b, 16, rnd) {
		assert.True(t, geospatial.BoundsContains(b, p.Location()), "%s at %v,%v", p.ID, p.Lat, p.Lng)
		assert.LessOrEqual(t, p.Lng, 180.0)
		assert.GreaterOrEqual(t, p.Lng, -180.0)
	}
}

func TestGenerate_Taxonomy(t *testing.T) {
	for _, p := range Generate(seoulBounds, 12, SystemRandom()) {
		if p.Type != domain.TypeSpot {
			assert.Nil(t, p.SpotSub, p.ID)
			assert.Nil(t, p.SpotSub2, p.ID)
		}
		if p.SpotSub2 != nil {
			require.NotNil(t, p.SpotSub, p.ID)
			assert.True(t, p.SpotSub.Allows(*p.SpotSub2), "%s: %s under %s", p.ID, *p.SpotSub2, *p.SpotSub)
		}
		hasOffer := p.Price != nil && p.Rating != nil && p.Reviews != nil
		assert.Equal(t, p.Type.HasOffer(), hasOffer, p.ID)
		if hasOffer {
			assert.GreaterOrEqual(t, *p.Price, 40000)
			assert.Less(t, *p.Price, 240000)
			assert.GreaterOrEqual(t, *p.Rating, 3.0)
			assert.LessOrEqual(t, *p.Rating, 5.0)
			assert.GreaterOrEqual(t, *p.Reviews, 10)
			assert.Less(t, *p.Reviews, 910)
		}
	}
}

func TestGenerate_IdsAndRoundRobin(t *testing.T) {
	pois := Generate(seoulBounds, 16, &fixedRandom{vals: []float64{0.5}})

	seen := map[string]bool{}
	for i, p := range pois {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		assert.True(t, strings.HasPrefix(p.ID, string(p.Type)+"-"))
		assert.Equal(t, "https://picsum.photos/seed/"+p.ID+"/320/200", p.Image)
		if i == 0 {
			assert.Equal(t, "spot-1", p.ID)
		}
	}
	assert.Equal(t, "stay-11", pois[10].ID)
	assert.Equal(t, "lottemart-60", pois[59].ID)

	// spot i: sub = subs[i%4], sub2 = options[i%len(options)]
	assert.Equal(t, domain.SubActivity, *pois[0].SpotSub)
	assert.Equal(t, domain.Sub2KPop, *pois[0].SpotSub2)
	assert.Equal(t, domain.SubSpa, *pois[3].SpotSub)
	assert.Equal(t, domain.Sub2Wellness, *pois[3].SpotSub2)
	assert.Equal(t, domain.SubPhoto, *pois[6].SpotSub)
	assert.Equal(t, domain.Sub2Hanbok, *pois[6].SpotSub2)

	assert.Equal(t, "서울 투어 1", pois[0].Name)
	assert.Equal(t, "올리브영 1호점", pois[30].Name)
}

func TestGenerate_IdsRestartPerBatch(t *testing.T) {
	first := Generate(seoulBounds, 16, &fixedRandom{vals: []float64{0.2}})
	second := Generate(seoulBounds, 16, &fixedRandom{vals: []float64{0.8}})

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
	assert.NotEqual(t, first[0].Lat, second[0].Lat)
}

func TestGenerate_DrawOrder(t *testing.T) {
	pois := Generate(seoulBounds, 16, &fixedRandom{vals: []float64{0.5}})
	p := pois[0]

	assert.InDelta(t, 37.565, p.Lat, 1e-9)
	assert.InDelta(t, 126.98, p.Lng, 1e-9)
	assert.Equal(t, 140000, *p.Price)
	assert.Equal(t, 4.0, *p.Rating)
	assert.Equal(t, 460, *p.Reviews)
}
