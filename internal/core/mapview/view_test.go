package mapview

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/tripmap/internal/core/domain"
)

func TestBuildView_Categories(t *testing.T) {
	s := readyState(domain.LayoutDesktop,
		poi("stay-1", domain.TypeStay, 37.5666, 126.9781),
	)

	v := BuildView(s)

	require.Len(t, v.Categories, len(domain.Categories))
	for _, c := range v.Categories {
		switch c.ID {
		case domain.CategoryAll:
			assert.True(t, c.Enabled)
			assert.True(t, c.Active)
		case domain.Category(domain.TypeStay):
			assert.True(t, c.Enabled)
		default:
			assert.False(t, c.Enabled, c.ID)
		}
	}
}

func TestBuildView_DetailAndMobileCard(t *testing.T) {
	c := NewController(SystemRandom())
	s := readyState(domain.LayoutMobile,
		poi("spot-1", domain.TypeSpot, 37.5666, 126.9781),
		poi("daiso-2", domain.TypeDaiso, 37.5667, 126.9782),
	)

	_, err := c.Select(s, "spot-1")
	require.NoError(t, err)
	v := BuildView(s)
	require.NotNil(t, v.MobileCard)
	assert.Equal(t, "spot-1", v.MobileCard.ID)
	assert.Nil(t, v.Detail)
	assert.True(t, v.Markers[0].Selected)

	_, err = c.OpenDetail(s, "daiso-2")
	require.NoError(t, err)
	v = BuildView(s)
	require.NotNil(t, v.Detail)
	assert.Equal(t, "daiso-2", v.Detail.ID)
	assert.Nil(t, v.MobileCard)
}

func TestBuildView_Overlays(t *testing.T) {
	s := readyState(domain.LayoutDesktop)

	v := BuildView(s)
	assert.Nil(t, v.Region)
	assert.Equal(t, seoulCenter, v.Circle.Center)
	assert.Equal(t, 1500.0, v.Circle.RadiusMeters)
	assert.Equal(t, "#22c55e", v.Circle.FillColor)
	assert.Equal(t, domain.SidebarProduct, v.SidebarMode)

	s.RegionView = true
	s.SidebarMode = domain.SidebarRegion
	v = BuildView(s)
	require.NotNil(t, v.Region)
	assert.Equal(t, domain.SidebarRegion, v.SidebarMode)

	poly, ok := v.Region.Polygon.Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, poly, 1)
	assert.Len(t, poly[0], 7)
	assert.Equal(t, poly[0][0], poly[0][6])
}
