package memory

import (
	"context"

	"github.com/samirrijal/tripmap/internal/core/domain"
)

func float(v float64) *float64 { return &v }

// ProductCatalog links a fixed set of bookable products to posts.
type ProductCatalog struct {
	order    []string
	products map[string]domain.RelatedProduct
	posts    map[string][]int
}

// NewProductCatalog returns the seeded catalog.
func NewProductCatalog() *ProductCatalog {
	return &ProductCatalog{
		order: []string{"hanbokA", "hanbokB", "studio"},
		products: map[string]domain.RelatedProduct{
			"hanbokA": {
				ID:            "hanbokA",
				Label:         "한복A",
				Location:      "Seoul Gyeongbokgung",
				Title:         "Premium Hanbok Rental A | Gyeongbokgung Experience",
				PriceUSD:      float(20.82),
				Rating:        float(4.0),
				ReviewSnippet: "Friendly staff and beautiful outfits. Perfect for palace photos and a great first-time experience.",
				ImageURL:      "https://images.unsplash.com/photo-1590559899731-a382839e5549?q=80&w=640&auto=format&fit=crop",
				Href:          "/map",
			},
			"hanbokB": {
				ID:            "hanbokB",
				Label:         "한복B",
				Location:      "Seoul Bukchon",
				Title:         "Classic Hanbok Rental B | Bukchon Hanok Village",
				PriceUSD:      float(18.5),
				Rating:        float(4.2),
				ReviewSnippet: "Good selection and quick fitting. Nice walk through the village with traditional vibes.",
				ImageURL:      "https://images.unsplash.com/photo-1548781162-72db52a62e49?q=80&w=640&auto=format&fit=crop",
				Href:          "/map",
			},
			"studio": {
				ID:            "studio",
				Label:         "사진관A",
				Location:      "Seoul Hongdae",
				Title:         "Hongdae Photo Studio A | ID & Concept Photos",
				PriceUSD:      float(25.0),
				Rating:        float(4.0),
				ReviewSnippet: "Cozy studio with attentive photographers. The printed results came out great!",
				ImageURL:      "https://images.unsplash.com/photo-1519183071298-a2962be96f83?q=80&w=640&auto=format&fit=crop",
				Href:          "/map",
			},
		},
		posts: map[string][]int{
			"hanbokA": {1, 2, 3, 4, 5},
			"hanbokB": {2, 3},
			"studio":  {1},
		},
	}
}

// RelatedToPost returns the products mapped to postID in catalog order.
func (c *ProductCatalog) RelatedToPost(ctx context.Context, postID int) ([]domain.RelatedProduct, error) {
	out := []domain.RelatedProduct{}
	for _, id := range c.order {
		for _, p := range c.posts[id] {
			if p == postID {
				out = append(out, c.products[id])
				break
			}
		}
	}
	return out, nil
}
