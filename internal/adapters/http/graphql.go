package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/tripmap/internal/core/domain"
	"github.com/samirrijal/tripmap/internal/core/usecases"
)

func optString[T ~string](v *T) interface{} {
	if v == nil {
		return nil
	}
	return string(*v)
}

// poiSource accepts both list elements and the optional detail pointer.
func poiSource(src interface{}) domain.POI {
	switch v := src.(type) {
	case domain.POI:
		return v
	case *domain.POI:
		if v != nil {
			return *v
		}
	}
	return domain.POI{}
}

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lng": &graphql.Field{Type: graphql.Float},
		},
	})

	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id":              &graphql.Field{Type: graphql.String},
			"label":           &graphql.Field{Type: graphql.String},
			"color":           &graphql.Field{Type: graphql.String},
			"detail_eligible": &graphql.Field{Type: graphql.Boolean},
		},
	})
	categoryType.AddFieldConfig("options", &graphql.Field{Type: graphql.NewList(categoryType)})

	poiType := graphql.NewObject(graphql.ObjectConfig{
		Name: "POI",
		Fields: graphql.Fields{
			"id":      &graphql.Field{Type: graphql.String},
			"type":    &graphql.Field{Type: graphql.String},
			"lat":     &graphql.Field{Type: graphql.Float},
			"lng":     &graphql.Field{Type: graphql.Float},
			"name":    &graphql.Field{Type: graphql.String},
			"image":   &graphql.Field{Type: graphql.String},
			"price":   &graphql.Field{Type: graphql.Int},
			"rating":  &graphql.Field{Type: graphql.Float},
			"reviews": &graphql.Field{Type: graphql.Int},
			"spot_sub": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return optString(poiSource(p.Source).SpotSub), nil
				},
			},
			"spot_sub2": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return optString(poiSource(p.Source).SpotSub2), nil
				},
			},
		},
	})

	filtersType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Filters",
		Fields: graphql.Fields{
			"category": &graphql.Field{Type: graphql.String},
			"spot_sub": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return optString(p.Source.(domain.FilterSelection).SpotSub), nil
				},
			},
			"spot_sub2": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return optString(p.Source.(domain.FilterSelection).SpotSub2), nil
				},
			},
		},
	})

	selectionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Selection",
		Fields: graphql.Fields{
			"selected_id":       &graphql.Field{Type: graphql.String},
			"detail_id":         &graphql.Field{Type: graphql.String},
			"mobile_focused_id": &graphql.Field{Type: graphql.String},
		},
	})

	viewType := graphql.NewObject(graphql.ObjectConfig{
		Name: "MapView",
		Fields: graphql.Fields{
			"layout":        &graphql.Field{Type: graphql.String},
			"zoom":          &graphql.Field{Type: graphql.Int},
			"search_center": &graphql.Field{Type: geoPointType},
			"filters":       &graphql.Field{Type: filtersType},
			"selection":     &graphql.Field{Type: selectionType},
			"visible":       &graphql.Field{Type: graphql.NewList(poiType)},
			"total_count":   &graphql.Field{Type: graphql.Int},
			"region_view":   &graphql.Field{Type: graphql.Boolean},
			"sidebar_mode":  &graphql.Field{Type: graphql.String},
			"detail":        &graphql.Field{Type: poiType},
		},
	})

	sessionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "MapSession",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.String},
			"view": &graphql.Field{Type: viewType},
		},
	})

	postType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.Int},
			"category":     &graphql.Field{Type: graphql.String},
			"title":        &graphql.Field{Type: graphql.String},
			"content":      &graphql.Field{Type: graphql.String},
			"author":       &graphql.Field{Type: graphql.String},
			"anonymous":    &graphql.Field{Type: graphql.Boolean},
			"date":         &graphql.Field{Type: graphql.DateTime},
			"likes":        &graphql.Field{Type: graphql.Int},
			"comments":     &graphql.Field{Type: graphql.Int},
			"is_highlight": &graphql.Field{Type: graphql.Boolean},
		},
	})

	commentType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.String},
			"author":     &graphql.Field{Type: graphql.String},
			"content":    &graphql.Field{Type: graphql.String},
			"likes":      &graphql.Field{Type: graphql.Int},
			"created_at": &graphql.Field{Type: graphql.DateTime},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RelatedProduct",
		Fields: graphql.Fields{
			"id":             &graphql.Field{Type: graphql.String},
			"label":          &graphql.Field{Type: graphql.String},
			"location":       &graphql.Field{Type: graphql.String},
			"title":          &graphql.Field{Type: graphql.String},
			"price_usd":      &graphql.Field{Type: graphql.Float},
			"rating":         &graphql.Field{Type: graphql.Float},
			"review_snippet": &graphql.Field{Type: graphql.String},
			"image_url":      &graphql.Field{Type: graphql.String},
			"href":           &graphql.Field{Type: graphql.String},
		},
	})

	postDetailType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PostDetail",
		Fields: graphql.Fields{
			"post":             &graphql.Field{Type: postType},
			"liked":            &graphql.Field{Type: graphql.Boolean},
			"thread":           &graphql.Field{Type: graphql.NewList(commentType)},
			"related_products": &graphql.Field{Type: graphql.NewList(productType)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"categories": &graphql.Field{
				Type:        graphql.NewList(categoryType),
				Description: "Category taxonomy with sub-category options",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return taxonomy(), nil
				},
			},
			"mapSession": &graphql.Field{
				Type:        sessionType,
				Description: "Current view of a map session",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Sessions.Get(p.Context, p.Args["id"].(string))
				},
			},
			"posts": &graphql.Field{
				Type:        graphql.NewList(postType),
				Description: "Forum posts filtered by board and title search",
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: string(domain.PostAll)},
					"search":   &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"sort":     &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: string(domain.SortLatest)},
					"offset":   &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"limit":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					posts, _, err := deps.Community.List(p.Context, usecases.PostQuery{
						Category: domain.PostCategory(p.Args["category"].(string)),
						Search:   p.Args["search"].(string),
						Sort:     domain.PostSort(p.Args["sort"].(string)),
						Offset:   p.Args["offset"].(int),
						Limit:    p.Args["limit"].(int),
					})
					return posts, err
				},
			},
			"post": &graphql.Field{
				Type:        postDetailType,
				Description: "A post with its comments and related products",
				Args: graphql.FieldConfigArgument{
					"id":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"viewer": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Community.Get(p.Context, p.Args["id"].(int), p.Args["viewer"].(string))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
