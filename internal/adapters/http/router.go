package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/tripmap/internal/pkg/metrics"
)

const requestTimeout = 15 * time.Second

// RouteOptions tunes the middleware stack.
type RouteOptions struct {
	// RateLimit is requests per minute per IP; zero disables limiting.
	RateLimit   int
	OpenAPIPath string
}

// DefaultRouteOptions mirrors production settings.
func DefaultRouteOptions() RouteOptions {
	return RouteOptions{RateLimit: 120, OpenAPIPath: "api/openapi.yaml"}
}

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies, opts RouteOptions) {
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(requestid.New())
	app.Use(RequestIDLogMiddleware())
	app.Use(AccessLogMiddleware())

	// Map events arrive on every pan, so the limit is per IP and generous.
	if opts.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RateLimit,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
			},
		}))
	}

	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	app.Use(ETagMiddleware())
	app.Use(CachingMiddleware())

	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	t := func(h fiber.Handler) fiber.Handler { return timeout.NewWithContext(h, requestTimeout) }

	v1 := app.Group("/v1")
	v1.Get("/map/status", MapStatusHandler(deps))
	v1.Get("/categories", CategoriesHandler())

	sessions := v1.Group("/sessions")
	sessions.Post("/", t(CreateSessionHandler(deps)))
	sessions.Get("/:id", t(GetSessionHandler(deps)))
	sessions.Delete("/:id", t(DeleteSessionHandler(deps)))
	sessions.Post("/:id/idle", t(IdleHandler(deps)))
	sessions.Post("/:id/search-again", t(SearchAgainHandler(deps)))
	sessions.Put("/:id/filters", t(SetFiltersHandler(deps)))
	sessions.Post("/:id/select", t(SelectHandler(deps)))
	sessions.Post("/:id/marker", t(MarkerClickHandler(deps)))
	sessions.Post("/:id/detail", t(OpenDetailHandler(deps)))
	sessions.Delete("/:id/detail", t(CloseDetailHandler(deps)))
	sessions.Post("/:id/carousel", t(CarouselHandler(deps)))
	sessions.Put("/:id/layout", t(LayoutHandler(deps)))
	sessions.Put("/:id/region-view", t(RegionViewHandler(deps)))

	v1.Get("/posts", t(ListPostsHandler(deps)))
	v1.Get("/posts/highlights", t(HighlightsHandler(deps)))
	v1.Get("/posts/:id", t(GetPostHandler(deps)))
	v1.Post("/posts", t(CreatePostHandler(deps)))
	v1.Post("/posts/:id/comments", t(AddCommentHandler(deps)))
	v1.Post("/posts/:id/like", t(ToggleLikeHandler(deps)))

	v1.Get("/search-history", t(ListSearchHistoryHandler(deps)))
	v1.Post("/search-history", t(RecordSearchHandler(deps)))
	v1.Delete("/search-history", t(ClearSearchHistoryHandler(deps)))

	app.Post("/graphql", GraphQLHandler(deps))

	SetupDocs(app, opts.OpenAPIPath)

	app.Use("/ws", WebSocketUpgrade())
	app.Get("/ws", websocket.New(WebSocketHandler(deps)))
}
