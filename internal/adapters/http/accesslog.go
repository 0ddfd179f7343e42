package http

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// chattyRoutes fire continuously while a map is open or a scraper is
// attached; their successes are logged at debug.
var chattyRoutes = map[string]bool{
	"/v1/sessions/:id/idle":     true,
	"/v1/sessions/:id/carousel": true,
	"/v1/health":                true,
	"/v1/ready":                 true,
	"/metrics":                  true,
}

// AccessLogMiddleware writes one structured record per request through the
// request-scoped logger.
func AccessLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		method := c.Method()
		path := c.Path()

		err := c.Next()

		status := c.Response().StatusCode()
		route := c.Route().Path
		attrs := []slog.Attr{
			slog.String("method", method),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.Int("bytes_out", len(c.Response().Body())),
		}
		if id := c.Params("id"); id != "" {
			attrs = append(attrs, slog.String("resource_id", id))
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}

		ctx := c.UserContext()
		LoggerFromCtx(ctx).LogAttrs(ctx, accessLevel(route, status, err), method+" "+path, attrs...)
		return err
	}
}

func accessLevel(route string, status int, err error) slog.Level {
	switch {
	case err != nil || status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	case chattyRoutes[route]:
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
