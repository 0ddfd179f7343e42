package http

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
)

const docsSpecURL = "/docs/openapi.yaml"

const docsPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>%[1]s</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
  <style>body{margin:0;background:#fafafa}</style>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: '%[2]s',
      dom_id: '#swagger-ui',
      deepLinking: true,
      tryItOutEnabled: true,
      requestInterceptor: function (req) {
        // likes are tracked per viewer
        if (!req.headers['X-Viewer-ID']) { req.headers['X-Viewer-ID'] = 'swagger-ui'; }
        return req;
      },
    });
  </script>
</body>
</html>`

// SetupDocs serves Swagger UI at /docs and the OpenAPI document at
// /docs/openapi.yaml. The document is read once; if specPath is missing the
// UI still loads and the document route answers 404.
func SetupDocs(app *fiber.App, specPath string) {
	spec, err := os.ReadFile(specPath)
	if err != nil {
		slog.Warn("openapi document unavailable", "path", specPath, "error", err)
	}
	page := fmt.Sprintf(docsPage, "TripMap API | Swagger UI", docsSpecURL)

	app.Get("/docs", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(page)
	})

	app.Get(docsSpecURL, func(c *fiber.Ctx) error {
		if spec == nil {
			return errNotFound(c, "openapi document not found")
		}
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(spec)
	})
}
