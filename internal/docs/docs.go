// Package docs serves the Swagger 2.0 description of the API and a
// swagger-ui page bound to it.
package docs

import (
	_ "embed"
	"strings"

	"github.com/gofiber/fiber/v2"
)

//go:embed swagger.json
var swaggerJSON []byte

//go:embed index.html
var indexHTML string

// Document returns the raw Swagger document.
func Document() []byte {
	return swaggerJSON
}

// Register mounts GET /swagger.json and GET /docs on router. prefix is the
// path router is mounted at, used to point the UI at the document.
func Register(router fiber.Router, prefix string) {
	page := strings.ReplaceAll(indexHTML, "{{DOC_URL}}", strings.TrimRight(prefix, "/")+"/swagger.json")

	router.Get("/swagger.json", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.Send(swaggerJSON)
	})
	router.Get("/docs", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(page)
	})
}
