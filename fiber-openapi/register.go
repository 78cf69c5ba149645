package fiberopenapi

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/webasoo/oasgen/scalar"
	"github.com/webasoo/oasgen/swagger"
)

// Handler returns a fiber handler that mounts the Swagger UI under the
// request path.
func Handler(spec []byte) fiber.Handler {
	return adaptor.HTTPHandler(swagger.Handler(spec))
}

// HandlerWithOptions is Handler with runtime UI options applied.
func HandlerWithOptions(spec []byte, opts swagger.UIOptions) fiber.Handler {
	return adaptor.HTTPHandler(swagger.HandlerWithOptions(spec, opts))
}

// RegisterWithSpec attaches GET handlers for /swagger and /swagger/* to
// the provided app using the given document.
func RegisterWithSpec(app *fiber.App, spec []byte) {
	wrapped := Handler(spec)
	app.Get("/swagger", wrapped)
	app.Get("/swagger/*", wrapped)
}

// RegisterWithSpecAndOptions attaches the Swagger UI routes using runtime
// UI options.
func RegisterWithSpecAndOptions(app *fiber.App, spec []byte, opts swagger.UIOptions) {
	wrapped := HandlerWithOptions(spec, opts)
	app.Get("/swagger", wrapped)
	app.Get("/swagger/*", wrapped)
}

// RegisterScalar attaches the Scalar reference under /scalar instead of
// the Swagger UI.
func RegisterScalar(app *fiber.App, spec []byte) {
	wrapped := adaptor.HTTPHandler(scalar.Handler(spec))
	app.Get("/scalar", wrapped)
	app.Get("/scalar/*", wrapped)
}

// RegisterFile loads an OpenAPI document from disk and mounts the Swagger
// UI routes.
func RegisterFile(app *fiber.App, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("fiberopenapi: read spec %q: %w", path, err)
	}
	RegisterWithSpec(app, data)
	return nil
}
