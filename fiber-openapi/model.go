// Package fiberopenapi builds the resource model for a fiber application
// from the app's route stack and mounts the documentation UI.
package fiberopenapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/webasoo/oasgen/core"
	"github.com/webasoo/oasgen/internal/routemodel"
)

// Config tunes how the route stack is turned into a resource model. All
// fields are optional.
type Config struct {
	// Name labels the resulting ResourceApi; defaults to "fiber".
	Name string
	// SkipPrefixes excludes routes on top of the default documentation-UI
	// prefixes (/swagger, /redoc, /scalar).
	SkipPrefixes []string
	// GroupLabel maps a route path to its resource group; the default
	// groups by first path segment.
	GroupLabel func(path string) string
}

var documentedVerbs = map[string]struct{}{
	fiber.MethodGet:     {},
	fiber.MethodPost:    {},
	fiber.MethodPut:     {},
	fiber.MethodPatch:   {},
	fiber.MethodDelete:  {},
	fiber.MethodOptions: {},
}

// FromApp reads the app's registered routes and returns them as a
// resource API. Fiber's automatic HEAD mirror of every GET route is
// dropped, as are middleware entries.
func FromApp(app *fiber.App, cfgs ...Config) core.ResourceApi {
	var cfg Config
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "fiber"
	}

	var routes []routemodel.Route
	for _, r := range app.GetRoutes(true) {
		if _, ok := documentedVerbs[r.Method]; !ok {
			continue
		}
		routes = append(routes, routemodel.Route{
			Method:  r.Method,
			Path:    r.Path,
			Handler: r.Name,
		})
	}
	return routemodel.Build(routes, routemodel.Options{
		Name:         name,
		SkipPrefixes: cfg.SkipPrefixes,
		GroupLabel:   cfg.GroupLabel,
	})
}

// Document generates the OpenAPI document for the app's routes.
func Document(app *fiber.App, docCfg core.Config, cfgs ...Config) (*core.Document, error) {
	api := FromApp(app, cfgs...)
	return core.Generate([]core.ResourceApi{api}, docCfg)
}

// Mount generates the document for the app and serves the Swagger UI
// under /swagger.
func Mount(app *fiber.App, docCfg core.Config, cfgs ...Config) error {
	doc, err := Document(app, docCfg, cfgs...)
	if err != nil {
		return err
	}
	data, err := doc.JSON()
	if err != nil {
		return err
	}
	RegisterWithSpec(app, data)
	return nil
}
