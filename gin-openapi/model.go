// Package ginopenapi builds the resource model for a gin application from
// the engine's route table and mounts the documentation UI.
package ginopenapi

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/webasoo/oasgen/core"
	"github.com/webasoo/oasgen/internal/routemodel"
)

// Config tunes how the route table is turned into a resource model. All
// fields are optional.
type Config struct {
	// Name labels the resulting ResourceApi; defaults to "gin".
	Name string
	// SkipPrefixes excludes routes on top of the default documentation-UI
	// prefixes (/swagger, /redoc, /scalar).
	SkipPrefixes []string
	// GroupLabel maps a route path to its resource group; the default
	// groups by first path segment.
	GroupLabel func(path string) string
}

// FromEngine reads the engine's registered routes and returns them as a
// resource API. The engine is only inspected, never mutated; routes added
// after the call are not picked up.
func FromEngine(engine *gin.Engine, cfgs ...Config) core.ResourceApi {
	var cfg Config
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "gin"
	}

	routes := make([]routemodel.Route, 0, len(engine.Routes()))
	for _, r := range engine.Routes() {
		routes = append(routes, routemodel.Route{
			Method:  r.Method,
			Path:    r.Path,
			Handler: r.Handler,
		})
	}
	return routemodel.Build(routes, routemodel.Options{
		Name:         name,
		SkipPrefixes: cfg.SkipPrefixes,
		GroupLabel:   cfg.GroupLabel,
	})
}

// Document generates the OpenAPI document for the engine's routes.
func Document(engine *gin.Engine, docCfg core.Config, cfgs ...Config) (*core.Document, error) {
	api := FromEngine(engine, cfgs...)
	return core.Generate([]core.ResourceApi{api}, docCfg)
}

// Mount generates the document for the engine and serves the Swagger UI
// under /swagger.
func Mount(engine *gin.Engine, docCfg core.Config, cfgs ...Config) error {
	doc, err := Document(engine, docCfg, cfgs...)
	if err != nil {
		return err
	}
	data, err := doc.JSON()
	if err != nil {
		return err
	}
	Register(engine, data)
	return nil
}
