// Package chiopenapi builds the resource model for a chi router from its
// route tree and mounts the documentation UI.
package chiopenapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/webasoo/oasgen/core"
	"github.com/webasoo/oasgen/internal/routemodel"
)

// Config tunes how the route tree is turned into a resource model. All
// fields are optional.
type Config struct {
	// Name labels the resulting ResourceApi; defaults to "chi".
	Name string
	// SkipPrefixes excludes routes on top of the default documentation-UI
	// prefixes (/swagger, /redoc, /scalar).
	SkipPrefixes []string
	// GroupLabel maps a route path to its resource group; the default
	// groups by first path segment.
	GroupLabel func(path string) string
}

// FromRouter walks the router's route tree and returns it as a resource
// API. Routes mounted after the call are not picked up.
func FromRouter(router chi.Routes, cfgs ...Config) (core.ResourceApi, error) {
	var cfg Config
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "chi"
	}

	var routes []routemodel.Route
	err := chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routemodel.Route{
			Method: method,
			Path:   normalizeChiPath(route),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("chiopenapi: walk routes: %w", err)
	}

	return routemodel.Build(routes, routemodel.Options{
		Name:         name,
		SkipPrefixes: cfg.SkipPrefixes,
		GroupLabel:   cfg.GroupLabel,
	}), nil
}

// Document generates the OpenAPI document for the router's routes.
func Document(router chi.Routes, docCfg core.Config, cfgs ...Config) (*core.Document, error) {
	api, err := FromRouter(router, cfgs...)
	if err != nil {
		return nil, err
	}
	return core.Generate([]core.ResourceApi{api}, docCfg)
}

// Mount generates the document for the router and serves the Swagger UI
// under /swagger.
func Mount(router chi.Router, docCfg core.Config, cfgs ...Config) error {
	doc, err := Document(router, docCfg, cfgs...)
	if err != nil {
		return err
	}
	data, err := doc.JSON()
	if err != nil {
		return err
	}
	Register(router, data)
	return nil
}

// normalizeChiPath strips the trailing slash chi.Walk appends to nested
// mount patterns and collapses catch-alls to a named wildcard.
func normalizeChiPath(route string) string {
	route = strings.TrimSpace(route)
	if route == "" {
		return "/"
	}
	if len(route) > 1 && strings.HasSuffix(route, "/") {
		route = strings.TrimRight(route, "/")
	}
	return strings.ReplaceAll(route, "/*", "/{wildcard}")
}
