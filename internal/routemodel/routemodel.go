// Package routemodel turns a framework's flat route table into the
// grouped resource model the core consumes. The gin, chi and fiber
// adapters all feed it their own route listings.
package routemodel

import (
	"sort"
	"strings"

	"github.com/webasoo/oasgen/core"
)

// Route is one entry of a framework route table.
type Route struct {
	Method  string
	Path    string
	Handler string // qualified handler name when the framework exposes one
}

// Options tunes model construction.
type Options struct {
	Name         string                   // ResourceApi name
	SkipPrefixes []string                 // extra excluded path prefixes
	GroupLabel   func(path string) string // defaults to first path segment
}

// Build sorts the routes by path then method, drops documentation-UI and
// configured prefixes, and assembles the remainder into a resource API via
// the core builder.
func Build(routes []Route, opts Options) core.ResourceApi {
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = "api"
	}
	groupLabel := opts.GroupLabel
	if groupLabel == nil {
		groupLabel = DefaultGroupLabel
	}
	skipper := newSkipper(opts.SkipPrefixes)

	sorted := append([]Route(nil), routes...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Path == sorted[j].Path {
			return sorted[i].Method < sorted[j].Method
		}
		return sorted[i].Path < sorted[j].Path
	})

	api := core.NewAPI(name)
	for _, r := range sorted {
		if skipper.skip(r.Path) {
			continue
		}
		op := api.Group(groupLabel(r.Path)).Route(r.Path).Operation(r.Method)
		if handler := HandlerBaseName(r.Handler); handler != "" {
			op.WithLabel(handler).WithSummary(handler)
		}
	}
	return api
}

// DefaultGroupLabel groups a route under its first literal path segment,
// falling back to "default" for root and all-template paths.
func DefaultGroupLabel(path string) string {
	for _, segment := range strings.Split(path, "/") {
		segment = strings.TrimSpace(segment)
		if segment == "" || strings.HasPrefix(segment, ":") ||
			strings.HasPrefix(segment, "*") || strings.HasPrefix(segment, "{") {
			continue
		}
		return segment
	}
	return "default"
}

// HandlerBaseName extracts the bare function name from a qualified handler
// name, e.g. "main.(*server).listUsers-fm" -> "listUsers".
func HandlerBaseName(qualified string) string {
	qualified = strings.TrimSpace(qualified)
	if qualified == "" {
		return ""
	}
	if idx := strings.LastIndex(qualified, "."); idx >= 0 && idx < len(qualified)-1 {
		qualified = qualified[idx+1:]
	}
	return strings.TrimSuffix(qualified, "-fm")
}

type skipper struct {
	prefixes []string
}

func newSkipper(extra []string) skipper {
	prefixes := []string{"/swagger", "/redoc", "/scalar"}
	for _, p := range extra {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		prefixes = append(prefixes, p)
	}
	return skipper{prefixes: prefixes}
}

func (s skipper) skip(path string) bool {
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return true
	}
	for _, prefix := range s.prefixes {
		if strings.HasPrefix(path, strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}
