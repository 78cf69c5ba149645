//go:generate go run github.com/webasoo/oasgen generate

// Package core turns an in-memory description of an HTTP API into an
// OpenAPI document. The description arrives from a provider (a framework
// adapter or the builder in this package) as a tree of resource APIs,
// resource groups, resources and methods. The core snapshots that tree
// once per generation run and renders every document section from the
// cached view.
package core
