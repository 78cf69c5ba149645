package core

import "strings"

// API is the standard ResourceApi implementation. Framework adapters and
// applications describe their surface with it; the CLI builds one from a
// YAML definition. All builder types are pointers, so the identity
// semantics the Snapshot relies on hold.
type API struct {
	name   string
	groups []*Group
}

// NewAPI starts an empty API description.
func NewAPI(name string) *API {
	return &API{name: strings.TrimSpace(name)}
}

// Name implements ResourceApi.
func (a *API) Name() string { return a.name }

// ResourceGroups implements ResourceApi. Each call returns a fresh slice
// over the same group values, matching the contract that only the Snapshot
// may assume stability.
func (a *API) ResourceGroups() []ResourceGroup {
	groups := make([]ResourceGroup, len(a.groups))
	for i, g := range a.groups {
		groups[i] = g
	}
	return groups
}

// Group appends a resource group, or returns the existing one when the
// label was already used.
func (a *API) Group(label string) *Group {
	label = strings.TrimSpace(label)
	for _, g := range a.groups {
		if g.label == label {
			return g
		}
	}
	g := &Group{label: label}
	a.groups = append(a.groups, g)
	return g
}

// Group is the standard ResourceGroup implementation.
type Group struct {
	label  string
	routes []*Route
}

// Label implements ResourceGroup.
func (g *Group) Label() string { return g.label }

// Resources implements ResourceGroup.
func (g *Group) Resources() []Resource {
	resources := make([]Resource, len(g.routes))
	for i, r := range g.routes {
		resources[i] = r
	}
	return resources
}

// Route appends a resource for path, or returns the existing one.
func (g *Group) Route(path string) *Route {
	path = strings.TrimSpace(path)
	for _, r := range g.routes {
		if r.path == path {
			return r
		}
	}
	r := &Route{path: path}
	g.routes = append(g.routes, r)
	return r
}

// Route is the standard Resource implementation.
type Route struct {
	path       string
	operations []*Operation
}

// Path implements Resource.
func (r *Route) Path() string { return r.path }

// Methods implements Resource. The returned slice always contains the same
// Operation values, which is what makes identity lookups work.
func (r *Route) Methods() []Method {
	methods := make([]Method, len(r.operations))
	for i, op := range r.operations {
		methods[i] = op
	}
	return methods
}

// Operation appends an operation for the given HTTP verb. Unlike Group and
// Route this never coalesces: two operations with the same verb stay
// distinct handles.
func (r *Route) Operation(verb string) *Operation {
	op := &Operation{verb: strings.ToUpper(strings.TrimSpace(verb))}
	r.operations = append(r.operations, op)
	return op
}

// Get is shorthand for Operation("GET").
func (r *Route) Get() *Operation { return r.Operation("GET") }

// Post is shorthand for Operation("POST").
func (r *Route) Post() *Operation { return r.Operation("POST") }

// Put is shorthand for Operation("PUT").
func (r *Route) Put() *Operation { return r.Operation("PUT") }

// Patch is shorthand for Operation("PATCH").
func (r *Route) Patch() *Operation { return r.Operation("PATCH") }

// Delete is shorthand for Operation("DELETE").
func (r *Route) Delete() *Operation { return r.Operation("DELETE") }

// Operation is the standard Method implementation, populated through its
// chainable setters.
type Operation struct {
	verb        string
	label       string
	summary     string
	description string
	tags        []string
	deprecated  bool
	params      []Parameter
	body        *RequestBody
	responses   []Response
}

// HTTPMethod implements Method.
func (o *Operation) HTTPMethod() string { return o.verb }

// Label implements Method.
func (o *Operation) Label() string { return o.label }

// Summary implements Method.
func (o *Operation) Summary() string { return o.summary }

// Description implements Method.
func (o *Operation) Description() string { return o.description }

// Tags implements Method.
func (o *Operation) Tags() []string { return o.tags }

// Deprecated implements Method.
func (o *Operation) Deprecated() bool { return o.deprecated }

// Parameters implements Method.
func (o *Operation) Parameters() []Parameter { return o.params }

// RequestBody implements Method.
func (o *Operation) RequestBody() *RequestBody { return o.body }

// Responses implements Method.
func (o *Operation) Responses() []Response { return o.responses }

// WithLabel sets the explicit operationId base.
func (o *Operation) WithLabel(label string) *Operation {
	o.label = strings.TrimSpace(label)
	return o
}

// WithSummary sets the one-line summary.
func (o *Operation) WithSummary(summary string) *Operation {
	o.summary = strings.TrimSpace(summary)
	return o
}

// WithDescription sets the long description.
func (o *Operation) WithDescription(description string) *Operation {
	o.description = strings.TrimSpace(description)
	return o
}

// WithTags appends documentation tags.
func (o *Operation) WithTags(tags ...string) *Operation {
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			o.tags = append(o.tags, t)
		}
	}
	return o
}

// MarkDeprecated flags the operation as deprecated.
func (o *Operation) MarkDeprecated() *Operation {
	o.deprecated = true
	return o
}

// WithParameter appends a parameter.
func (o *Operation) WithParameter(p Parameter) *Operation {
	o.params = append(o.params, p)
	return o
}

// WithRequestBody sets the request payload.
func (o *Operation) WithRequestBody(body RequestBody) *Operation {
	o.body = &body
	return o
}

// WithResponse appends a response.
func (o *Operation) WithResponse(resp Response) *Operation {
	o.responses = append(o.responses, resp)
	return o
}
