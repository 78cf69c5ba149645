package core

// ResourceApi is one logical API surface as exposed by a provider, for
// example every route registered on a single gin engine. Providers may
// rebuild the group objects on every ResourceGroups call; the Snapshot is
// the only place allowed to invoke it, and does so at most once per handle.
//
// Handles are compared by identity, so implementations must be pointer
// types (the builder and the framework adapters satisfy this).
type ResourceApi interface {
	Name() string
	ResourceGroups() []ResourceGroup
}

// ResourceGroup is a named collection of resources, typically one tag's
// worth of endpoints.
type ResourceGroup interface {
	Label() string
	Resources() []Resource
}

// Resource is one HTTP-addressable entity, e.g. /users/{id}. The slice
// returned by Methods must contain the same Method values on every call so
// that identity-based lookups against the Snapshot keep working.
type Resource interface {
	Path() string
	Methods() []Method
}

// Method is one operation on a resource. Methods are opaque handles: the
// core compares them by interface identity, never structurally. Two
// methods with the same verb and path are still distinct operations when
// they are distinct objects.
type Method interface {
	HTTPMethod() string
	Label() string
	Summary() string
	Description() string
	Tags() []string
	Deprecated() bool
	Parameters() []Parameter
	RequestBody() *RequestBody
	Responses() []Response
}

// Parameter describes one non-body input of an operation.
type Parameter struct {
	Name        string
	In          string // path, query, header or cookie
	Description string
	Required    bool
	Schema      SchemaRef
}

// RequestBody describes the payload an operation consumes.
type RequestBody struct {
	Description string
	Required    bool
	MediaType   string // defaults to application/json
	Schema      SchemaRef
}

// Response describes one status an operation may answer with. A zero
// Schema means the response carries no body.
type Response struct {
	Status      string // "200", "404", "default", ...
	Description string
	MediaType   string // defaults to application/json
	Schema      SchemaRef
}

// SchemaRef points at the schema for a payload or parameter. Exactly one
// of the three forms is used, checked in this order: an inline fragment, a
// named component reference, or a Go value whose type is reflected into a
// component schema by the Registry.
type SchemaRef struct {
	Inline Schema
	Name   string
	Value  interface{}
}

// IsZero reports whether no schema was provided at all.
func (s SchemaRef) IsZero() bool {
	return s.Inline == nil && s.Name == "" && s.Value == nil
}

// RefSchema references a component schema registered under name.
func RefSchema(name string) SchemaRef { return SchemaRef{Name: name} }

// InlineSchema embeds a schema fragment directly into the document.
func InlineSchema(s Schema) SchemaRef { return SchemaRef{Inline: s} }

// TypeSchema derives the schema from the type of v via reflection and
// registers it as a named component.
func TypeSchema(v interface{}) SchemaRef { return SchemaRef{Value: v} }
