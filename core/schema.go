package core

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

// Schema is a free-form JSON schema fragment.
type Schema map[string]interface{}

// Registry holds the named component schemas of one generation run. Types
// registered through reflection land here exactly once; repeated
// registrations of the same type reuse the existing component.
type Registry struct {
	schemas    map[string]Schema
	names      map[reflect.Type]string
	building   map[reflect.Type]struct{}
	trimPrefix string
}

// NewRegistry returns an empty registry. When trimPrefix is non-empty it
// is stripped from every component name, mirroring the removeObjectPrefix
// behaviour some client generators depend on.
func NewRegistry(trimPrefix string) *Registry {
	return &Registry{
		schemas:    make(map[string]Schema),
		names:      make(map[reflect.Type]string),
		building:   make(map[reflect.Type]struct{}),
		trimPrefix: strings.TrimSpace(trimPrefix),
	}
}

// Register stores a hand-written component schema under name.
func (r *Registry) Register(name string, s Schema) {
	name = r.trimName(name)
	if name == "" || s == nil {
		return
	}
	r.schemas[name] = s
}

// RegisterType derives a component schema from the type of v and returns
// the component name. Pointers are dereferenced first.
func (r *Registry) RegisterType(v interface{}) string {
	if v == nil {
		return ""
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t.Name() == "" {
		return ""
	}
	return r.ensureType(t)
}

// Schemas returns the accumulated component schemas.
func (r *Registry) Schemas() map[string]Schema {
	return r.schemas
}

// resolve turns a SchemaRef into the schema object embedded in the
// document: either an inline fragment, a $ref to a named component, or a
// reflected schema. A zero ref yields nil.
func (r *Registry) resolve(ref SchemaRef) map[string]interface{} {
	switch {
	case ref.Inline != nil:
		return map[string]interface{}(ref.Inline)
	case ref.Name != "":
		return refSchema(r.trimName(ref.Name))
	case ref.Value != nil:
		return r.schemaForType(reflect.TypeOf(ref.Value))
	}
	return nil
}

func refSchema(name string) map[string]interface{} {
	return map[string]interface{}{
		"$ref": fmt.Sprintf("#/components/schemas/%s", name),
	}
}

func (r *Registry) trimName(name string) string {
	name = strings.TrimSpace(name)
	if r.trimPrefix != "" {
		name = strings.TrimPrefix(name, r.trimPrefix)
	}
	return name
}

var timeType = reflect.TypeOf(time.Time{})

func (r *Registry) schemaForType(t reflect.Type) map[string]interface{} {
	if t == nil {
		return map[string]interface{}{"type": "object"}
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == timeType {
		return map[string]interface{}{"type": "string", "format": "date-time"}
	}

	switch t.Kind() {
	case reflect.Bool:
		return map[string]interface{}{"type": "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]interface{}{"type": "integer"}
	case reflect.Float32, reflect.Float64:
		return map[string]interface{}{"type": "number"}
	case reflect.String:
		return map[string]interface{}{"type": "string"}
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return map[string]interface{}{"type": "string", "format": "byte"}
		}
		return map[string]interface{}{
			"type":  "array",
			"items": r.schemaForType(t.Elem()),
		}
	case reflect.Map:
		return map[string]interface{}{
			"type":                 "object",
			"additionalProperties": r.schemaForType(t.Elem()),
		}
	case reflect.Interface:
		return map[string]interface{}{"type": "object"}
	case reflect.Struct:
		if t.Name() == "" {
			return map[string]interface{}(r.objectSchema(t))
		}
		return refSchema(r.ensureType(t))
	default:
		return map[string]interface{}{"type": "object"}
	}
}

// ensureType registers the component schema for a named struct type and
// returns the component name. The in-progress set breaks reference cycles.
func (r *Registry) ensureType(t reflect.Type) string {
	if name, ok := r.names[t]; ok {
		return name
	}
	name := r.componentName(t)
	r.names[t] = name

	if _, exists := r.schemas[name]; exists {
		return name
	}
	if _, inProgress := r.building[t]; inProgress {
		return name
	}
	r.building[t] = struct{}{}
	r.schemas[name] = r.objectSchema(t)
	delete(r.building, t)
	return name
}

func (r *Registry) componentName(t reflect.Type) string {
	name := r.trimName(t.Name())
	if name == "" {
		name = "Object"
	}
	// Same short name from a different package gets a numeric suffix.
	base := name
	for i := 2; ; i++ {
		taken := false
		for other, existing := range r.names {
			if existing == name && other != t {
				taken = true
				break
			}
		}
		if !taken {
			return name
		}
		name = fmt.Sprintf("%s_%d", base, i)
	}
}

func (r *Registry) objectSchema(t reflect.Type) Schema {
	props := make(map[string]interface{})
	var required []string
	r.collectFields(t, props, &required)

	schema := Schema{"type": "object"}
	if len(props) > 0 {
		schema["properties"] = props
	}
	if len(required) > 0 {
		sort.Strings(required)
		schema["required"] = required
	}
	return schema
}

func (r *Registry) collectFields(t reflect.Type, props map[string]interface{}, required *[]string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue // unexported
		}
		tag := field.Tag.Get("json")
		if field.Anonymous && tag == "" {
			embedded := field.Type
			for embedded.Kind() == reflect.Ptr {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				r.collectFields(embedded, props, required)
				continue
			}
		}
		meta := jsonFieldMeta(tag, field.Name)
		if meta.skip || meta.name == "" {
			continue
		}
		if _, exists := props[meta.name]; exists {
			continue
		}
		props[meta.name] = r.schemaForType(field.Type)
		optional := meta.omitEmpty || field.Type.Kind() == reflect.Ptr
		if !optional {
			*required = append(*required, meta.name)
		}
	}
}

// jsonFieldMetadata describes details extracted from a struct field tag.
type jsonFieldMetadata struct {
	name      string
	omitEmpty bool
	skip      bool
}

func jsonFieldMeta(tag, fallback string) jsonFieldMetadata {
	if tag == "" {
		return jsonFieldMetadata{name: fallback}
	}
	if tag == "-" {
		return jsonFieldMetadata{skip: true}
	}
	parts := strings.Split(tag, ",")
	name := parts[0]
	if name == "" {
		name = fallback
	}
	meta := jsonFieldMetadata{name: name}
	for _, opt := range parts[1:] {
		if strings.TrimSpace(opt) == "omitempty" {
			meta.omitEmpty = true
		}
	}
	return meta
}
