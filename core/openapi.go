package core

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document models the generated OpenAPI output. Field order follows the
// conventional section order of the specification.
type Document struct {
	OpenAPI    string                   `json:"openapi" yaml:"openapi"`
	Info       map[string]interface{}   `json:"info" yaml:"info"`
	Servers    []map[string]interface{} `json:"servers,omitempty" yaml:"servers,omitempty"`
	Security   []map[string][]string    `json:"security,omitempty" yaml:"security,omitempty"`
	Paths      map[string]PathItem      `json:"paths" yaml:"paths"`
	Components *ComponentsObject        `json:"components,omitempty" yaml:"components,omitempty"`
}

// PathItem represents the operations available on a single path, keyed by
// lower-cased HTTP verb.
type PathItem map[string]OperationObject

// OperationObject is one rendered operation.
type OperationObject map[string]interface{}

// ComponentsObject wraps the reusable parts of the document.
type ComponentsObject struct {
	Schemas         map[string]Schema                 `json:"schemas,omitempty" yaml:"schemas,omitempty"`
	SecuritySchemes map[string]map[string]interface{} `json:"securitySchemes,omitempty" yaml:"securitySchemes,omitempty"`
}

// JSON serialises the document as indented JSON.
func (d *Document) JSON() ([]byte, error) {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("core: encode document: %w", err)
	}
	return out, nil
}

// YAML serialises the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	out, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("core: encode document: %w", err)
	}
	return out, nil
}

// renderInfo builds the info section from configuration.
func renderInfo(cfg Config) map[string]interface{} {
	info := map[string]interface{}{
		"title":   cfg.Title,
		"version": cfg.Version,
	}
	if cfg.Description != "" {
		info["description"] = cfg.Description
	}
	if cfg.TermsOfService != "" {
		info["termsOfService"] = cfg.TermsOfService
	}
	if c := cfg.Contact; c != nil {
		contact := map[string]interface{}{}
		if c.Name != "" {
			contact["name"] = c.Name
		}
		if c.URL != "" {
			contact["url"] = c.URL
		}
		if c.Email != "" {
			contact["email"] = c.Email
		}
		if len(contact) > 0 {
			info["contact"] = contact
		}
	}
	if l := cfg.License; l != nil && l.Name != "" {
		license := map[string]interface{}{"name": l.Name}
		if l.URL != "" {
			license["url"] = l.URL
		}
		info["license"] = license
	}
	return info
}

// renderServers builds the servers section. An explicit server list wins;
// otherwise the application root, when configured, becomes the single
// entry.
func renderServers(cfg Config) []map[string]interface{} {
	if len(cfg.Servers) > 0 {
		servers := make([]map[string]interface{}, 0, len(cfg.Servers))
		for _, s := range cfg.Servers {
			url := strings.TrimSpace(s.URL)
			if url == "" {
				continue
			}
			entry := map[string]interface{}{"url": url}
			if s.Description != "" {
				entry["description"] = s.Description
			}
			servers = append(servers, entry)
		}
		return servers
	}
	if root := strings.TrimSpace(cfg.ApplicationRoot); root != "" {
		return []map[string]interface{}{{"url": strings.TrimRight(root, "/")}}
	}
	return nil
}

// renderSecurity builds the securitySchemes components plus the global
// security requirement list.
func renderSecurity(cfg Config) (map[string]map[string]interface{}, []map[string][]string) {
	if len(cfg.Security) == 0 {
		return nil, nil
	}
	schemes := make(map[string]map[string]interface{})
	var requirements []map[string][]string

	for _, s := range cfg.Security {
		name := strings.TrimSpace(s.Name)
		var scheme map[string]interface{}
		switch strings.ToLower(strings.TrimSpace(s.Type)) {
		case "bearer":
			if name == "" {
				name = "bearerAuth"
			}
			scheme = map[string]interface{}{"type": "http", "scheme": "bearer"}
			if s.BearerFormat != "" {
				scheme["bearerFormat"] = s.BearerFormat
			}
		case "basic":
			if name == "" {
				name = "basicAuth"
			}
			scheme = map[string]interface{}{"type": "http", "scheme": "basic"}
		case "apikey":
			if name == "" {
				name = "apiKeyAuth"
			}
			header := strings.TrimSpace(s.HeaderName)
			if header == "" {
				header = "X-API-Key"
			}
			scheme = map[string]interface{}{"type": "apiKey", "in": "header", "name": header}
		default:
			continue
		}
		if s.Description != "" {
			scheme["description"] = s.Description
		}
		schemes[name] = scheme
		requirements = append(requirements, map[string][]string{name: {}})
	}

	if len(schemes) == 0 {
		return nil, nil
	}
	return schemes, requirements
}

// renderPaths walks the snapshot and builds the paths section. Operations
// from different groups that share a path template merge into one item.
// A path item holds one operation per verb; when the model declares the
// same verb twice on a path, the first declaration wins and later ones
// are dropped.
func renderPaths(snap *Snapshot, cfg Config, ids *OperationIDs, registry *Registry) (map[string]PathItem, error) {
	skipper := newPathSkipper(cfg.SkipPaths)
	paths := make(map[string]PathItem)

	for _, group := range snap.ResourceGroups() {
		for _, resource := range group.Resources() {
			if skipper.Skip(resource.Path()) {
				continue
			}
			specPath := normalizeOpenAPIPath(resource.Path())
			for _, method := range resource.Methods() {
				verb := strings.ToLower(method.HTTPMethod())
				item := paths[specPath]
				if item == nil {
					item = make(PathItem)
					paths[specPath] = item
				}
				if _, exists := item[verb]; exists {
					continue
				}
				op, err := renderOperation(method, group, specPath, ids, registry)
				if err != nil {
					return nil, err
				}
				item[verb] = op
			}
		}
	}

	return paths, nil
}

func renderOperation(m Method, group ResourceGroup, specPath string, ids *OperationIDs, registry *Registry) (OperationObject, error) {
	id, err := ids.IDFor(m)
	if err != nil {
		return nil, err
	}

	summary := m.Summary()
	if summary == "" {
		summary = id
	}
	op := OperationObject{
		"operationId": id,
		"summary":     summary,
	}
	if desc := strings.TrimSpace(m.Description()); desc != "" {
		op["description"] = desc
	}
	if m.Deprecated() {
		op["deprecated"] = true
	}

	tags := m.Tags()
	if len(tags) == 0 && strings.TrimSpace(group.Label()) != "" {
		tags = []string{group.Label()}
	}
	if len(tags) > 0 {
		op["tags"] = tags
	}

	if params := renderParameters(m, specPath, registry); len(params) > 0 {
		op["parameters"] = params
	}
	if body := renderRequestBody(m.RequestBody(), registry); body != nil {
		op["requestBody"] = body
	}
	op["responses"] = renderResponses(m.Responses(), registry)

	return op, nil
}

func renderParameters(m Method, specPath string, registry *Registry) []map[string]interface{} {
	var params []map[string]interface{}
	seen := make(map[string]struct{})

	for _, p := range m.Parameters() {
		if p.Name == "" || p.In == "" {
			continue
		}
		key := strings.ToLower(p.In) + ":" + p.Name
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}

		schema := registry.resolve(p.Schema)
		if schema == nil {
			schema = map[string]interface{}{"type": "string"}
		}
		required := p.Required
		if strings.EqualFold(p.In, "path") {
			required = true
		}
		param := map[string]interface{}{
			"name":     p.Name,
			"in":       strings.ToLower(p.In),
			"required": required,
			"schema":   schema,
		}
		if p.Description != "" {
			param["description"] = p.Description
		}
		params = append(params, param)
	}

	// Path template segments without a declared parameter still need one.
	for _, name := range pathTemplateNames(specPath) {
		key := "path:" + name
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		params = append(params, map[string]interface{}{
			"name":     name,
			"in":       "path",
			"required": true,
			"schema":   map[string]interface{}{"type": "string"},
		})
	}

	return params
}

func renderRequestBody(body *RequestBody, registry *Registry) map[string]interface{} {
	if body == nil {
		return nil
	}
	out := map[string]interface{}{"required": body.Required}
	if body.Description != "" {
		out["description"] = body.Description
	}
	if schema := registry.resolve(body.Schema); schema != nil {
		contentType := canonicalContentType(body.MediaType, "application/json")
		out["content"] = map[string]interface{}{
			contentType: map[string]interface{}{"schema": schema},
		}
	}
	return out
}

func renderResponses(responses []Response, registry *Registry) map[string]interface{} {
	out := make(map[string]interface{})
	if len(responses) == 0 {
		out["200"] = map[string]interface{}{"description": "Success"}
		return out
	}

	for _, r := range responses {
		status := strings.TrimSpace(r.Status)
		if status == "" {
			status = "200"
		}
		desc := r.Description
		if desc == "" {
			desc = statusDescription(status)
		}
		resp := map[string]interface{}{"description": desc}
		if schema := registry.resolve(r.Schema); schema != nil {
			contentType := canonicalContentType(r.MediaType, "application/json")
			resp["content"] = map[string]interface{}{
				contentType: map[string]interface{}{"schema": schema},
			}
		}
		out[status] = resp
	}
	return out
}

// normalizeOpenAPIPath rewrites :name and *name template segments into the
// {name} form the specification uses.
func normalizeOpenAPIPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		trimmed := strings.TrimSpace(segment)
		switch {
		case strings.HasPrefix(trimmed, ":"):
			name := strings.TrimSpace(strings.TrimPrefix(trimmed, ":"))
			if name == "" {
				name = "param"
			}
			segments[i] = "{" + name + "}"
		case strings.HasPrefix(trimmed, "*"):
			name := strings.TrimSpace(strings.TrimPrefix(trimmed, "*"))
			if name == "" {
				name = "wildcard"
			}
			segments[i] = "{" + name + "}"
		default:
			segments[i] = trimmed
		}
	}
	result := strings.Join(segments, "/")
	if !strings.HasPrefix(result, "/") {
		result = "/" + result
	}
	return result
}

func pathTemplateNames(specPath string) []string {
	var names []string
	for _, segment := range strings.Split(specPath, "/") {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			name := segment[1 : len(segment)-1]
			if name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

func statusDescription(status string) string {
	status = strings.TrimSpace(status)
	if status == "" {
		return "Response"
	}
	if desc, ok := statusDescriptions[status]; ok {
		return desc
	}
	if code, err := strconv.Atoi(status); err == nil {
		if text := http.StatusText(code); text != "" {
			return text
		}
	}
	return "Response"
}

var statusDescriptions = map[string]string{
	"200":     "Success",
	"201":     "Created",
	"202":     "Accepted",
	"204":     "No Content",
	"400":     "Bad Request",
	"401":     "Unauthorized",
	"403":     "Forbidden",
	"404":     "Not Found",
	"409":     "Conflict",
	"500":     "Internal Error",
	"503":     "Service Unavailable",
	"default": "Default Response",
}

func canonicalContentType(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	switch strings.ToLower(value) {
	case "json", "application/json":
		return "application/json"
	case "xml", "application/xml":
		return "application/xml"
	case "yaml", "yml", "application/x-yaml", "application/yaml":
		return "application/x-yaml"
	case "form", "application/x-www-form-urlencoded", "x-www-form-urlencoded":
		return "application/x-www-form-urlencoded"
	case "multipart", "multipart/form-data":
		return "multipart/form-data"
	case "text", "text/plain":
		return "text/plain"
	case "html", "text/html":
		return "text/html"
	default:
		return value
	}
}
