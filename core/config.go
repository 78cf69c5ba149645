package core

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config describes the document-level sections of the generated OpenAPI
// output. All fields are optional; zero values fall back to defaults.
type Config struct {
	Title          string `yaml:"title"`
	Version        string `yaml:"version"`
	Description    string `yaml:"description"`
	TermsOfService string `yaml:"termsOfService"`

	Contact *Contact `yaml:"contact"`
	License *License `yaml:"license"`

	// ApplicationRoot is the deployed root URL of the documented API. It
	// is used as the single server entry when Servers is empty.
	ApplicationRoot string   `yaml:"applicationRoot"`
	Servers         []Server `yaml:"servers"`

	Security []SecurityScheme `yaml:"security"`

	// TrimSchemaPrefix is stripped from every component schema name.
	// Prefixed names break some client-code generators.
	TrimSchemaPrefix string `yaml:"trimSchemaPrefix"`

	// SkipPaths lists path prefixes excluded from the document, on top of
	// the default documentation-UI prefixes.
	SkipPaths []string `yaml:"skipPaths"`
}

// Contact is the OpenAPI info.contact object.
type Contact struct {
	Name  string `yaml:"name"`
	URL   string `yaml:"url"`
	Email string `yaml:"email"`
}

// License is the OpenAPI info.license object.
type License struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Server is one OpenAPI servers entry.
type Server struct {
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

// SecurityScheme declares one security scheme plus a matching global
// security requirement. Supported types: bearer, basic and apikey.
type SecurityScheme struct {
	Name         string `yaml:"name"` // scheme name, defaults per type
	Type         string `yaml:"type"`
	HeaderName   string `yaml:"header"` // apikey only
	BearerFormat string `yaml:"bearerFormat"`
	Description  string `yaml:"description"`
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("core: read config %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("core: parse config %q: %w", path, err)
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.Title) == "" {
		c.Title = "Generated API"
	}
	if strings.TrimSpace(c.Version) == "" {
		c.Version = "1.0.0"
	}
	return c
}

// pathSkipper filters documentation-UI routes and configured prefixes out
// of the generated document.
type pathSkipper struct {
	prefixes []string
}

func newPathSkipper(prefixes []string) pathSkipper {
	defaults := []string{"/swagger", "/redoc", "/scalar"}
	var filtered []string
	seen := make(map[string]struct{})
	for _, p := range append(defaults, prefixes...) {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "/") {
			trimmed = "/" + trimmed
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		filtered = append(filtered, trimmed)
	}
	return pathSkipper{prefixes: filtered}
}

func (s pathSkipper) Skip(path string) bool {
	path = strings.TrimSpace(path)
	if path == "" {
		return true
	}
	for _, prefix := range s.prefixes {
		if strings.HasPrefix(strings.ToLower(path), strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}
