// Package staticui serves an embedded documentation UI bundle together
// with the OpenAPI document it visualises. The swagger, redoc and scalar
// packages wrap it with their own asset sets.
package staticui

import (
	"bytes"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
)

const indexFile = "index.html"

// Options tweaks how the index page is served.
type Options struct {
	Title   string // page title, defaults to "API Reference"
	SpecURL string // overrides the spec location baked into the index page
}

// Handler serves the UI assets in fsys under the given mount prefix
// (e.g. "swagger") and exposes spec as openapi.json or openapi.yaml
// depending on its encoding. The index page has its {{.Title}} and
// {{.SpecURL}} placeholders filled at request time.
func Handler(fsys fs.FS, mount string, spec []byte, opts Options) http.Handler {
	specCopy := append([]byte(nil), spec...)
	specName := specFileName(specCopy)

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "API Reference"
	}
	specURL := strings.TrimSpace(opts.SpecURL)
	if specURL == "" {
		specURL = specName
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch target := resolveTarget(r.URL.Path, mount); target {
		case "", indexFile:
			serveIndex(w, fsys, title, specURL)
		case "openapi.json", "openapi.yaml":
			// Only the name matching the document's encoding exists.
			if target != specName {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", specContentType(specName))
			_, _ = w.Write(specCopy)
		default:
			if !serveAsset(w, fsys, target) {
				http.NotFound(w, r)
			}
		}
	})
}

func specFileName(spec []byte) string {
	trimmed := bytes.TrimSpace(spec)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return "openapi.json"
	}
	return "openapi.yaml"
}

func specContentType(specName string) string {
	if strings.HasSuffix(specName, ".json") {
		return "application/json"
	}
	return "application/x-yaml"
}

func serveIndex(w http.ResponseWriter, fsys fs.FS, title, specURL string) {
	data, err := fs.ReadFile(fsys, indexFile)
	if err != nil {
		http.Error(w, "staticui: index not available", http.StatusInternalServerError)
		return
	}
	page := strings.ReplaceAll(string(data), "{{.Title}}", title)
	page = strings.ReplaceAll(page, "{{.SpecURL}}", specURL)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

func resolveTarget(raw, mount string) string {
	cleaned := raw
	if idx := strings.Index(cleaned, "?"); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	if cleaned == "" {
		return ""
	}
	cleaned = path.Clean(cleaned)
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return ""
	}
	if strings.HasPrefix(cleaned, mount+"/") {
		cleaned = strings.TrimPrefix(cleaned, mount+"/")
	}
	if cleaned == mount {
		return ""
	}
	return cleaned
}

func serveAsset(w http.ResponseWriter, fsys fs.FS, name string) bool {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return false
	}
	if ctype := contentTypeFor(name); ctype != "" {
		w.Header().Set("Content-Type", ctype)
	}
	_, _ = w.Write(data)
	return true
}

func contentTypeFor(name string) string {
	ext := strings.ToLower(path.Ext(name))
	switch ext {
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript"
	case ".png":
		return "image/png"
	case ".html":
		return "text/html; charset=utf-8"
	default:
		return mime.TypeByExtension(ext)
	}
}
