// Package scalar serves a Scalar API reference for a generated OpenAPI
// document.
package scalar

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/webasoo/oasgen/internal/staticui"
)

var assetFS = initAssetFS()

func initAssetFS() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic("scalar: failed to load embedded assets: " + err.Error())
	}
	return sub
}

// UIOptions tweaks the served index page.
type UIOptions struct {
	Title   string
	SpecURL string
}

// Handler returns an http.Handler serving the Scalar reference and the
// provided document.
func Handler(spec []byte) http.Handler {
	return HandlerWithOptions(spec, UIOptions{})
}

// HandlerWithOptions is Handler with runtime UI options applied.
func HandlerWithOptions(spec []byte, opts UIOptions) http.Handler {
	return staticui.Handler(assetFS, "scalar", spec, staticui.Options{
		Title:   opts.Title,
		SpecURL: opts.SpecURL,
	})
}

// HandlerFromFile loads the OpenAPI document from disk and returns a
// Scalar handler.
func HandlerFromFile(path string) (http.Handler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scalar: read spec %q: %w", path, err)
	}
	return Handler(data), nil
}

// Register adds default handlers under /scalar/ using the provided
// document.
func Register(spec []byte) {
	handler := Handler(spec)
	http.Handle("/scalar", handler)
	http.Handle("/scalar/", handler)
}

// RegisterFile loads the document from disk and wires the standard routes.
func RegisterFile(path string) error {
	handler, err := HandlerFromFile(path)
	if err != nil {
		return err
	}
	http.Handle("/scalar", handler)
	http.Handle("/scalar/", handler)
	return nil
}
