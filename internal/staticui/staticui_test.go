package staticui

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFS = fstest.MapFS{
	"index.html": &fstest.MapFile{Data: []byte(
		`<html><title>{{.Title}}</title><script src="ui.js"></script><body data-spec="{{.SpecURL}}"></body></html>`,
	)},
	"ui.js": &fstest.MapFile{Data: []byte("console.log('ui')")},
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandlerIndexPlaceholders(t *testing.T) {
	h := Handler(testFS, "docs", []byte(`{"openapi":"3.0.3"}`), Options{Title: "Pets"})

	for _, target := range []string{"/docs", "/docs/", "/docs/index.html"} {
		rec := get(t, h, target)
		require.Equal(t, http.StatusOK, rec.Code, target)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "<title>Pets</title>")
		assert.Contains(t, rec.Body.String(), `data-spec="openapi.json"`)
		assert.NotContains(t, rec.Body.String(), "{{.")
	}
}

func TestHandlerIndexDefaults(t *testing.T) {
	h := Handler(testFS, "docs", []byte("openapi: 3.0.3\n"), Options{SpecURL: "/custom/spec.yaml"})

	rec := get(t, h, "/docs")
	assert.Contains(t, rec.Body.String(), "<title>API Reference</title>")
	assert.Contains(t, rec.Body.String(), `data-spec="/custom/spec.yaml"`)
}

func TestHandlerServesSpec(t *testing.T) {
	jsonSpec := []byte(`{"openapi":"3.0.3"}`)
	h := Handler(testFS, "docs", jsonSpec, Options{})

	rec := get(t, h, "/docs/openapi.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, string(jsonSpec), rec.Body.String())

	yamlSpec := []byte("openapi: 3.0.3\n")
	h = Handler(testFS, "docs", yamlSpec, Options{})

	rec = get(t, h, "/docs/openapi.yaml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/x-yaml", rec.Header().Get("Content-Type"))
	assert.Equal(t, string(yamlSpec), rec.Body.String())
}

func TestHandlerSpecNameMatchesEncoding(t *testing.T) {
	// A JSON document does not answer to openapi.yaml, and vice versa.
	h := Handler(testFS, "docs", []byte(`{"openapi":"3.0.3"}`), Options{})
	rec := get(t, h, "/docs/openapi.yaml")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	h = Handler(testFS, "docs", []byte("openapi: 3.0.3\n"), Options{})
	rec = get(t, h, "/docs/openapi.json")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerServesAssets(t *testing.T) {
	h := Handler(testFS, "docs", nil, Options{})

	rec := get(t, h, "/docs/ui.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/javascript", rec.Header().Get("Content-Type"))

	rec = get(t, h, "/docs/missing.css")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResolveTarget(t *testing.T) {
	cases := []struct {
		raw, want string
	}{
		{"/docs", ""},
		{"/docs/", ""},
		{"/docs/index.html", "index.html"},
		{"/docs/sub/ui.js", "sub/ui.js"},
		{"/docs/ui.js?v=2", "ui.js"},
		{"/docs/../docs/ui.js", "ui.js"},
		{"/", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, resolveTarget(tc.raw, "docs"), tc.raw)
	}
}

func TestSpecFileName(t *testing.T) {
	assert.Equal(t, "openapi.json", specFileName([]byte(`  {"a":1}`)))
	assert.Equal(t, "openapi.json", specFileName([]byte(`[1]`)))
	assert.Equal(t, "openapi.yaml", specFileName([]byte("openapi: 3.0.3")))
	assert.Equal(t, "openapi.yaml", specFileName(nil))
}
