package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Generate builds the OpenAPI document for the supplied APIs. A fresh
// Snapshot, operation-id allocator and schema registry are created for the
// run; nothing survives the call.
func Generate(apis []ResourceApi, cfg Config) (*Document, error) {
	return GenerateWith(apis, cfg, NewRegistry(cfg.TrimSchemaPrefix))
}

// GenerateWith is Generate with a caller-provided schema registry, for
// callers that pre-register named component schemas.
func GenerateWith(apis []ResourceApi, cfg Config, registry *Registry) (*Document, error) {
	if registry == nil {
		registry = NewRegistry(cfg.TrimSchemaPrefix)
	}
	cfg = cfg.withDefaults()

	snap := NewSnapshot(apis)
	ids := NewOperationIDs(snap)

	paths, err := renderPaths(snap, cfg, ids, registry)
	if err != nil {
		return nil, fmt.Errorf("core: render paths: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("core: no operations to document")
	}

	schemes, requirements := renderSecurity(cfg)

	doc := &Document{
		OpenAPI:  "3.0.3",
		Info:     renderInfo(cfg),
		Servers:  renderServers(cfg),
		Security: requirements,
		Paths:    paths,
	}
	if len(registry.Schemas()) > 0 || len(schemes) > 0 {
		doc.Components = &ComponentsObject{
			Schemas:         registry.Schemas(),
			SecuritySchemes: schemes,
		}
	}
	return doc, nil
}

// GenerateAndSave builds the document and writes it to outputPath. The
// extension picks the encoding: .json for JSON, anything else YAML. An
// empty path defaults to openapi.yaml in the current module root. The
// absolute destination is returned.
func GenerateAndSave(apis []ResourceApi, cfg Config, outputPath string) (string, error) {
	doc, err := Generate(apis, cfg)
	if err != nil {
		return "", err
	}
	return SaveDocument(doc, outputPath)
}

// SaveDocument writes an already generated document, using the same
// destination rules as GenerateAndSave.
func SaveDocument(doc *Document, outputPath string) (string, error) {
	output := strings.TrimSpace(outputPath)
	if output == "" {
		root, err := moduleRoot(".")
		if err != nil {
			if root, err = os.Getwd(); err != nil {
				return "", fmt.Errorf("core: resolve output dir: %w", err)
			}
		}
		output = filepath.Join(root, "openapi.yaml")
	} else if !filepath.IsAbs(output) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("core: resolve output dir: %w", err)
		}
		output = filepath.Join(cwd, output)
	}
	output = filepath.Clean(output)

	var data []byte
	var err error
	if strings.EqualFold(filepath.Ext(output), ".json") {
		data, err = doc.JSON()
	} else {
		data, err = doc.YAML()
	}
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return "", fmt.Errorf("core: create output dir: %w", err)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return "", fmt.Errorf("core: write document: %w", err)
	}
	return output, nil
}

// moduleRoot walks parent directories starting from start and returns the
// directory containing go.mod.
func moduleRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	dir := abs
	for {
		if _, statErr := os.Stat(filepath.Join(dir, "go.mod")); statErr == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("core: go.mod not found above %s", start)
}
