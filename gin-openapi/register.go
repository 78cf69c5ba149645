package ginopenapi

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/webasoo/oasgen/swagger"
)

// Handler adapts the Swagger UI handler to gin.
func Handler(spec []byte) gin.HandlerFunc {
	return gin.WrapH(swagger.Handler(spec))
}

// HandlerWithOptions is Handler with runtime UI options applied.
func HandlerWithOptions(spec []byte, opts swagger.UIOptions) gin.HandlerFunc {
	return gin.WrapH(swagger.HandlerWithOptions(spec, opts))
}

// Register attaches GET handlers for /swagger and /swagger/*any.
func Register(router gin.IRoutes, spec []byte) {
	handler := Handler(spec)
	router.GET("/swagger", handler)
	router.GET("/swagger/*any", handler)
}

// RegisterFile loads an OpenAPI document from disk and mounts the Swagger
// UI routes.
func RegisterFile(router gin.IRoutes, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ginopenapi: read spec %q: %w", path, err)
	}
	Register(router, data)
	return nil
}
