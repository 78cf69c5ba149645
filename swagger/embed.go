package swagger

import "embed"

// assets holds the Swagger UI index page. The heavy UI bundle itself is
// loaded from the published swagger-ui-dist release referenced by the
// page.
//
//go:embed assets/*
var assets embed.FS
