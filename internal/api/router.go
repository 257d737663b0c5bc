package api

import (
	routes "packtrack/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router needs. Each handler carries
// its own dependencies so the router stays wiring-only.
type Handlers struct {
	Auth     *routes.AuthHandler
	Packages *routes.PackageHandler
	Tracking *routes.TrackingHandler
}

// SetupRouter initializes all application routes
func SetupRouter(r *gin.Engine, h Handlers) {
	// API group
	api := r.Group("/api")

	// Setup main handlers
	routes.SetupMainHandlers(r.Group(""))

	routes.SetupAuthHandlers(api, h.Auth)
	routes.SetupPackageHandlers(api, h.Packages)
	routes.SetupTrackingHandlers(api, h.Tracking)
}
