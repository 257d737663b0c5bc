package routes

import (
	"errors"
	"log"
	"net/http"
	"time"

	"packtrack/internal/auth"
	"packtrack/internal/model"
	"packtrack/internal/service/room"
	"packtrack/internal/service/tracking"
	"packtrack/internal/ws"

	"github.com/gin-gonic/gin"
)

// TrackingHandler exposes location ingestion, history, ETA and the
// live-update stream
type TrackingHandler struct {
	Tracking *tracking.TrackingService
	Registry *room.Registry
	JWT      *auth.JWTService
}

// SetupTrackingHandlers registers the tracking endpoints
func SetupTrackingHandlers(router *gin.RouterGroup, h *TrackingHandler) {
	group := router.Group("/tracking")

	group.POST("/:tracking_id/update",
		AuthRequired(h.JWT),
		RequireRole(model.RoleDeliveryStaff, model.RoleManager),
		h.UpdateLocation)
	group.GET("/:tracking_id/history", AuthRequired(h.JWT), h.History)
	group.GET("/:tracking_id/eta", AuthRequired(h.JWT), h.ETA)
	group.GET("/:tracking_id/ws", h.Watch)
}

type locationUpdateRequest struct {
	Latitude  *float64   `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64   `json:"longitude" binding:"required,gte=-180,lte=180"`
	Timestamp *time.Time `json:"timestamp"`
}

// UpdateLocation ingests one location report and returns the enriched
// event that was broadcast to the package's tracking room
func (h *TrackingHandler) UpdateLocation(c *gin.Context) {
	var req locationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.Tracking.IngestLocation(
		c.Request.Context(), c.Param("tracking_id"),
		*req.Latitude, *req.Longitude, req.Timestamp)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPackageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
		case errors.Is(err, model.ErrInvalidCoordinates):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
		case errors.Is(err, model.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
		default:
			log.Printf("Location ingestion failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusCreated, event)
}

// authorizedPackage loads the package and checks the caller may view
// it. Writes the error response and returns nil when the caller may
// not proceed.
func (h *TrackingHandler) authorizedPackage(c *gin.Context) *model.Package {
	pkg, err := h.Tracking.FindPackage(c.Request.Context(), c.Param("tracking_id"))
	if err != nil {
		if errors.Is(err, model.ErrPackageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
		} else {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
		}
		return nil
	}

	if !canReadPackage(CurrentClaims(c), pkg) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you don't have permission to view this package"})
		return nil
	}
	return pkg
}

// History returns the ordered route history of a package
func (h *TrackingHandler) History(c *gin.Context) {
	pkg := h.authorizedPackage(c)
	if pkg == nil {
		return
	}

	reports, err := h.Tracking.History(c.Request.Context(), pkg)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"package_id":  pkg.ID,
		"tracking_id": pkg.TrackingID,
		"locations":   reports,
		"total":       len(reports),
	})
}

// ETA recomputes and returns the current arrival estimate. The
// ownership check runs before the estimate so unauthorized callers
// learn nothing about the package and trigger no prediction writes.
func (h *TrackingHandler) ETA(c *gin.Context) {
	pkg := h.authorizedPackage(c)
	if pkg == nil {
		return
	}

	result, err := h.Tracking.CurrentETA(c.Request.Context(), pkg)
	if err != nil {
		switch {
		case errors.Is(err, tracking.ErrPackageDelivered):
			c.JSON(http.StatusBadRequest, gin.H{"error": "package has already been delivered"})
		case errors.Is(err, tracking.ErrRecipientNotSet):
			c.JSON(http.StatusBadRequest, gin.H{"error": "recipient location not set"})
		case errors.Is(err, tracking.ErrNoLocationReports):
			c.JSON(http.StatusNotFound, gin.H{"error": "no location updates found for this package"})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"package_id":             pkg.ID,
		"tracking_id":            pkg.TrackingID,
		"eta":                    result.ETA,
		"calculated_at":          time.Now().UTC(),
		"formatted_eta":          result.Remaining.Label,
		"time_remaining_minutes": result.Remaining.MinutesRemaining,
		"is_overdue":             result.Remaining.Overdue,
	})
}

// Watch upgrades the request into a long-lived observer connection for
// one tracking room
func (h *TrackingHandler) Watch(c *gin.Context) {
	trackingID := c.Param("tracking_id")

	if err := ws.Serve(h.Registry, trackingID, c.Writer, c.Request); err != nil {
		log.Printf("WebSocket upgrade failed for %s: %v", trackingID, err)
	}
}
