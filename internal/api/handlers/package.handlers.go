package routes

import (
	"errors"
	"log"
	"net/http"

	"packtrack/internal/auth"
	"packtrack/internal/model"
	"packtrack/internal/postgres"
	"packtrack/internal/service/tracking"
	"packtrack/internal/util"

	"github.com/gin-gonic/gin"
)

// PackageHandler exposes package CRUD and manual status changes
type PackageHandler struct {
	Packages *postgres.PackageRepository
	Tracking *tracking.TrackingService
	JWT      *auth.JWTService
}

// SetupPackageHandlers registers the package endpoints
func SetupPackageHandlers(router *gin.RouterGroup, h *PackageHandler) {
	group := router.Group("/packages", AuthRequired(h.JWT))

	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:tracking_id", h.Get)
	group.PATCH("/:tracking_id/status",
		RequireRole(model.RoleDeliveryStaff, model.RoleManager), h.UpdateStatus)
}

type contactRequest struct {
	Name      string  `json:"name" binding:"required,min=2,max=100"`
	Address   string  `json:"address" binding:"required,min=5,max=500"`
	Phone     string  `json:"phone" binding:"required,min=10,max=20"`
	Latitude  float64 `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" binding:"gte=-180,lte=180"`
}

func (r contactRequest) toModel() model.Contact {
	return model.Contact{
		Name:    r.Name,
		Address: r.Address,
		Phone:   r.Phone,
		Location: model.Location{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		},
	}
}

type createPackageRequest struct {
	Sender    contactRequest `json:"sender" binding:"required"`
	Recipient contactRequest `json:"recipient" binding:"required"`
}

// Create registers a new package owned by the caller. The tracking
// identifier is assigned here, once, and never reused.
func (h *PackageHandler) Create(c *gin.Context) {
	var req createPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims := CurrentClaims(c)

	pkg := &model.Package{
		ID:         util.ShortUUID(),
		TrackingID: util.NewTrackingID(),
		Sender:     req.Sender.toModel(),
		Recipient:  req.Recipient.toModel(),
		Status:     model.StatusRegistered,
		UserID:     claims.UserID,
	}

	if err := h.Packages.Create(c.Request.Context(), pkg); err != nil {
		log.Printf("Package creation failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
		return
	}

	c.JSON(http.StatusCreated, pkg)
}

// List returns the caller's packages; staff and managers see all
func (h *PackageHandler) List(c *gin.Context) {
	claims := CurrentClaims(c)

	var (
		pkgs []model.Package
		err  error
	)
	if claims.Role.CanReadAnyPackage() {
		pkgs, err = h.Packages.ListAll(c.Request.Context())
	} else {
		pkgs, err = h.Packages.ListByUser(c.Request.Context(), claims.UserID)
	}
	if err != nil {
		log.Printf("Package listing failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"packages": pkgs, "total": len(pkgs)})
}

// Get returns one package by tracking identifier
func (h *PackageHandler) Get(c *gin.Context) {
	pkg, err := h.Packages.FindByTrackingID(c.Request.Context(), c.Param("tracking_id"))
	if err != nil {
		if errors.Is(err, model.ErrPackageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
		return
	}

	if !canReadPackage(CurrentClaims(c), pkg) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you don't have permission to view this package"})
		return
	}

	c.JSON(http.StatusOK, pkg)
}

type updateStatusRequest struct {
	Status model.Status `json:"status" binding:"required"`
}

// UpdateStatus applies a manual status transition through the policy table
func (h *PackageHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	pkg, err := h.Tracking.ManualTransition(c.Request.Context(), c.Param("tracking_id"), req.Status)
	if err != nil {
		var invalid *model.InvalidTransitionError
		switch {
		case errors.Is(err, model.ErrPackageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
		case errors.As(err, &invalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
		}
		return
	}

	c.JSON(http.StatusOK, pkg)
}
