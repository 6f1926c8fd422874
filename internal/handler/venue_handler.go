package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turfhub/service-turf/internal/application"
	"github.com/turfhub/service-turf/pkg/response"
)

// VenueHandler serves the public catalog and availability search.
type VenueHandler struct {
	catalog      *application.CatalogService
	availability *application.AvailabilityService
}

// NewVenueHandler creates a new VenueHandler.
func NewVenueHandler(catalog *application.CatalogService, availability *application.AvailabilityService) *VenueHandler {
	return &VenueHandler{catalog: catalog, availability: availability}
}

// RegisterRoutes registers the public turf routes.
func (h *VenueHandler) RegisterRoutes(r *gin.RouterGroup) {
	turfs := r.Group("/turfs")
	{
		turfs.GET("/types", h.ListTypes)
		turfs.GET("/all", h.ListActive)
		turfs.GET("/all-available-turfs", h.ListActive)
		turfs.GET("/turf-by-id/:id", h.GetByID)
		turfs.GET("/available-turfs-by-date-and-type", h.FindAvailable)
	}
}

// ListTypes handles GET /api/turfs/types
func (h *VenueHandler) ListTypes(c *gin.Context) {
	types, err := h.catalog.ListSportTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, types)
}

// ListActive handles GET /api/turfs/all and /api/turfs/all-available-turfs
func (h *VenueHandler) ListActive(c *gin.Context) {
	venues, err := h.catalog.ListActiveVenues(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, venues)
}

// GetByID handles GET /api/turfs/turf-by-id/:id
func (h *VenueHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid turf ID")
		return
	}

	dto, err := h.catalog.GetActiveVenue(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}

// FindAvailable handles GET /api/turfs/available-turfs-by-date-and-type
func (h *VenueHandler) FindAvailable(c *gin.Context) {
	venues, err := h.availability.FindAvailable(c.Request.Context(),
		c.Query("turfType"),
		c.Query("bookingDate"),
		c.Query("bookingTime"),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, application.TurfSearchResponse{
		StatusCode: http.StatusOK,
		TurfList:   venues,
	})
}
