package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turfhub/service-turf/internal/application"
	"github.com/turfhub/service-turf/pkg/auth"
	"github.com/turfhub/service-turf/pkg/middleware"
	"github.com/turfhub/service-turf/pkg/response"
)

// AdminHandler handles admin HTTP requests for catalog and ledger management.
type AdminHandler struct {
	catalog  *application.CatalogService
	bookings *application.BookingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(catalog *application.CatalogService, bookings *application.BookingService) *AdminHandler {
	return &AdminHandler{catalog: catalog, bookings: bookings}
}

// RegisterRoutes registers admin routes.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	r.POST("/turfs/add", authMW, adminRole, h.CreateVenue)
	r.PATCH("/turfs/:id/active", authMW, adminRole, h.SetVenueActive)
	r.GET("/bookings/all", authMW, adminRole, h.ListBookings)
}

// CreateVenue handles POST /api/turfs/add.
func (h *AdminHandler) CreateVenue(c *gin.Context) {
	var req application.CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.catalog.CreateVenue(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto)
}

// SetVenueActive handles PATCH /api/turfs/:id/active.
func (h *AdminHandler) SetVenueActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid turf ID")
		return
	}

	var req application.SetVenueActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.catalog.SetVenueActive(c.Request.Context(), id, *req.Active)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}

// ListBookings handles GET /api/bookings/all.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.bookings.ListAllBookings(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}
