package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turfhub/service-turf/internal/application"
	"github.com/turfhub/service-turf/pkg/auth"
	"github.com/turfhub/service-turf/pkg/middleware"
	"github.com/turfhub/service-turf/pkg/response"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers the booking routes.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("/book-turf/:turfId/:userId", middleware.AuthMiddleware(jwtManager), h.Book)
		bookings.GET("/get-by-confirmation-code/:code", h.GetByConfirmationCode)
	}
}

// Book handles POST /api/bookings/book-turf/:turfId/:userId
func (h *BookingHandler) Book(c *gin.Context) {
	turfID, err := uuid.Parse(c.Param("turfId"))
	if err != nil {
		response.BadRequest(c, "invalid turf ID")
		return
	}
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "invalid user ID")
		return
	}
	if !middleware.IsSelfOrAdmin(c, userID) {
		response.Forbidden(c, "cannot book on behalf of another user")
		return
	}

	var req application.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Book(c.Request.Context(), turfID, userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, resp)
}

// GetByConfirmationCode handles GET /api/bookings/get-by-confirmation-code/:code
func (h *BookingHandler) GetByConfirmationCode(c *gin.Context) {
	dto, err := h.service.GetByConfirmationCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}
