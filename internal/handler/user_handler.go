package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turfhub/service-turf/internal/application"
	"github.com/turfhub/service-turf/pkg/auth"
	"github.com/turfhub/service-turf/pkg/middleware"
	"github.com/turfhub/service-turf/pkg/response"
)

// UserHandler serves the signed-in user's profile and bookings.
type UserHandler struct {
	authService    *application.AuthService
	bookingService *application.BookingService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *application.AuthService, bookingService *application.BookingService) *UserHandler {
	return &UserHandler{authService: authService, bookingService: bookingService}
}

// RegisterRoutes registers the user routes.
func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(jwtManager))
	{
		users.GET("/get-logged-in-profile-info", h.GetProfile)
		users.GET("/get-user-bookings/:userId", h.GetUserBookings)
	}
}

// GetProfile handles GET /api/users/get-logged-in-profile-info
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	dto, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}

// GetUserBookings handles GET /api/users/get-user-bookings/:userId
func (h *UserHandler) GetUserBookings(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "invalid user ID")
		return
	}
	if !middleware.IsSelfOrAdmin(c, userID) {
		response.Forbidden(c, "cannot view another user's bookings")
		return
	}

	resp, err := h.bookingService.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, resp)
}
