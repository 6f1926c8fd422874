// Package response writes the JSON bodies shared by all handlers.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turfhub/service-turf/pkg/domain"
)

// ErrorBody is the envelope for every non-2xx response.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// PageBody is the envelope for paginated listings.
type PageBody struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
}

// Success writes 200 with data as the body.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes 201 with data as the body.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Paginated writes 200 with a page envelope.
func Paginated(c *gin.Context, data interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, PageBody{
		StatusCode: http.StatusOK,
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
	})
}

// BadRequest writes a 400 validation envelope.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, "validation", message)
}

// Unauthorized writes a 401 envelope.
func Unauthorized(c *gin.Context, message string) {
	abort(c, http.StatusUnauthorized, "unauthorized", message)
}

// Forbidden writes a 403 envelope.
func Forbidden(c *gin.Context, message string) {
	abort(c, http.StatusForbidden, "forbidden", message)
}

// Error maps err onto a status code. Unclassified errors become 500 and the
// cause is attached to the gin context for the request logger.
func Error(c *gin.Context, err error) {
	status, kind := classify(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		abort(c, status, kind, "internal server error")
		return
	}
	abort(c, status, kind, err.Error())
}

// StatusFor returns the HTTP status that Error would write for err.
func StatusFor(err error) int {
	status, _ := classify(err)
	return status
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func abort(c *gin.Context, status int, kind, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{
		StatusCode: status,
		Error:      kind,
		Message:    message,
	})
}
