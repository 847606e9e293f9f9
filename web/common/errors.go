package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"interntrack.com/interntrack/core"
)

// StatusFromError maps domain error kinds to HTTP status codes.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, core.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithError writes the error as a JSON response with the mapped status.
func AbortWithError(c *gin.Context, err error) {
	c.JSON(StatusFromError(err), NewErrorResponse(err.Error()))
}
