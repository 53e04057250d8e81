package handler

import (
	"errors"
	"net/http"

	"nhatro-chat/internal/transport/httpdto"
	nhatro_errors "nhatro-chat/pkg/errors"

	"github.com/gin-gonic/gin"
)

// respondError maps domain sentinels to HTTP statuses and writes the error
// envelope.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"

	switch {
	case errors.Is(err, nhatro_errors.ErrUnauthorized):
		status, code = http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, nhatro_errors.ErrForbidden):
		status, code = http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, nhatro_errors.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, nhatro_errors.ErrInvalidInput),
		errors.Is(err, nhatro_errors.ErrInvalidState),
		errors.Is(err, nhatro_errors.ErrInvalidReference):
		status, code = http.StatusBadRequest, "INVALID_REQUEST"
	}

	c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
}
