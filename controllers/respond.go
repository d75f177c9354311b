package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"homigo-backend/services"
	"homigo-backend/utils"

	"github.com/gin-gonic/gin"
)

// serviceMessage strips the sentinel prefix so the client sees the plain
// business message, not the taxonomy label.
func serviceMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{
		services.ErrValidation,
		services.ErrNotFound,
		services.ErrForbidden,
		services.ErrConflict,
	} {
		msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
	}
	return msg
}

// respondServiceError maps the service failure taxonomy onto HTTP codes.
// Conflict maps to 400: overlap, already-cancelled and cutoff failures are
// caller-correctable business rules here, not 409s.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, serviceMessage(err))
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, serviceMessage(err))
	case errors.Is(err, services.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, serviceMessage(err))
	case errors.Is(err, services.ErrConflict):
		utils.JSONError(c, http.StatusBadRequest, serviceMessage(err))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password")
	default:
		log.Printf("internal error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
	}
}
