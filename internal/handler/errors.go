package handler

import (
	"errors"
	"net/http"

	"omanvat/internal/service"
	"omanvat/pkg/response"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors to HTTP status codes; resource and database failures are 500s
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrCompanyNotFound), errors.Is(err, service.ErrVATSettingNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	c.JSON(status, response.Error(status, err.Error()))
}
