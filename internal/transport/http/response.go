package handlers

import (
	"errors"
	"net/http"

	"coursemarket/internal/domain"

	"github.com/gin-gonic/gin"
)

// Конверт ответа: {success, message?, ...payload}

func respondOK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// respondError переводит доменную ошибку в конверт. Хендлеры не роняют
// процесс: любая ошибка становится success:false.
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"success": false, "message": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidSignature):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotEnrolled):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
