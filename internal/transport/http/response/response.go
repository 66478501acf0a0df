// Package response 统一出参：成功直接给 payload，
// 失败是 {"error": msg} + 真实 HTTP 状态码，不另设业务错误码。
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"toyshop/internal/domain"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Err(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func AbortErr(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// FromDomainErr 把领域错误翻译成状态码；没认出来的一律 500
func FromDomainErr(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		Err(c, http.StatusBadRequest, fallback)
	case errors.Is(err, domain.ErrNotFound):
		Err(c, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrSlugTaken):
		Err(c, http.StatusConflict, "A product with this name/slug already exists. Rename it slightly.")
	case errors.Is(err, domain.ErrInvalidCredentials):
		Err(c, http.StatusUnauthorized, "Invalid credentials")
	default:
		Err(c, http.StatusInternalServerError, "Internal server error")
	}
}
