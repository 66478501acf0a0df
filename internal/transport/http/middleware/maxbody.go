package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "toyshop/internal/transport/http/response"
)

// MaxBodyBytes 限制请求体大小，图片上传的上限也靠它兜底
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
		if c.Err() != nil && !c.Writer.Written() {
			resp.AbortErr(c, http.StatusRequestEntityTooLarge, "request body too large")
		}
	}
}
