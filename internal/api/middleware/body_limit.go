package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"school-hub/backend/pkg/response"
)

// BodyLimit 请求体大小限制
// 声明了 Content-Length 且超限的请求直接拒绝；其余请求体读取超过 maxBytes 时由绑定失败返回
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 || c.Request.Body == nil {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
