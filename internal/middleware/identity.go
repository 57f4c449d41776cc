package middleware

import (
	"net/http"
	"strconv"

	"brika-go/internal/service"

	"github.com/gin-gonic/gin"
)

// Identity 从 X-User-ID 请求头解析当前用户，并把用户对象挂到上下文。
// 没有可用用户时中断请求并返回 401。
func Identity(userService service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-User-ID header"})
			return
		}

		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid X-User-ID header"})
			return
		}

		user, err := userService.GetByID(uint(userID))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		// 将用户信息存入上下文，供后续处理函数使用
		c.Set("user", user)
		c.Set("userID", user.ID)

		c.Next()
	}
}
