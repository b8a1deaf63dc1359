package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/stayhub/stayhub/pkg/helpers"
	"github.com/stayhub/stayhub/pkg/response"
)

// Auth validates the access token and ensures an active session exists in
// Redis. It sets userID, userEmail, and isAdmin in the Gin context on success.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}

		key := "user:session:" + claims.UserID
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 {
			response.AbortError(c, http.StatusUnauthorized, "session not found", nil)
			return
		}

		isAdmin, _ := strconv.ParseBool(data["is_admin"])
		c.Set("userID", data["user_id"])
		c.Set("userEmail", data["email"])
		c.Set("isAdmin", isAdmin)
		c.Next()
	}
}

// RequireAdmin allows only sessions flagged as admin. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("isAdmin") {
			response.AbortError(c, http.StatusForbidden, "admin privileges required", nil)
			return
		}
		c.Next()
	}
}
