package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pinshelf/pinshelf-api/pkg/helpers"
	"github.com/pinshelf/pinshelf-api/pkg/response"
)

// Context keys set by the auth middleware for downstream handlers.
const (
	CtxUserIDKey  = "userID"
	CtxIsAdminKey = "isAdmin"
)

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// authenticate validates the bearer access token and, when Redis is wired,
// checks an active session exists. Sets userID and isAdmin in the Gin
// context on success. Aborts with 401 on failure; never calls c.Next().
func authenticate(c *gin.Context, rdb *redis.Client, jwt *helpers.JWTManager) bool {
	token := bearerToken(c)
	if token == "" {
		response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
		return false
	}
	claims, err := jwt.ParseAccessToken(token)
	if err != nil {
		response.AbortError(c, http.StatusUnauthorized, "invalid access token", nil)
		return false
	}
	if rdb != nil {
		data, err := rdb.HGetAll(c.Request.Context(), helpers.SessionKey(claims.UserID)).Result()
		if err != nil || len(data) == 0 {
			response.AbortError(c, http.StatusUnauthorized, "session not found", nil)
			return false
		}
	}
	c.Set(CtxUserIDKey, claims.UserID)
	c.Set(CtxIsAdminKey, claims.Admin)
	return true
}

// AuthenticateUser gates user routes on a valid token (and session).
func AuthenticateUser(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, rdb, jwt) {
			return
		}
		c.Next()
	}
}

// AuthenticateAdmin gates admin-only routes. A valid non-admin token is
// still refused with 401 before the handler runs; the route presents as
// requiring different credentials rather than revealing an admin surface.
func AuthenticateAdmin(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, rdb, jwt) {
			return
		}
		if !c.GetBool(CtxIsAdminKey) {
			response.AbortError(c, http.StatusUnauthorized, "admin credentials required", nil)
			return
		}
		c.Next()
	}
}
