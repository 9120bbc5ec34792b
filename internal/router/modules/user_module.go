package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pinshelf/pinshelf-api/internal/container"
	handlers "github.com/pinshelf/pinshelf-api/internal/interface/http"
	"github.com/pinshelf/pinshelf-api/internal/interface/middleware"
	"github.com/pinshelf/pinshelf-api/pkg/helpers"
)

// UserModule wires profile and follow routes; everything requires a user token.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	user := rg.Group("/user")
	user.Use(
		middleware.AuthenticateUser(rdb, m.JWT),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		user.GET("/profile", m.Handler.GetProfile)
		user.PUT("/profile", m.Handler.UpdateProfile)
		user.POST("/follow", m.Handler.Follow)
		user.POST("/unfollow", m.Handler.Unfollow)
		// keep last so fixed paths above win
		user.GET("/:username", m.Handler.ByUsername)
	}
}
