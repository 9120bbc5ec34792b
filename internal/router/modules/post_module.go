package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pinshelf/pinshelf-api/internal/container"
	handlers "github.com/pinshelf/pinshelf-api/internal/interface/http"
	"github.com/pinshelf/pinshelf-api/internal/interface/middleware"
	"github.com/pinshelf/pinshelf-api/pkg/helpers"
)

// PostModule: the feed is public, writing needs a user token.
type PostModule struct {
	Handler *handlers.PostHandler
	JWT     *helpers.JWTManager
}

func NewPostModule(h *handlers.PostHandler, jwt *helpers.JWTManager) *PostModule {
	return &PostModule{Handler: h, JWT: jwt}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	publicLimiter := middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/post", publicLimiter, m.Handler.List)
	rg.GET("/post/:id", publicLimiter, m.Handler.Get)

	auth := rg.Group("/post")
	auth.Use(
		middleware.AuthenticateUser(rdb, m.JWT),
		middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.POST("/create", m.Handler.Create)
		auth.POST("/delete", m.Handler.Delete)
	}
}
