package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pinshelf/pinshelf-api/internal/container"
	handlers "github.com/pinshelf/pinshelf-api/internal/interface/http"
	"github.com/pinshelf/pinshelf-api/internal/interface/middleware"
	"github.com/pinshelf/pinshelf-api/pkg/helpers"
)

// ItemModule: catalog listing and search are public, everything that writes
// or is caller-specific needs a user token.
type ItemModule struct {
	Handler *handlers.ItemHandler
	JWT     *helpers.JWTManager
}

func NewItemModule(h *handlers.ItemHandler, jwt *helpers.JWTManager) *ItemModule {
	return &ItemModule{Handler: h, JWT: jwt}
}

func (m *ItemModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	publicLimiter := middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/item", publicLimiter, m.Handler.List)
	rg.GET("/item/search", publicLimiter, m.Handler.Search)
	rg.GET("/item/:id", publicLimiter, m.Handler.Get)

	auth := rg.Group("/item")
	auth.Use(
		middleware.AuthenticateUser(rdb, m.JWT),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/favorites", m.Handler.ListFavorites)
		auth.POST("/create", m.Handler.Create)
		auth.POST("/delete", m.Handler.Delete)
		auth.POST("/favorite", m.Handler.Favorite)
	}
}
