package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pinshelf/pinshelf-api/internal/container"
	handlers "github.com/pinshelf/pinshelf-api/internal/interface/http"
	"github.com/pinshelf/pinshelf-api/internal/interface/middleware"
	"github.com/pinshelf/pinshelf-api/pkg/helpers"
)

// CategoryModule: the listing is public, mutations are admin-gated.
type CategoryModule struct {
	Handler *handlers.CategoryHandler
	JWT     *helpers.JWTManager
}

func NewCategoryModule(h *handlers.CategoryHandler, jwt *helpers.JWTManager) *CategoryModule {
	return &CategoryModule{Handler: h, JWT: jwt}
}

func (m *CategoryModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	listLimiter := middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/category", listLimiter, m.Handler.List)

	admin := rg.Group("/category")
	admin.Use(middleware.AuthenticateAdmin(rdb, m.JWT))
	{
		admin.POST("/create", m.Handler.Create)
		admin.POST("/update", m.Handler.Update)
		admin.POST("/delete", m.Handler.Delete)
	}
}
