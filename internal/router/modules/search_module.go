package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pinshelf/pinshelf-api/internal/container"
	handlers "github.com/pinshelf/pinshelf-api/internal/interface/http"
	"github.com/pinshelf/pinshelf-api/internal/interface/middleware"
	"github.com/pinshelf/pinshelf-api/pkg/helpers"
)

// SearchModule proxies to the external similarity service; limited tightly
// because each request costs a downstream call.
type SearchModule struct {
	Handler *handlers.SearchHandler
	JWT     *helpers.JWTManager
}

func NewSearchModule(h *handlers.SearchHandler, jwt *helpers.JWTManager) *SearchModule {
	return &SearchModule{Handler: h, JWT: jwt}
}

func (m *SearchModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	search := rg.Group("/search")
	search.Use(
		middleware.AuthenticateUser(rdb, m.JWT),
		middleware.RateLimit(rdb, 20, time.Minute, middleware.KeyByUserID(), nil),
	)
	search.POST("/get", m.Handler.Get)
}
