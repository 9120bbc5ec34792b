package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pinshelf/pinshelf-api/internal/container"
	handlers "github.com/pinshelf/pinshelf-api/internal/interface/http"
	"github.com/pinshelf/pinshelf-api/internal/interface/middleware"
	"github.com/pinshelf/pinshelf-api/pkg/helpers"
)

// ImageModule: uploads go to blob storage, so the per-user limit is tight.
type ImageModule struct {
	Handler *handlers.ImageHandler
	JWT     *helpers.JWTManager
}

func NewImageModule(h *handlers.ImageHandler, jwt *helpers.JWTManager) *ImageModule {
	return &ImageModule{Handler: h, JWT: jwt}
}

func (m *ImageModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	img := rg.Group("/image")
	img.Use(
		middleware.AuthenticateUser(rdb, m.JWT),
		middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByUserID(), nil),
	)
	img.POST("/upload", m.Handler.Upload)
	img.POST("/delete", m.Handler.Delete)
	img.GET("/:filename", m.Handler.Get)
}
