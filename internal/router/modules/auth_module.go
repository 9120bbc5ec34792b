package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pinshelf/pinshelf-api/internal/container"
	handlers "github.com/pinshelf/pinshelf-api/internal/interface/http"
	"github.com/pinshelf/pinshelf-api/internal/interface/middleware"
)

// AuthModule wires the credential endpoints.
// Public: register, login, login/verify, reset, reset/verify, refresh.
// All OTP-adjacent routes carry tight per-IP limits.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	registerLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIP(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	verifyLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil)

	auth := rg.Group("/auth")
	auth.POST("/register", registerLimiter, m.Handler.Register)
	auth.POST("/login", loginLimiter, m.Handler.Login)
	auth.POST("/login/verify", verifyLimiter, m.Handler.LoginVerify)
	auth.POST("/reset", loginLimiter, m.Handler.Reset)
	auth.POST("/reset/verify", verifyLimiter, m.Handler.ResetVerify)
	auth.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	auth.POST("/logout", middleware.AuthenticateUser(rdb, container.GetJWT()), m.Handler.Logout)
}
