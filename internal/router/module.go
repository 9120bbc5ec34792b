package router

import "github.com/gin-gonic/gin"

// Module is one feature's route surface. Each module hangs its routes and
// per-route middleware off the shared /api/v1 group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
