package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stayhub/stayhub/internal/container"
	handlers "github.com/stayhub/stayhub/internal/interface/http"
	"github.com/stayhub/stayhub/internal/interface/middleware"
	"github.com/stayhub/stayhub/pkg/helpers"
)

// AmenityModule wires the amenity catalog.
// Public: GET /api/amenities, GET /api/amenities/:id
// Admin only: POST /api/amenities, PUT /api/amenities/:id
type AmenityModule struct {
	Handler *handlers.AmenityHandler
	JWT     *helpers.JWTManager
}

func NewAmenityModule(h *handlers.AmenityHandler, jwt *helpers.JWTManager) *AmenityModule {
	return &AmenityModule{Handler: h, JWT: jwt}
}

func (m *AmenityModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/amenities", readLimiter, m.Handler.List)
	rg.GET("/amenities/:id", readLimiter, m.Handler.Get)

	admin := rg.Group("/")
	admin.Use(middleware.Auth(container.GetRedis(), m.JWT), middleware.RequireAdmin())
	{
		admin.POST("/amenities", m.Handler.Create)
		admin.PUT("/amenities/:id", m.Handler.Update)
	}
}
