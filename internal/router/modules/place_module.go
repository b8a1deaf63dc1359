package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stayhub/stayhub/internal/container"
	handlers "github.com/stayhub/stayhub/internal/interface/http"
	"github.com/stayhub/stayhub/internal/interface/middleware"
	"github.com/stayhub/stayhub/pkg/helpers"
)

// PlaceModule wires listing endpoints.
// Public: GET /api/places, GET /api/places/:id, GET /api/places/:id/reviews
// Protected: POST/PUT/DELETE on places and their amenity links
type PlaceModule struct {
	Handler *handlers.PlaceHandler
	JWT     *helpers.JWTManager
}

func NewPlaceModule(h *handlers.PlaceHandler, jwt *helpers.JWTManager) *PlaceModule {
	return &PlaceModule{Handler: h, JWT: jwt}
}

func (m *PlaceModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/places", readLimiter, m.Handler.List)
	rg.GET("/places/:id", readLimiter, m.Handler.Get)
	rg.GET("/places/:id/reviews", readLimiter, m.Handler.ListReviews)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/places", m.Handler.Create)
		auth.PUT("/places/:id", m.Handler.Update)
		auth.DELETE("/places/:id", m.Handler.Delete)
		auth.POST("/places/:id/amenities/:amenity_id", m.Handler.AddAmenity)
		auth.DELETE("/places/:id/amenities/:amenity_id", m.Handler.RemoveAmenity)
	}
}
