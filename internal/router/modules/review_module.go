package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stayhub/stayhub/internal/container"
	handlers "github.com/stayhub/stayhub/internal/interface/http"
	"github.com/stayhub/stayhub/internal/interface/middleware"
	"github.com/stayhub/stayhub/pkg/helpers"
)

// ReviewModule wires review endpoints.
// Public: GET /api/reviews, GET /api/reviews/:id
// Protected: POST /api/reviews, PUT/DELETE /api/reviews/:id
type ReviewModule struct {
	Handler *handlers.ReviewHandler
	JWT     *helpers.JWTManager
}

func NewReviewModule(h *handlers.ReviewHandler, jwt *helpers.JWTManager) *ReviewModule {
	return &ReviewModule{Handler: h, JWT: jwt}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/reviews", readLimiter, m.Handler.List)
	rg.GET("/reviews/:id", readLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/reviews", m.Handler.Create)
		auth.PUT("/reviews/:id", m.Handler.Update)
		auth.DELETE("/reviews/:id", m.Handler.Delete)
	}
}
