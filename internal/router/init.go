package router

import (
	"github.com/stayhub/stayhub/internal/container"
	handlers "github.com/stayhub/stayhub/internal/interface/http"
	"github.com/stayhub/stayhub/internal/router/modules"
	"github.com/stayhub/stayhub/pkg/helpers"
)

// InitModules builds every handler from the shared container and registers
// the feature modules. Called once during startup.
func InitModules(r *Registry) {
	svc := container.GetFacade()
	log := container.GetLogger()
	cfg := container.GetConfig()
	jwt := container.GetJWT()
	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc, cookies, log), jwt))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc, log), jwt))
	r.Add(modules.NewPlaceModule(handlers.NewPlaceHandler(svc, log), jwt))
	r.Add(modules.NewReviewModule(handlers.NewReviewHandler(svc, log), jwt))
	r.Add(modules.NewAmenityModule(handlers.NewAmenityHandler(svc, log), jwt))
}
