package rsvp

import (
	"gradinvite/core/cache"
	"gradinvite/core/database"
	"gradinvite/core/middleware"
	inviteeRepo "gradinvite/modules/invitee/repository"
	"gradinvite/modules/rsvp/controller"
	"gradinvite/modules/rsvp/repository"
	"gradinvite/modules/rsvp/router"
	"gradinvite/modules/rsvp/service"

	"github.com/labstack/echo/v4"
)

// Init wires the rsvp module.
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, c *cache.Cache) *service.RSVPService {
	repo := repository.NewRSVPRepository(db)
	inviteeRepository := inviteeRepo.NewInviteeRepository(db)
	svc := service.NewRSVPService(repo, inviteeRepository, c)
	ctrl := controller.NewRSVPController(svc)
	r := router.NewRSVPRouter(ctrl)

	r.Register(g, mw)

	return svc
}
