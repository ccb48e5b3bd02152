package router

import (
	"gradinvite/core/middleware"
	"gradinvite/modules/rsvp/controller"

	"github.com/labstack/echo/v4"
)

type RSVPRouter struct {
	controller *controller.RSVPController
}

func NewRSVPRouter(controller *controller.RSVPController) *RSVPRouter {
	return &RSVPRouter{
		controller: controller,
	}
}

func (r *RSVPRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	public := g.Group("/public")
	public.POST("/rsvp", r.controller.Upsert)

	private := g.Group("/private", mw.Session())
	private.GET("/events/:id/rsvps", r.controller.ListByEvent)
	private.GET("/events/:id/rsvps/stats", r.controller.Stats)
}
