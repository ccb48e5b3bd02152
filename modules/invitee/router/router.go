package router

import (
	"gradinvite/core/middleware"
	"gradinvite/modules/invitee/controller"

	"github.com/labstack/echo/v4"
)

type InviteeRouter struct {
	controller *controller.InviteeController
}

func NewInviteeRouter(controller *controller.InviteeController) *InviteeRouter {
	return &InviteeRouter{
		controller: controller,
	}
}

func (r *InviteeRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	public := g.Group("/public")
	public.GET("/invitees/search", r.controller.Search)
	public.GET("/invite/:token", r.controller.InviteDetails)

	private := g.Group("/private", mw.Session())
	private.POST("/invitees", r.controller.Create)
	private.DELETE("/invitees/:id", r.controller.Delete)
	private.GET("/events/:id/invitees", r.controller.ListByEvent)
	private.POST("/invitees/send-bulk", r.controller.SendBulk)
}
