package router

import (
	"gradinvite/core/middleware"
	"gradinvite/modules/event/controller"

	"github.com/labstack/echo/v4"
)

type EventRouter struct {
	controller *controller.EventController
}

func NewEventRouter(controller *controller.EventController) *EventRouter {
	return &EventRouter{
		controller: controller,
	}
}

func (r *EventRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	public := g.Group("/public/events")
	public.GET("/first", r.controller.GetFirst)
	public.GET("/:id", r.controller.GetByID)

	private := g.Group("/private/events", mw.Session())
	private.POST("", r.controller.Create)
	private.GET("", r.controller.List)
	private.GET("/:id", r.controller.GetByID)
	private.PUT("/:id", r.controller.Update)
	private.DELETE("/:id", r.controller.Delete)
	private.POST("/:id/logo", r.controller.UploadLogo)
}
