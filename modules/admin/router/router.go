package router

import (
	"gradinvite/core/middleware"
	"gradinvite/modules/admin/controller"

	"github.com/labstack/echo/v4"
)

type AdminRouter struct {
	controller *controller.AdminController
}

func NewAdminRouter(controller *controller.AdminController) *AdminRouter {
	return &AdminRouter{
		controller: controller,
	}
}

func (r *AdminRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	g.POST("/admin/login", r.controller.Login)

	private := g.Group("/private/admin", mw.Session())
	private.POST("/logout", r.controller.Logout)
	private.GET("/me", r.controller.Me)
}
