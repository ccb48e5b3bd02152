package admin

import (
	"gradinvite/core/database"
	"gradinvite/core/middleware"
	"gradinvite/core/session"
	"gradinvite/modules/admin/controller"
	"gradinvite/modules/admin/repository"
	"gradinvite/modules/admin/router"
	"gradinvite/modules/admin/service"

	"github.com/labstack/echo/v4"
)

// Init wires the admin module.
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, authority *session.Authority) *service.AdminService {
	repo := repository.NewAdminRepository(db)
	svc := service.NewAdminService(repo, authority)
	ctrl := controller.NewAdminController(svc)
	r := router.NewAdminRouter(ctrl)

	r.Register(g, mw)

	return svc
}
