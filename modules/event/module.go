package event

import (
	"gradinvite/core/database"
	"gradinvite/core/middleware"
	"gradinvite/core/storage"
	"gradinvite/modules/event/controller"
	"gradinvite/modules/event/repository"
	"gradinvite/modules/event/router"
	"gradinvite/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Init wires the event module and returns the service for use by other modules
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, store storage.ObjectStorage) *service.EventService {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo, store)
	ctrl := controller.NewEventController(svc)
	r := router.NewEventRouter(ctrl)

	r.Register(g, mw)

	return svc
}
