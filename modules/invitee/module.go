package invitee

import (
	"gradinvite/core/cache"
	"gradinvite/core/database"
	"gradinvite/core/middleware"
	eventRepo "gradinvite/modules/event/repository"
	"gradinvite/modules/invitee/controller"
	"gradinvite/modules/invitee/repository"
	"gradinvite/modules/invitee/router"
	"gradinvite/modules/invitee/service"
	"gradinvite/modules/mailer"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init wires the invitee module and returns the service so the server can
// register the bulk-send task handler.
func Init(
	g *echo.Group,
	db database.Database,
	mw *middleware.Middleware,
	mailService *mailer.Service,
	c *cache.Cache,
	queue *asynq.Client,
	baseURL string,
) *service.InviteeService {
	repo := repository.NewInviteeRepository(db)
	eventRepository := eventRepo.NewEventRepository(db)
	svc := service.NewInviteeService(repo, eventRepository, mailService, c, queue, baseURL)
	ctrl := controller.NewInviteeController(svc)
	r := router.NewInviteeRouter(ctrl)

	r.Register(g, mw)

	return svc
}
