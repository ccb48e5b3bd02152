package controller

import (
	"gradinvite/core/controller"
	"gradinvite/core/errors"
	"gradinvite/modules/invitee/dto"
	"gradinvite/modules/invitee/service"
	"gradinvite/modules/mailer"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type InviteeController struct {
	service *service.InviteeService
	controller.BaseController
}

func NewInviteeController(service *service.InviteeService) *InviteeController {
	return &InviteeController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

func (c *InviteeController) Create(ctx echo.Context) error {
	req := new(dto.CreateInviteeRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	invitee, appErr := c.service.Create(ctx.Request().Context(), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, invitee, "Invitee created successfully")
}

func (c *InviteeController) ListByEvent(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	invitees, appErr := c.service.ListByEvent(ctx.Request().Context(), eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, invitees, "Invitees retrieved successfully")
}

func (c *InviteeController) Delete(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid invitee id")
	}

	if appErr := c.service.Delete(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Invitee deleted successfully")
}

// Search is the public guest lookup by display name within an event.
func (c *InviteeController) Search(ctx echo.Context) error {
	name := ctx.QueryParam("name")
	eventID, err := uuid.Parse(ctx.QueryParam("event_id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	result, appErr := c.service.Search(ctx.Request().Context(), name, eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Search completed")
}

// InviteDetails serves the personalized invitation behind an access token.
func (c *InviteeController) InviteDetails(ctx echo.Context) error {
	token := ctx.Param("token")

	details, appErr := c.service.InviteDetails(ctx.Request().Context(), token)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, details, "Invitation retrieved successfully")
}

// SendBulk triggers bulk dispatch to all invitees of an event, inline or
// queued. Per-recipient detail is returned only when detail=true.
func (c *InviteeController) SendBulk(ctx echo.Context) error {
	req := new(dto.BulkSendRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if req.EventID == uuid.Nil {
		return c.BadRequest(errors.ErrInvalidInput, "event_id is required")
	}

	kind := mailer.Kind(req.Kind)

	if req.Async {
		queued, appErr := c.service.EnqueueBulk(ctx.Request().Context(), req.EventID, kind)
		if appErr != nil {
			return c.ErrorResponse(ctx, appErr)
		}
		return c.SuccessResponse(ctx, queued, "Bulk send queued")
	}

	result, appErr := c.service.SendBulk(ctx.Request().Context(), req.EventID, kind)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	if !req.Detail {
		result.Results = nil
	}
	return c.SuccessResponse(ctx, result, "Bulk send completed")
}
