package controller

import (
	"gradinvite/core/controller"
	"gradinvite/core/errors"
	"gradinvite/core/params"
	"gradinvite/modules/rsvp/dto"
	"gradinvite/modules/rsvp/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type RSVPController struct {
	service *service.RSVPService
	controller.BaseController
}

func NewRSVPController(service *service.RSVPService) *RSVPController {
	return &RSVPController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// Upsert is the public RSVP submission endpoint.
func (c *RSVPController) Upsert(ctx echo.Context) error {
	req := new(dto.UpsertRSVPRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	rsvp, appErr := c.service.Upsert(ctx.Request().Context(), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, rsvp, "RSVP saved successfully")
}

func (c *RSVPController) ListByEvent(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	queryParams := params.NewQueryParams(ctx)
	result, appErr := c.service.ListByEvent(ctx.Request().Context(), eventID, *queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "RSVPs retrieved successfully")
}

func (c *RSVPController) Stats(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	stats, appErr := c.service.Stats(ctx.Request().Context(), eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, stats, "RSVP stats retrieved successfully")
}
