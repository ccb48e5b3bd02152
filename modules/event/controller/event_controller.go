package controller

import (
	"gradinvite/core/controller"
	"gradinvite/core/errors"
	"gradinvite/modules/event/dto"
	"gradinvite/modules/event/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type EventController struct {
	service *service.EventService
	controller.BaseController
}

func NewEventController(service *service.EventService) *EventController {
	return &EventController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

func (c *EventController) Create(ctx echo.Context) error {
	req := new(dto.CreateEventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	event, appErr := c.service.Create(ctx.Request().Context(), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, event, "Event created successfully")
}

func (c *EventController) List(ctx echo.Context) error {
	events, appErr := c.service.List(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, events, "Events retrieved successfully")
}

func (c *EventController) GetByID(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	event, appErr := c.service.GetByID(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, event, "Event retrieved successfully")
}

// GetFirst serves the landing event for the public invitation site.
func (c *EventController) GetFirst(ctx echo.Context) error {
	event, appErr := c.service.GetFirst(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, event, "Event retrieved successfully")
}

func (c *EventController) Update(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	req := new(dto.UpdateEventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	event, appErr := c.service.Update(ctx.Request().Context(), id, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, event, "Event updated successfully")
}

func (c *EventController) Delete(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	if appErr := c.service.Delete(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Event deleted successfully")
}

func (c *EventController) UploadLogo(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "No file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to read file")
	}
	defer file.Close()

	event, appErr := c.service.UploadLogo(
		ctx.Request().Context(),
		id,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, event, "Logo uploaded successfully")
}
