package controller

import (
	"net/http"

	"gradinvite/core/config"
	"gradinvite/core/constants"
	"gradinvite/core/controller"
	"gradinvite/core/errors"
	"gradinvite/core/middleware"
	"gradinvite/modules/admin/dto"
	"gradinvite/modules/admin/service"

	"github.com/labstack/echo/v4"
)

type AdminController struct {
	service *service.AdminService
	controller.BaseController
}

func NewAdminController(service *service.AdminService) *AdminController {
	return &AdminController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// Login authenticates an admin and delivers the session token as an
// http-only cookie; the token itself is the full session state.
func (c *AdminController) Login(ctx echo.Context) error {
	req := new(dto.LoginRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	token, data, appErr := c.service.Login(ctx.Request().Context(), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	secure := false
	if cfg, ok := config.GetSafe(); ok {
		secure = cfg.App.Env == "production"
	}

	ctx.SetCookie(&http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   c.service.SessionTTL(),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})

	return c.SuccessResponse(ctx, dto.SessionResponse{AdminID: data.AdminID, Email: data.Email}, "Login successful")
}

// Logout clears the session cookie. Tokens stay valid until expiry; there
// is no server-side revocation.
func (c *AdminController) Logout(ctx echo.Context) error {
	ctx.SetCookie(&http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.SuccessResponse(ctx, nil, "Logged out")
}

func (c *AdminController) Me(ctx echo.Context) error {
	data, ok := middleware.FromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "unauthorized")
	}
	return c.SuccessResponse(ctx, dto.SessionResponse{AdminID: data.AdminID, Email: data.Email}, "Session retrieved")
}
