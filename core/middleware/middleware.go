package middleware

import (
	"net/http"

	"gradinvite/core/controller"
	"gradinvite/core/errors"
	"gradinvite/core/session"

	"github.com/labstack/echo/v4"
)

const sessionContextKey = "admin_session_data"

type Middleware struct {
	authority *session.Authority
	cookie    string
}

func New(authority *session.Authority, cookieName string) *Middleware {
	return &Middleware{
		authority: authority,
		cookie:    cookieName,
	}
}

// Session guards admin routes. Missing, malformed, expired and forged
// cookies all produce the same unauthorized response.
func (m *Middleware) Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(m.cookie)
			if err != nil || cookie.Value == "" {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "unauthorized")
			}

			data, ok := m.authority.Verify(cookie.Value)
			if !ok {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "unauthorized")
			}

			c.Set(sessionContextKey, data)
			return next(c)
		}
	}
}

// FromContext returns the session stashed by the Session middleware.
func FromContext(c echo.Context) (*session.Data, bool) {
	data, ok := c.Get(sessionContextKey).(*session.Data)
	if !ok || data == nil {
		return nil, false
	}
	return data, true
}
