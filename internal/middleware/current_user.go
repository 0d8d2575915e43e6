package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"notely/internal/auth"
	"notely/internal/errors"
	"notely/internal/service"
)

// CurrentUserKey is the echo context key holding the resolved *model.User.
const CurrentUserKey = "currentUser"

// LoadUser verifies the bearer token and resolves its subject to a stored
// user, placing it in the request context. Requests whose subject no longer
// exists are rejected even when the token itself is valid.
func LoadUser(jwtService *auth.JWTService, authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == "" || tokenString == header {
				return unauthorized()
			}

			claims, err := jwtService.Verify(tokenString)
			if err != nil {
				return unauthorized()
			}

			user, err := authService.CurrentUser(c.Request().Context(), claims.Subject)
			if err != nil {
				return unauthorized()
			}

			c.Set(CurrentUserKey, user)
			return next(c)
		}
	}
}

func unauthorized() error {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: errors.ErrInvalidToken.Error(),
		Code:  "INVALID_TOKEN",
	})
}
