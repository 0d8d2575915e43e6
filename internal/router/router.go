package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"notely/internal/auth"
	"notely/internal/config"
	"notely/internal/handler"
	"notely/internal/middleware"
	"notely/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	noteHandler *handler.NoteHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes: echo-jwt rejects missing or unverifiable tokens, then
	// LoadUser resolves the token subject to a stored user.
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			SigningKey:  []byte(cfg.JWTSecret),
			TokenLookup: "header:" + echo.HeaderAuthorization,
		}),
		middleware.LoadUser(jwtService, authService),
	)

	secured.GET("/auth/me", authHandler.Me)

	// Note routes
	secured.GET("/notes", noteHandler.List)
	secured.POST("/notes", noteHandler.Create)
	secured.GET("/notes/:id", noteHandler.Get)
	secured.PUT("/notes/:id", noteHandler.Update)
	secured.DELETE("/notes/:id", noteHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
