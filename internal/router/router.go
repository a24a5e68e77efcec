package router

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"trtlmarket/internal/auth"
	"trtlmarket/internal/config"
	"trtlmarket/internal/handler"
	"trtlmarket/internal/logging"
	"trtlmarket/internal/metrics"
	"trtlmarket/internal/validation"
)

// Handlers groups the route handlers.
type Handlers struct {
	Auth     *handler.AuthHandler
	Items    *handler.ItemHandler
	Activity *handler.ActivityHandler
	Account  *handler.AccountHandler
	Admin    *handler.AdminHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log logrus.FieldLogger,
	sessions *auth.SessionManager,
	h Handlers,
) {
	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(metrics.Middleware())

	e.Validator = validation.New()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(log)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/items")
	})

	// Public forms
	limiter := authRateLimiter(cfg.AuthRateLimit)
	e.GET("/login", h.Auth.LoginForm)
	e.POST("/login", h.Auth.Login, limiter)
	e.GET("/signup", h.Auth.SignupForm)
	e.POST("/signup", h.Auth.Signup, limiter)
	e.GET("/logout", h.Auth.Logout)

	// Pages (require a session, otherwise redirect to /login)
	session := auth.RequireSession(sessions, auth.RedirectToLogin)
	e.GET("/items", h.Items.List, session)
	e.GET("/items/new", h.Items.NewForm, session)
	e.POST("/items/new", h.Items.Create, session)
	e.GET("/activity", h.Activity.List, session)
	e.POST("/account/address", h.Account.SetAddress, session)

	admin := e.Group("/admin", session, auth.RequireModerator)
	admin.GET("/items", h.Admin.List)
	admin.POST("/items/:id/review", h.Admin.Review)
	admin.POST("/items/:id/delete", h.Admin.Delete)

	// JSON API (require a session, otherwise 401)
	api := e.Group("/api", auth.RequireSession(sessions, auth.RespondUnauthorized))
	api.GET("/items", h.Items.APIList)
	api.GET("/activity", h.Activity.APIList)
}

// authRateLimiter limits login and signup attempts per client IP. perSecond <= 0 disables it.
func authRateLimiter(perSecond float64) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many attempts, slow down")
		},
	})
}
