package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"trtlmarket/internal/auth"
	apperrors "trtlmarket/internal/errors"
	"trtlmarket/internal/view"
)

const (
	msgGenericError = "An error occurred, please try again."
	itemsPath       = "/items"
	loginPath       = "/login"
	signupPath      = "/signup"
)

// render consumes pending flash notices and renders a full page.
func render(c echo.Context, flash auth.Flasher, status int, name, title string, data interface{}) error {
	flashes := flash.Pop(c)
	return c.Render(status, name, view.Page{
		Title:   title,
		User:    auth.CurrentUser(c),
		Success: flashes.Success,
		Errors:  flashes.Error,
		Data:    data,
	})
}

// redirectWith queues a notice and redirects with 303 See Other.
func redirectWith(c echo.Context, flash auth.Flasher, kind auth.FlashKind, message, to string) error {
	flash.Add(c, kind, message)
	return c.Redirect(http.StatusSeeOther, to)
}

// apiError converts a domain error into a JSON HTTP error.
func apiError(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
