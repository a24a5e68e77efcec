package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"trtlmarket/internal/auth"
	apperrors "trtlmarket/internal/errors"
	"trtlmarket/internal/view"
)

// NewHTTPErrorHandler answers API routes with JSON and pages with the error template.
// Server errors are logged; their details never reach the client.
func NewHTTPErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		body := apperrors.ErrorResponse{Error: "internal server error", Code: "INTERNAL_ERROR"}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			switch msg := he.Message.(type) {
			case apperrors.ErrorResponse:
				body = msg
			case string:
				body = apperrors.ErrorResponse{Error: msg, Code: statusCode(code)}
			default:
				body = apperrors.ErrorResponse{Error: http.StatusText(code), Code: statusCode(code)}
			}
		}

		req := c.Request()
		if code >= http.StatusInternalServerError {
			log.WithError(err).WithFields(logrus.Fields{
				"method":     req.Method,
				"uri":        req.RequestURI,
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			}).Error("request failed")
			body.Error = "internal server error"
		}

		if req.Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		if strings.HasPrefix(req.URL.Path, "/api/") || c.Echo().Renderer == nil {
			_ = c.JSON(code, body)
			return
		}

		message := body.Error
		if code >= http.StatusInternalServerError {
			message = "Something went wrong. Please try again later."
		}
		if rerr := c.Render(code, view.PageError, view.Page{
			Title: http.StatusText(code),
			User:  auth.CurrentUser(c),
			Data:  message,
		}); rerr != nil {
			log.WithError(rerr).Error("render error page")
		}
	}
}

func statusCode(code int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))
}
