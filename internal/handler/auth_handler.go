package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"trtlmarket/internal/auth"
	apperrors "trtlmarket/internal/errors"
	"trtlmarket/internal/model"
	"trtlmarket/internal/service"
	"trtlmarket/internal/validation"
	"trtlmarket/internal/view"
)

const (
	msgWrongLogin    = "Wrong login details."
	msgUsernameTaken = "This username is already taken."
	msgLoggedOut     = "You have been logged out."
)

// AuthHandler serves the login, signup and logout forms.
type AuthHandler struct {
	authService service.AuthService
	sessions    *auth.SessionManager
	flash       auth.Flasher
	secure      bool
	log         logrus.FieldLogger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessions *auth.SessionManager, flash auth.Flasher, secureCookies bool, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		flash:       flash,
		secure:      secureCookies,
		log:         log,
	}
}

// SignupForm is the signup form. Fields are validated in declaration order.
type SignupForm struct {
	Username string `form:"username" validate:"required" msg:"Please enter a valid username."`
	Password string `form:"password" validate:"required,min=8,max=32" msg:"Please enter a valid password."`
	Confirm  string `form:"confirm" validate:"required,min=8,max=32,eqfield=Password" msg:"Please confirm your new password."`
	Verify   string `form:"verify" validate:"required" msg:"Please accept the terms."`
	Address  string `form:"address" validate:"omitempty,trtladdr" msg:"Please enter a valid TRTL address."`
	Recovery string `form:"recovery"`
}

// sanitized returns the copy that is validated: credentials trimmed and HTML-escaped.
func (f SignupForm) sanitized() SignupForm {
	f.Username = validation.Clean(f.Username)
	f.Password = validation.Clean(f.Password)
	f.Confirm = validation.Clean(f.Confirm)
	f.Address = strings.TrimSpace(f.Address)
	f.Recovery = strings.TrimSpace(f.Recovery)
	return f
}

// LoginForm is the login form.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return render(c, h.flash, http.StatusOK, view.PageLogin, "Log in", nil)
}

// SignupForm renders the signup page.
func (h *AuthHandler) SignupForm(c echo.Context) error {
	return render(c, h.flash, http.StatusOK, view.PageSignup, "Sign up", nil)
}

// Signup creates an account and starts a verified session.
func (h *AuthHandler) Signup(c echo.Context) error {
	var form SignupForm
	if err := c.Bind(&form); err != nil {
		return redirectWith(c, h.flash, auth.FlashError, msgGenericError, signupPath)
	}

	checked := form.sanitized()
	if err := c.Validate(&checked); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return redirectWith(c, h.flash, auth.FlashError, verr.Message, signupPath)
		}
		return err
	}

	user, err := h.authService.Signup(c.Request().Context(), service.SignupInput{
		Username: checked.Username,
		Password: form.Password,
		Recovery: checked.Recovery,
		Address:  checked.Address,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrUsernameTaken) {
			return redirectWith(c, h.flash, auth.FlashError, msgUsernameTaken, signupPath)
		}
		h.log.WithError(err).Error("signup failed")
		return redirectWith(c, h.flash, auth.FlashError, msgGenericError, signupPath)
	}

	return h.startSession(c, user, true)
}

// Login verifies credentials and starts a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var form LoginForm
	if err := c.Bind(&form); err != nil {
		return redirectWith(c, h.flash, auth.FlashError, msgWrongLogin, loginPath)
	}
	username := validation.Clean(form.Username)
	if username == "" || form.Password == "" {
		return redirectWith(c, h.flash, auth.FlashError, msgWrongLogin, loginPath)
	}

	user, err := h.authService.Login(c.Request().Context(), username, form.Password, c.RealIP())
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			return redirectWith(c, h.flash, auth.FlashError, msgWrongLogin, loginPath)
		}
		h.log.WithError(err).Error("login failed")
		return redirectWith(c, h.flash, auth.FlashError, msgGenericError, loginPath)
	}

	return h.startSession(c, user, false)
}

func (h *AuthHandler) startSession(c echo.Context, user *model.User, verified bool) error {
	token, _, err := h.sessions.Issue(user, verified)
	if err != nil {
		h.log.WithError(err).WithField("user_id", user.ID).Error("issue session")
		return redirectWith(c, h.flash, auth.FlashError, msgGenericError, loginPath)
	}
	h.sessions.SetCookie(c, token, h.secure)
	return c.Redirect(http.StatusSeeOther, itemsPath)
}

// Logout revokes the current session and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(auth.SessionCookie); err == nil && cookie.Value != "" {
		if claims, err := h.sessions.Parse(cookie.Value); err == nil {
			if err := h.sessions.Revoke(c.Request().Context(), claims); err != nil {
				h.log.WithError(err).Warn("revoke session")
			}
		}
	}
	h.sessions.ClearCookie(c)
	return redirectWith(c, h.flash, auth.FlashSuccess, msgLoggedOut, loginPath)
}
