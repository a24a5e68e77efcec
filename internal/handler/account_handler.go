package handler

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"trtlmarket/internal/auth"
	"trtlmarket/internal/service"
	"trtlmarket/internal/validation"
)

// AccountHandler manages the seller's wallet address.
type AccountHandler struct {
	authService service.AuthService
	flash       auth.Flasher
	log         logrus.FieldLogger
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(authService service.AuthService, flash auth.Flasher, log logrus.FieldLogger) *AccountHandler {
	return &AccountHandler{authService: authService, flash: flash, log: log}
}

// AddressForm is the wallet address form.
type AddressForm struct {
	Address string `form:"address" validate:"required,trtladdr" msg:"Please enter a valid TRTL address."`
}

// SetAddress stores the base address used for new listings.
func (h *AccountHandler) SetAddress(c echo.Context) error {
	var form AddressForm
	if err := c.Bind(&form); err != nil {
		return redirectWith(c, h.flash, auth.FlashError, msgGenericError, itemsPath)
	}
	form.Address = strings.TrimSpace(form.Address)

	if err := c.Validate(&form); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return redirectWith(c, h.flash, auth.FlashError, verr.Message, itemsPath)
		}
		return err
	}

	user := auth.CurrentUser(c)
	if err := h.authService.SetAddress(c.Request().Context(), user.ID, form.Address); err != nil {
		h.log.WithError(err).WithField("user_id", user.ID).Error("set address")
		return redirectWith(c, h.flash, auth.FlashError, msgGenericError, itemsPath)
	}
	return redirectWith(c, h.flash, auth.FlashSuccess, "Your wallet address has been saved.", itemsPath)
}
