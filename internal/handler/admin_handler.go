package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"trtlmarket/internal/auth"
	apperrors "trtlmarket/internal/errors"
	"trtlmarket/internal/model"
	"trtlmarket/internal/service"
	"trtlmarket/internal/view"
)

const adminItemsPath = "/admin/items"

// AdminHandler serves the moderation queue.
type AdminHandler struct {
	moderation service.ModerationService
	flash      auth.Flasher
	log        logrus.FieldLogger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(moderation service.ModerationService, flash auth.Flasher, log logrus.FieldLogger) *AdminHandler {
	return &AdminHandler{moderation: moderation, flash: flash, log: log}
}

// List renders the items waiting for review.
func (h *AdminHandler) List(c echo.Context) error {
	items, err := h.moderation.PendingReview(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, h.flash, http.StatusOK, view.PageAdminItems, "Review queue", items)
}

// Review approves an item.
func (h *AdminHandler) Review(c echo.Context) error {
	return h.moderate(c, "Item approved.", h.moderation.Review)
}

// Delete removes an item from the marketplace.
func (h *AdminHandler) Delete(c echo.Context) error {
	return h.moderate(c, "Item removed.", h.moderation.Remove)
}

func (h *AdminHandler) moderate(c echo.Context, done string, action func(ctx context.Context, moderator *model.User, itemID uint) error) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return redirectWith(c, h.flash, auth.FlashError, apperrors.ErrItemNotFound.Error(), adminItemsPath)
	}

	if err := action(c.Request().Context(), auth.CurrentUser(c), uint(id)); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrItemNotFound):
			return redirectWith(c, h.flash, auth.FlashError, "Item not found.", adminItemsPath)
		case errors.Is(err, apperrors.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{Error: err.Error(), Code: "FORBIDDEN"})
		}
		h.log.WithError(err).WithField("item_id", id).Error("moderate item")
		return redirectWith(c, h.flash, auth.FlashError, msgGenericError, adminItemsPath)
	}
	return redirectWith(c, h.flash, auth.FlashSuccess, done, adminItemsPath)
}
