package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"trtlmarket/internal/auth"
	"trtlmarket/internal/model"
	"trtlmarket/internal/service"
	"trtlmarket/internal/view"
)

// ActivityHandler serves the activity feed.
type ActivityHandler struct {
	activityService service.ActivityService
	flash           auth.Flasher
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(activityService service.ActivityService, flash auth.Flasher) *ActivityHandler {
	return &ActivityHandler{activityService: activityService, flash: flash}
}

// ActivityResponse is the JSON activity feed.
type ActivityResponse struct {
	Activity []model.Activity `json:"activity"`
}

// List renders the latest activity of the current user.
func (h *ActivityHandler) List(c echo.Context) error {
	entries, err := h.activityService.Recent(c.Request().Context(), auth.CurrentUser(c).ID)
	if err != nil {
		return err
	}
	return render(c, h.flash, http.StatusOK, view.PageActivity, "Activity", entries)
}

// APIList godoc
// @Summary List my activity
// @Description The 50 most recent activity entries of the authenticated user, newest first.
// @Tags activity
// @Produce json
// @Security SessionCookie
// @Success 200 {object} ActivityResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /activity [get]
func (h *ActivityHandler) APIList(c echo.Context) error {
	entries, err := h.activityService.Recent(c.Request().Context(), auth.CurrentUser(c).ID)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, ActivityResponse{Activity: entries})
}
