package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"trtlmarket/internal/auth"
	"trtlmarket/internal/service"
	"trtlmarket/internal/validation"
	"trtlmarket/internal/view"
)

const (
	msgItemSubmitted = "Item has been submitted and is under review."
	msgItemFailed    = "An error occurred adding a new item."
)

// ItemHandler serves the item listing and creation routes.
type ItemHandler struct {
	itemService service.ItemService
	flash       auth.Flasher
	maxUpload   int64
	log         logrus.FieldLogger
}

// NewItemHandler creates a new item handler.
func NewItemHandler(itemService service.ItemService, flash auth.Flasher, maxUpload int64, log logrus.FieldLogger) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		flash:       flash,
		maxUpload:   maxUpload,
		log:         log,
	}
}

// ItemForm is the new-item form. Fields are validated in declaration order.
type ItemForm struct {
	Name        string `form:"name" validate:"required" msg:"Please enter a name."`
	Description string `form:"description" validate:"required" msg:"Please enter a description."`
	Category    string `form:"category" validate:"required" msg:"Please choose a category."`
	Price       string `form:"price" validate:"required,numeric" msg:"Please enter a valid price."`
	Overview    string `form:"overview" validate:"required" msg:"Please enter an overview."`
	License     string `form:"license" validate:"required" msg:"Please choose a license."`
}

func (f ItemForm) sanitized() ItemForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = validation.Unescape(f.Description)
	f.Category = strings.TrimSpace(f.Category)
	f.Price = strings.TrimSpace(f.Price)
	f.Overview = validation.Unescape(f.Overview)
	f.License = strings.TrimSpace(f.License)
	return f
}

// ItemsResponse is the JSON item listing.
type ItemsResponse struct {
	Items []service.ItemView `json:"items"`
}

// List renders the current user's live items.
func (h *ItemHandler) List(c echo.Context) error {
	user := auth.CurrentUser(c)
	items, err := h.itemService.ListItems(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return render(c, h.flash, http.StatusOK, view.PageItems, "Items", items)
}

// NewForm renders the new-item form with the license options.
func (h *ItemHandler) NewForm(c echo.Context) error {
	return render(c, h.flash, http.StatusOK, view.PageItemsNew, "New Item", h.itemService.Licenses())
}

// Create publishes a new item. Every outcome redirects to the listing with a notice.
func (h *ItemHandler) Create(c echo.Context) error {
	user := auth.CurrentUser(c)

	if err := h.create(c); err != nil {
		h.log.WithError(err).WithField("user_id", user.ID).Error("add item")

		msg := msgItemFailed
		var verr *validation.Error
		if errors.As(err, &verr) {
			msg = verr.Message
		}
		return redirectWith(c, h.flash, auth.FlashError, msg, itemsPath)
	}

	return redirectWith(c, h.flash, auth.FlashSuccess, msgItemSubmitted, itemsPath)
}

func (h *ItemHandler) create(c echo.Context) error {
	req := c.Request()
	if h.maxUpload > 0 {
		req.Body = http.MaxBytesReader(c.Response(), req.Body, h.maxUpload)
	}

	var form ItemForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	checked := form.sanitized()
	if err := c.Validate(&checked); err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return &validation.Error{Field: "file", Message: "Please choose a file to upload."}
	}
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = h.itemService.Publish(req.Context(), auth.CurrentUser(c), service.PublishInput{
		Name:        checked.Name,
		Description: checked.Description,
		Category:    checked.Category,
		Price:       checked.Price,
		Overview:    checked.Overview,
		License:     checked.License,
		File: service.Upload{
			Filename:    fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Content:     src,
		},
	})
	return err
}

// APIList godoc
// @Summary List my items
// @Description Live items of the authenticated user, price with two decimals and date as DD-MM-YYYY.
// @Tags items
// @Produce json
// @Security SessionCookie
// @Success 200 {object} ItemsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /items [get]
func (h *ItemHandler) APIList(c echo.Context) error {
	user := auth.CurrentUser(c)
	items, err := h.itemService.ListItems(c.Request().Context(), user.ID)
	if err != nil {
		h.log.WithError(err).WithField("user_id", user.ID).Error("list items")
		return apiError(err)
	}
	return c.JSON(http.StatusOK, ItemsResponse{Items: items})
}
