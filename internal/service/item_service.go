package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	apperrors "trtlmarket/internal/errors"
	"trtlmarket/internal/licenses"
	"trtlmarket/internal/metrics"
	"trtlmarket/internal/model"
	"trtlmarket/internal/payment"
	"trtlmarket/internal/repository"
	"trtlmarket/internal/storage"
)

const (
	// ZipMIME is the only accepted upload type.
	ZipMIME = "application/zip"
	// DateLayout renders dates as DD-MM-YYYY.
	DateLayout = "02-01-2006"
)

// ItemView is an item prepared for display.
type ItemView struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	Price             string `json:"price"`
	License           string `json:"license"`
	IntegratedAddress string `json:"integrated_address"`
	Views             uint   `json:"views"`
	Purchases         uint   `json:"purchases"`
	Created           string `json:"created"`
	Reviewed          bool   `json:"reviewed"`
}

// NewItemView formats price with two decimals and the creation date as DD-MM-YYYY.
func NewItemView(item model.Item) ItemView {
	return ItemView{
		ID:                item.ID,
		Name:              item.Name,
		Description:       item.Description,
		Category:          item.Category,
		Price:             item.Price.StringFixed(2),
		License:           item.License,
		IntegratedAddress: item.IntegratedAddress,
		Views:             item.Views,
		Purchases:         item.Purchases,
		Created:           item.Created.Format(DateLayout),
		Reviewed:          item.Reviewed,
	}
}

// Upload is the archive attached to a new listing.
type Upload struct {
	Filename    string
	Size        int64
	ContentType string // as declared by the client
	Content     io.ReadSeeker
}

// PublishInput carries the already validated new-item fields.
type PublishInput struct {
	Name        string
	Description string
	Category    string
	Price       string
	Overview    string
	License     string
	File        Upload
}

// ItemService lists and publishes items.
type ItemService interface {
	ListItems(ctx context.Context, userID uint) ([]ItemView, error)
	Licenses() []licenses.License
	Publish(ctx context.Context, user *model.User, in PublishInput) (*model.Item, error)
}

// ItemServiceConfig holds the collaborators of ItemService.
type ItemServiceConfig struct {
	Items      repository.ItemRepository
	Activities repository.ActivityRepository
	Integrator payment.Integrator
	Store      storage.Store
	Catalog    *licenses.Catalog
	UploadPath string
	Log        logrus.FieldLogger
}

type itemService struct {
	items      repository.ItemRepository
	activities repository.ActivityRepository
	integrator payment.Integrator
	store      storage.Store
	catalog    *licenses.Catalog
	uploadPath string
	log        logrus.FieldLogger
	now        func() time.Time
	paymentID  func() (string, error)
}

// NewItemService creates a new item service.
func NewItemService(cfg ItemServiceConfig) ItemService {
	return &itemService{
		items:      cfg.Items,
		activities: cfg.Activities,
		integrator: cfg.Integrator,
		store:      cfg.Store,
		catalog:    cfg.Catalog,
		uploadPath: cfg.UploadPath,
		log:        cfg.Log,
		now:        time.Now,
		paymentID:  payment.NewPaymentID,
	}
}

// ListItems returns the live items of a user.
func (s *itemService) ListItems(ctx context.Context, userID uint) ([]ItemView, error) {
	items, err := s.items.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, NewItemView(item))
	}
	return views, nil
}

// Licenses returns the license options for the new-item form.
func (s *itemService) Licenses() []licenses.License {
	return s.catalog.All()
}

// Publish validates the upload, derives an integrated address, stores the
// archive and records the item with its publish activity in one transaction.
func (s *itemService) Publish(ctx context.Context, user *model.User, in PublishInput) (*model.Item, error) {
	price, err := decimal.NewFromString(in.Price)
	if err != nil || price.IsNegative() {
		return nil, apperrors.ErrInvalidPrice
	}

	if !s.catalog.Has(in.License) {
		return nil, apperrors.ErrUnknownLicense
	}

	if err := checkZip(in.File); err != nil {
		return nil, err
	}

	if user.Address == "" {
		return nil, apperrors.ErrMissingAddress
	}

	paymentID, err := s.paymentID()
	if err != nil {
		return nil, err
	}

	integrated, err := s.integrator.IntegrateAddress(ctx, user.Address, paymentID)
	if err != nil {
		return nil, fmt.Errorf("integrate address: %w", err)
	}

	loc := storage.Destination(s.uploadPath, user.ID, in.File.Filename, s.now())
	if err := s.store.Save(ctx, loc, in.File.Content, in.File.Size, ZipMIME); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	item := &model.Item{
		UserID:            user.ID,
		Name:              in.Name,
		Description:       in.Description,
		Category:          in.Category,
		Price:             price.Round(2),
		Overview:          in.Overview,
		License:           in.License,
		PaymentID:         paymentID,
		IntegratedAddress: integrated,
		Filename:          loc.Name,
		Filesize:          in.File.Size,
	}

	err = s.items.WithTransaction(ctx, func(ctx context.Context, items repository.ItemRepository, activities repository.ActivityRepository) error {
		if err := items.Create(ctx, item); err != nil {
			return err
		}
		return activities.Create(ctx, &model.Activity{
			UserID:   user.ID,
			ItemID:   &item.ID,
			Method:   model.ActivityPublish,
			Status:   model.ActivityStatusCompleted,
			Progress: 100,
			Notify:   true,
		})
	})
	if err != nil {
		s.publishFailed(ctx, user, loc, err)
		return nil, fmt.Errorf("create item: %w", err)
	}

	metrics.RecordPublish(string(model.ActivityStatusCompleted))
	s.log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"item_id":  item.ID,
		"filename": item.Filename,
	}).Info("item published")
	return item, nil
}

// publishFailed removes the orphaned archive and records a failed publish.
// Both steps are best effort.
func (s *itemService) publishFailed(ctx context.Context, user *model.User, loc storage.Location, cause error) {
	log := s.log.WithFields(logrus.Fields{"user_id": user.ID, "path": loc.Path()})
	log.WithError(cause).Error("publish transaction failed")

	if err := s.store.Remove(ctx, loc); err != nil {
		log.WithError(err).Warn("remove orphaned upload")
	}

	if err := s.activities.Create(ctx, &model.Activity{
		UserID:  user.ID,
		Method:  model.ActivityPublish,
		Status:  model.ActivityStatusFailed,
		Message: "Publishing failed.",
		Notify:  true,
	}); err != nil {
		log.WithError(err).Warn("record failed publish")
	}

	metrics.RecordPublish(string(model.ActivityStatusFailed))
}

// checkZip requires a declared zip type and zip content. The reader is rewound.
func checkZip(f Upload) error {
	if f.ContentType != ZipMIME || f.Content == nil {
		return apperrors.ErrInvalidFileType
	}

	mt, err := mimetype.DetectReader(f.Content)
	if err != nil {
		return fmt.Errorf("detect file type: %w", err)
	}
	if _, err := f.Content.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind upload: %w", err)
	}

	for ; mt != nil; mt = mt.Parent() {
		if mt.Is(ZipMIME) {
			return nil
		}
	}
	return apperrors.ErrInvalidFileType
}
