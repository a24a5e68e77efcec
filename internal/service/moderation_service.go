package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	apperrors "trtlmarket/internal/errors"
	"trtlmarket/internal/metrics"
	"trtlmarket/internal/model"
	"trtlmarket/internal/repository"
)

// ModerationService reviews and removes listings.
type ModerationService interface {
	PendingReview(ctx context.Context) ([]ItemView, error)
	CountPendingReview(ctx context.Context) (int64, error)
	Review(ctx context.Context, moderator *model.User, itemID uint) error
	Remove(ctx context.Context, moderator *model.User, itemID uint) error
}

type moderationService struct {
	items repository.ItemRepository
	log   logrus.FieldLogger
}

// NewModerationService creates a new moderation service.
func NewModerationService(items repository.ItemRepository, log logrus.FieldLogger) ModerationService {
	return &moderationService{items: items, log: log}
}

// PendingReview lists live items that have not been reviewed.
func (s *moderationService) PendingReview(ctx context.Context) ([]ItemView, error) {
	items, err := s.items.ListPendingReview(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending items: %w", err)
	}
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, NewItemView(item))
	}
	return views, nil
}

// CountPendingReview counts items waiting for moderation and updates the gauge.
func (s *moderationService) CountPendingReview(ctx context.Context) (int64, error) {
	n, err := s.items.CountPendingReview(ctx)
	if err != nil {
		return 0, fmt.Errorf("count pending items: %w", err)
	}
	metrics.SetPendingReview(n)
	return n, nil
}

// Review marks an item reviewed and notifies its owner.
func (s *moderationService) Review(ctx context.Context, moderator *model.User, itemID uint) error {
	return s.moderate(ctx, moderator, itemID, model.ActivityReview, "Your item has been reviewed.",
		func(ctx context.Context, items repository.ItemRepository) error {
			return items.MarkReviewed(ctx, itemID)
		})
}

// Remove soft-deletes an item and notifies its owner.
func (s *moderationService) Remove(ctx context.Context, moderator *model.User, itemID uint) error {
	return s.moderate(ctx, moderator, itemID, model.ActivityRemoval, "Your item has been removed by a moderator.",
		func(ctx context.Context, items repository.ItemRepository) error {
			return items.SoftDelete(ctx, itemID)
		})
}

func (s *moderationService) moderate(
	ctx context.Context,
	moderator *model.User,
	itemID uint,
	method model.ActivityMethod,
	message string,
	apply func(ctx context.Context, items repository.ItemRepository) error,
) error {
	if moderator == nil || !moderator.Role.CanModerate() {
		return apperrors.ErrForbidden
	}

	err := s.items.WithTransaction(ctx, func(ctx context.Context, items repository.ItemRepository, activities repository.ActivityRepository) error {
		item, err := items.FindByID(ctx, itemID)
		if err != nil {
			return err
		}
		if err := apply(ctx, items); err != nil {
			return err
		}
		return activities.Create(ctx, &model.Activity{
			UserID:   item.UserID,
			ItemID:   &item.ID,
			Method:   method,
			Status:   model.ActivityStatusCompleted,
			Progress: 100,
			Message:  message,
			Notify:   true,
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrItemNotFound
		}
		return fmt.Errorf("%s item %d: %w", method, itemID, err)
	}

	s.log.WithFields(logrus.Fields{
		"moderator_id": moderator.ID,
		"item_id":      itemID,
		"action":       method,
	}).Info("item moderated")
	return nil
}
