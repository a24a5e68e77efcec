package repository

import (
	"context"

	"gorm.io/gorm"

	"trtlmarket/internal/model"
)

// ActivityRepository defines activity log persistence operations. The log is append-only.
type ActivityRepository interface {
	Create(ctx context.Context, activity *model.Activity) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]model.Activity, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new activity repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// Create appends an activity entry.
func (r *activityRepository) Create(ctx context.Context, activity *model.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

// ListByUser returns the most recent entries of a user.
func (r *activityRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]model.Activity, error) {
	var entries []model.Activity
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
