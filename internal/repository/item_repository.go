package repository

import (
	"context"

	"gorm.io/gorm"

	"trtlmarket/internal/model"
)

// ItemRepository defines item store operations. Soft-deleted items are never returned.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id uint) (*model.Item, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Item, error)
	ListPendingReview(ctx context.Context) ([]model.Item, error)
	CountPendingReview(ctx context.Context) (int64, error)
	MarkReviewed(ctx context.Context, id uint) error
	SoftDelete(ctx context.Context, id uint) error
	// WithTransaction runs fn with repositories bound to one database transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, items ItemRepository, activities ActivityRepository) error) error
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

// Create inserts a new item.
func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// FindByID finds a live item by ID.
func (r *itemRepository) FindByID(ctx context.Context, id uint) (*model.Item, error) {
	var item model.Item
	if err := r.live(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByUser lists the live items owned by a user, newest first.
func (r *itemRepository) ListByUser(ctx context.Context, userID uint) ([]model.Item, error) {
	var items []model.Item
	if err := r.live(ctx).Where("user_id = ?", userID).Order("created DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListPendingReview lists live items that were not reviewed yet, oldest first.
func (r *itemRepository) ListPendingReview(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := r.live(ctx).Where("reviewed = ?", false).Order("created ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CountPendingReview counts live items awaiting review.
func (r *itemRepository) CountPendingReview(ctx context.Context) (int64, error) {
	var n int64
	if err := r.live(ctx).Model(&model.Item{}).Where("reviewed = ?", false).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// MarkReviewed flags a live item as reviewed.
func (r *itemRepository) MarkReviewed(ctx context.Context, id uint) error {
	return r.flag(ctx, id, "reviewed")
}

// SoftDelete flags a live item as deleted. The row is kept.
func (r *itemRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.flag(ctx, id, "deleted")
}

func (r *itemRepository) flag(ctx context.Context, id uint, column string) error {
	res := r.live(ctx).Model(&model.Item{}).Where("id = ?", id).Update(column, true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepository) live(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("deleted = ?", false)
}

// WithTransaction executes fn within a database transaction.
func (r *itemRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, items ItemRepository, activities ActivityRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &itemRepository{db: tx}, &activityRepository{db: tx})
	})
}
