package service

import (
	"context"
	"fmt"

	"trtlmarket/internal/model"
	"trtlmarket/internal/repository"
)

// ActivityFeedLimit is the number of entries shown in a user's feed.
const ActivityFeedLimit = 50

// ActivityService reads the activity log.
type ActivityService interface {
	Recent(ctx context.Context, userID uint) ([]model.Activity, error)
}

type activityService struct {
	activities repository.ActivityRepository
}

// NewActivityService creates a new activity service.
func NewActivityService(activities repository.ActivityRepository) ActivityService {
	return &activityService{activities: activities}
}

// Recent returns the latest entries of a user, newest first.
func (s *activityService) Recent(ctx context.Context, userID uint) ([]model.Activity, error) {
	entries, err := s.activities.ListByUser(ctx, userID, ActivityFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return entries, nil
}
