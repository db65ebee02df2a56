package services

import (
	"time"

	"github.com/mertkaya/teampulse/internal/models"
	"github.com/mertkaya/teampulse/internal/repositories"
)

// ActivityService owns the append-only activity log
type ActivityService struct {
	activityRepo *repositories.ActivityRepository
}

func NewActivityService(activityRepo *repositories.ActivityRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

// Append records one activity. The returned flag is false when the
// activity_id was already present and the call was a no-op.
func (s *ActivityService) Append(memberID, source, activityType string, timestamp time.Time, metadata map[string]interface{}, activityID *string) (bool, error) {
	activity := models.NewActivity(memberID, source, activityType, timestamp, metadata, activityID)
	return s.activityRepo.Create(activity)
}

// Query returns activities matching the filter, newest first
func (s *ActivityService) Query(filter repositories.ActivityFilter) ([]*models.Activity, error) {
	return s.activityRepo.Query(filter)
}
