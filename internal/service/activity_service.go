package service

import (
	"encoding/json"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type ActivityService struct {
	Repo *repository.ActivityRepository
}

func NewActivityService(repo *repository.ActivityRepository) *ActivityService {
	return &ActivityService{Repo: repo}
}

// Log appends one audit row. Failures are logged and swallowed so the
// trail never blocks the action it records.
func (s *ActivityService) Log(userID uint, action string, resourceType string, resourceID *uint, metadata map[string]interface{}) {
	entry := &model.ActivityLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err == nil {
			entry.Metadata = datatypes.JSON(raw)
		}
	}
	if err := s.Repo.Append(entry); err != nil {
		logger.Log.Error("failed to append activity log",
			zap.Uint("userId", userID), zap.String("action", action), zap.Error(err))
	}
}

// Record satisfies middleware.ActivityRecorder.
func (s *ActivityService) Record(userID uint, action string) error {
	return s.Repo.Append(&model.ActivityLog{
		UserID: userID,
		Action: action,
	})
}

func (s *ActivityService) RecentForUser(userID uint, page, limit int) ([]model.ActivityLog, int64, error) {
	return s.Repo.ListByUser(userID, page, limit)
}
