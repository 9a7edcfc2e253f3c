package service

import (
	"errors"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/model"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/repository"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"
	"github.com/rajpalpavitra-beep/HaBet-app3/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// feedLimit caps how many notifications the feed returns, matching what
// the bell dropdown renders.
const feedLimit = 50

type NotificationService struct {
	notificationRepo *repository.NotificationRepository
}

func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// Notify records an event for a user. Failures are logged, never
// returned: a missed notification must not fail the action that
// triggered it.
func (s *NotificationService) Notify(userID uint, kind model.NotificationType, message string, betID *string, relatedUserID *uint) {
	n := &model.Notification{
		UserID:        userID,
		Type:          kind,
		Message:       message,
		BetID:         betID,
		RelatedUserID: relatedUserID,
	}
	if err := s.notificationRepo.Create(n); err != nil {
		logger.Log.Warn("Failed to create notification",
			zap.Uint("user_id", userID),
			zap.String("type", string(kind)),
			zap.Error(err))
	}
}

func (s *NotificationService) List(userID uint) ([]model.Notification, error) {
	return s.notificationRepo.FindByUser(userID, feedLimit)
}

func (s *NotificationService) MarkRead(id string, userID uint) error {
	n, err := s.notificationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrPermissionDenied
		}
		return err
	}
	if n.UserID != userID {
		return util.ErrPermissionDenied
	}
	return s.notificationRepo.MarkRead(id, userID)
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.notificationRepo.MarkAllRead(userID)
}

func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.notificationRepo.UnreadCount(userID)
}
