package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const unreadCacheTTL = 5 * time.Minute

// NotificationRepository persists notifications and keeps a short-lived
// unread counter in Redis so the bell badge does not hit the database on
// every poll. Redis may be nil; everything degrades to the database.
type NotificationRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewNotificationRepository(db *gorm.DB, rdb *redis.Client) *NotificationRepository {
	return &NotificationRepository{DB: db, Redis: rdb}
}

func (r *NotificationRepository) Create(n *model.Notification) error {
	if err := r.DB.Create(n).Error; err != nil {
		return err
	}
	r.invalidateUnread(n.UserID)
	return nil
}

// FindByUser returns the newest notifications with bet and sender
// profiles preloaded, capped the way the feed renders them.
func (r *NotificationRepository) FindByUser(userID uint, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.DB.Preload("Bet").Preload("RelatedUser").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepository) FindByID(id string) (*model.Notification, error) {
	var n model.Notification
	err := r.DB.Where("id = ?", id).First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) MarkRead(id string, userID uint) error {
	err := r.DB.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true).Error
	if err == nil {
		r.invalidateUnread(userID)
	}
	return err
}

func (r *NotificationRepository) MarkAllRead(userID uint) error {
	err := r.DB.Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
	if err == nil {
		r.invalidateUnread(userID)
	}
	return err
}

func (r *NotificationRepository) UnreadCount(userID uint) (int64, error) {
	key := unreadKey(userID)
	if r.Redis != nil {
		if cached, err := r.Redis.Get(context.Background(), key).Int64(); err == nil {
			return cached, nil
		}
	}

	var count int64
	err := r.DB.Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	if r.Redis != nil {
		r.Redis.Set(context.Background(), key, count, unreadCacheTTL)
	}
	return count, nil
}

func (r *NotificationRepository) invalidateUnread(userID uint) {
	if r.Redis != nil {
		r.Redis.Del(context.Background(), unreadKey(userID))
	}
}

func unreadKey(userID uint) string {
	return fmt.Sprintf("habet:notifications:unread:%d", userID)
}
