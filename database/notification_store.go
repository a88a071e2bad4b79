package database

import (
	"context"
	"time"

	"github.com/anjiri1684/mentorship/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type NotificationStore struct {
	db *gorm.DB
}

func NewNotificationStore(db *gorm.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

func (s *NotificationStore) Create(ctx context.Context, notification *models.Notification) error {
	if err := s.db.WithContext(ctx).Create(notification).Error; err != nil {
		return errors.Wrap(translate(err), "unable to save notification")
	}
	return nil
}

func (s *NotificationStore) ListForUser(ctx context.Context, userID uuid.UUID, filter models.NotificationFilter) ([]models.Notification, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.UnreadOnly {
		query = query.Where("read_at IS NULL")
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, errors.Wrap(err, "unable to list notifications")
	}
	return notifications, nil
}

// CountUnread counts the notifications for the user that haven't been marked as read.
func (s *NotificationStore) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&total).Error
	if err != nil {
		return 0, errors.Wrap(err, "unable to count unread notifications")
	}
	return total, nil
}

// MarkRead stamps read_at once. Marking an already read notification is a no-op; a
// notification the user does not own is ErrNotFound.
func (s *NotificationStore) MarkRead(ctx context.Context, userID, id uuid.UUID, at time.Time) error {
	wrapMsg := "unable to mark notification as read"

	result := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", id, userID).
		Update("read_at", at)
	if result.Error != nil {
		return errors.Wrap(result.Error, wrapMsg)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var owned int64
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&owned).Error
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}
	if owned == 0 {
		return errors.Wrap(ErrNotFound, wrapMsg)
	}
	return nil
}

func (s *NotificationStore) MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", at)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "unable to mark notifications as read")
	}
	return result.RowsAffected, nil
}

func (s *NotificationStore) UnreadSummaries(ctx context.Context) ([]models.UnreadSummary, error) {
	var summaries []models.UnreadSummary
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Select("user_id, count(*) AS count").
		Where("read_at IS NULL").
		Group("user_id").
		Scan(&summaries).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to summarize unread notifications")
	}
	return summaries, nil
}
