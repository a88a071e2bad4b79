package services

import (
	"context"
	"time"

	"github.com/anjiri1684/mentorship/auth"
	"github.com/anjiri1684/mentorship/database"
	"github.com/anjiri1684/mentorship/models"
	"github.com/anjiri1684/mentorship/notifications"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type NotificationInput struct {
	UserID uuid.UUID `json:"user_id"`
	Type   string    `json:"type" validate:"required,max=64"`
	Title  string    `json:"title" validate:"required,max=255"`
	Body   *string   `json:"body" validate:"omitempty,max=4000"`
	Link   *string   `json:"link" validate:"omitempty,max=512"`
}

// Publisher pushes realtime events to a user's open connections. Publish must not block.
type Publisher interface {
	Publish(userID uuid.UUID, event models.RealtimeEvent)
}

// UserLookup resolves email recipients.
type UserLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// NotificationService is the shared dispatcher plus the per-user read side of the feed.
type NotificationService struct {
	store     NotificationStore
	users     UserLookup
	publisher Publisher
	mail      *mailQueue
	validate  *validator.Validate
	baseURL   string
	log       *zap.Logger
}

func NewNotificationService(store NotificationStore, users UserLookup, publisher Publisher, mailer notifications.Mailer, baseURL string, log *zap.Logger) *NotificationService {
	return &NotificationService{
		store:     store,
		users:     users,
		publisher: publisher,
		mail:      newMailQueue(mailer, log),
		validate:  newValidator(),
		baseURL:   baseURL,
		log:       log,
	}
}

// forwardsEmail lists the notification types that are also sent by email.
func forwardsEmail(notificationType string) bool {
	switch notificationType {
	case models.NotificationTypeBookingRequest, models.NotificationTypeBookingReminder:
		return true
	}
	return false
}

// Dispatch stores a notification for in.UserID and announces it on the realtime feed.
func (s *NotificationService) Dispatch(ctx context.Context, in NotificationInput) (*models.Notification, error) {
	if in.UserID == uuid.Nil {
		return nil, newError(KindValidation, "user_id is required")
	}
	if err := validateInput(s.validate, in); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		ID:     uuid.New(),
		UserID: in.UserID,
		Type:   in.Type,
		Title:  in.Title,
		Body:   in.Body,
		Link:   in.Link,
	}
	if err := s.store.Create(ctx, notification); err != nil {
		return nil, internal(err, "unable to create notification")
	}

	s.publish(ctx, notification.UserID, models.EventNotificationCreated, notification)

	if forwardsEmail(notification.Type) && s.mail.enabled() {
		s.forward(ctx, notification)
	}
	return notification, nil
}

func (s *NotificationService) publish(ctx context.Context, userID uuid.UUID, eventType string, notification *models.Notification) {
	if s.publisher == nil {
		return
	}
	count, err := s.store.CountUnread(ctx, userID)
	if err != nil {
		s.log.Warn("unable to count unread notifications", zap.Stringer("user_id", userID), zap.Error(err))
		return
	}
	s.publisher.Publish(userID, models.RealtimeEvent{
		Type:         eventType,
		Notification: notification,
		UnreadCount:  count,
	})
}

func (s *NotificationService) forward(ctx context.Context, notification *models.Notification) {
	user, err := s.users.FindByID(ctx, notification.UserID)
	if err != nil {
		s.log.Warn("unable to resolve notification recipient", zap.Stringer("user_id", notification.UserID), zap.Error(err))
		return
	}
	var body, link string
	if notification.Body != nil {
		body = *notification.Body
	}
	if notification.Link != nil {
		link = *notification.Link
	}
	subject, html := notifications.NotificationEmail(notification.Title, body, link)
	s.mail.enqueue(notifications.Message{ToEmail: user.Email, ToName: user.FullName, Subject: subject, HTML: html})
}

func (s *NotificationService) List(ctx context.Context, id auth.Identity, filter models.NotificationFilter) ([]models.Notification, error) {
	if !id.Authenticated() {
		return nil, errAuthenticationRequired
	}
	list, err := s.store.ListForUser(ctx, id.UserID, filter)
	if err != nil {
		return nil, internal(err, "unable to list notifications")
	}
	if list == nil {
		list = []models.Notification{}
	}
	return list, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, id auth.Identity) (int64, error) {
	if !id.Authenticated() {
		return 0, errAuthenticationRequired
	}
	count, err := s.store.CountUnread(ctx, id.UserID)
	if err != nil {
		return 0, internal(err, "unable to count unread notifications")
	}
	return count, nil
}

// MarkRead sets read_at once; repeating the call succeeds without changing it.
func (s *NotificationService) MarkRead(ctx context.Context, id auth.Identity, notificationID uuid.UUID) error {
	if !id.Authenticated() {
		return errAuthenticationRequired
	}
	err := s.store.MarkRead(ctx, id.UserID, notificationID, time.Now())
	if errors.Is(err, database.ErrNotFound) {
		return newError(KindNotFound, "Notification not found")
	}
	if err != nil {
		return internal(err, "unable to mark notification read")
	}
	s.publish(ctx, id.UserID, models.EventNotificationRead, nil)
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, id auth.Identity) (int64, error) {
	if !id.Authenticated() {
		return 0, errAuthenticationRequired
	}
	updated, err := s.store.MarkAllRead(ctx, id.UserID, time.Now())
	if err != nil {
		return 0, internal(err, "unable to mark notifications read")
	}
	if updated > 0 {
		s.publish(ctx, id.UserID, models.EventNotificationRead, nil)
	}
	return updated, nil
}

// SendDigests emails every user who has unread notifications. It returns the number of
// digests queued.
func (s *NotificationService) SendDigests(ctx context.Context) (int, error) {
	if !s.mail.enabled() {
		return 0, nil
	}
	summaries, err := s.store.UnreadSummaries(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "unable to summarise unread notifications")
	}

	queued := 0
	for _, summary := range summaries {
		if summary.Count == 0 {
			continue
		}
		user, err := s.users.FindByID(ctx, summary.UserID)
		if err != nil {
			s.log.Warn("skipping digest for unknown user", zap.Stringer("user_id", summary.UserID), zap.Error(err))
			continue
		}
		subject, html := notifications.DigestEmail(user.FullName, summary.Count, s.baseURL+"/notifications")
		s.mail.enqueue(notifications.Message{ToEmail: user.Email, ToName: user.FullName, Subject: subject, HTML: html})
		queued++
	}
	return queued, nil
}

// Wait blocks until queued emails have been attempted.
func (s *NotificationService) Wait() {
	s.mail.wait()
}
