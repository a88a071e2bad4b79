package database

import (
	"context"
	"time"

	"github.com/anjiri1684/mentorship/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

func (s *BookingStore) Create(ctx context.Context, booking *models.Booking) error {
	if err := s.db.WithContext(ctx).Create(booking).Error; err != nil {
		return errors.Wrap(translate(err), "unable to create booking")
	}
	return nil
}

// FindByID loads the booking together with its mentor so callers can resolve roles.
func (s *BookingStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Preload("Mentor").First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, errors.Wrapf(translate(err), "unable to load booking %s", id)
	}
	return &booking, nil
}

func (s *BookingStore) ListForUser(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	query := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("mentor_bookings.*").
		Preload("Mentor").
		Joins("JOIN mentors ON mentors.id = mentor_bookings.mentor_id")

	switch filter.Role {
	case models.ParticipantMentor:
		query = query.Where("mentors.user_id = ?", filter.UserID)
	case models.ParticipantMentee:
		query = query.Where("mentor_bookings.mentee_id = ?", filter.UserID)
	default:
		query = query.Where("mentors.user_id = ? OR mentor_bookings.mentee_id = ?", filter.UserID, filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("mentor_bookings.status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var bookings []models.Booking
	if err := query.Order("mentor_bookings.created_at DESC").Find(&bookings).Error; err != nil {
		return nil, errors.Wrap(err, "unable to list bookings")
	}
	return bookings, nil
}

// UpdateStatus moves the booking from one status to another only if it still holds the
// expected status. A miss is reported as ErrStaleBooking. The returned row comes from the
// UPDATE itself, so its Mentor is not loaded.
func (s *BookingStore) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.BookingStatus) (*models.Booking, error) {
	wrapMsg := "unable to update booking status"

	var booking models.Booking
	result := s.db.WithContext(ctx).
		Model(&booking).
		Clauses(clause.Returning{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, wrapMsg)
	}
	if result.RowsAffected == 0 {
		return nil, errors.Wrap(ErrStaleBooking, wrapMsg)
	}
	return &booking, nil
}

// ListStaleRequests returns requested bookings created before olderThan that have not
// been reminded yet.
func (s *BookingStore) ListStaleRequests(ctx context.Context, olderThan time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("Mentor").
		Where("status = ? AND created_at < ? AND reminded_at IS NULL", models.BookingStatusRequested, olderThan).
		Order("created_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to list stale booking requests")
	}
	return bookings, nil
}

func (s *BookingStore) MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) error {
	err := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("reminded_at", at).Error
	if err != nil {
		return errors.Wrap(err, "unable to mark booking as reminded")
	}
	return nil
}
