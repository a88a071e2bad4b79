package database

import (
	"context"

	"github.com/anjiri1684/mentorship/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type MentorStore struct {
	db *gorm.DB
}

func NewMentorStore(db *gorm.DB) *MentorStore {
	return &MentorStore{db: db}
}

func (s *MentorStore) Create(ctx context.Context, mentor *models.Mentor) error {
	if err := s.db.WithContext(ctx).Create(mentor).Error; err != nil {
		return errors.Wrap(translate(err), "unable to create mentor")
	}
	return nil
}

func (s *MentorStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Mentor, error) {
	var mentor models.Mentor
	if err := s.db.WithContext(ctx).Preload("User").First(&mentor, "id = ?", id).Error; err != nil {
		return nil, errors.Wrapf(translate(err), "unable to load mentor %s", id)
	}
	return &mentor, nil
}

func (s *MentorStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Mentor, error) {
	var mentor models.Mentor
	if err := s.db.WithContext(ctx).First(&mentor, "user_id = ?", userID).Error; err != nil {
		return nil, errors.Wrapf(translate(err), "unable to load mentor for user %s", userID)
	}
	return &mentor, nil
}

func (s *MentorStore) ListActive(ctx context.Context, limit, offset int) ([]models.Mentor, error) {
	var mentors []models.Mentor
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", models.MentorStatusActive).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&mentors).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to list mentors")
	}
	return mentors, nil
}
