package database

import (
	"context"

	"github.com/anjiri1684/mentorship/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return errors.Wrap(translate(err), "unable to create user")
	}
	return nil
}

func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, errors.Wrapf(translate(err), "unable to load user %s", id)
	}
	return &user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, errors.Wrap(translate(err), "unable to load user by email")
	}
	return &user, nil
}

func (s *UserStore) Update(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return errors.Wrap(translate(err), "unable to update user")
	}
	return nil
}

func (s *UserStore) AddXP(ctx context.Context, id uuid.UUID, xp int) error {
	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("xp", gorm.Expr("xp + ?", xp))
	if result.Error != nil {
		return errors.Wrap(result.Error, "unable to award xp")
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(ErrNotFound, "unable to award xp")
	}
	return nil
}

func (s *UserStore) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	var leaderboard []models.LeaderboardEntry
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id AS user_id", "full_name", "xp", "avatar_url").
		Order("xp DESC").
		Limit(limit).
		Scan(&leaderboard).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to load leaderboard")
	}
	return leaderboard, nil
}
