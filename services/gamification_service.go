package services

import (
	"context"

	"github.com/anjiri1684/mentorship/models"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	xpMenteeSessionCompleted = 10
	xpMentorSessionCompleted = 15
	leaderboardSize          = 10
)

type GamificationService struct {
	users UserStore
	log   *zap.Logger
}

func NewGamificationService(users UserStore, log *zap.Logger) *GamificationService {
	return &GamificationService{users: users, log: log}
}

// AwardSessionCompletion grants XP to both participants of a completed booking. The
// booking's mentor must be loaded.
func (s *GamificationService) AwardSessionCompletion(ctx context.Context, booking *models.Booking) error {
	if booking.Mentor == nil {
		return errors.New("booking mentor not loaded")
	}
	if err := s.users.AddXP(ctx, booking.MenteeID, xpMenteeSessionCompleted); err != nil {
		return errors.Wrapf(err, "unable to award XP to mentee %s", booking.MenteeID)
	}
	if err := s.users.AddXP(ctx, booking.Mentor.UserID, xpMentorSessionCompleted); err != nil {
		return errors.Wrapf(err, "unable to award XP to mentor %s", booking.Mentor.UserID)
	}
	s.log.Info("awarded session XP",
		zap.Stringer("booking_id", booking.ID),
		zap.Int("mentee_xp", xpMenteeSessionCompleted),
		zap.Int("mentor_xp", xpMentorSessionCompleted))
	return nil
}

func (s *GamificationService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	entries, err := s.users.Leaderboard(ctx, leaderboardSize)
	if err != nil {
		return nil, internal(err, "unable to load leaderboard")
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	return entries, nil
}
