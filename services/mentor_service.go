package services

import (
	"context"
	"strings"

	"github.com/anjiri1684/mentorship/auth"
	"github.com/anjiri1684/mentorship/database"
	"github.com/anjiri1684/mentorship/models"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type MentorApplication struct {
	Headline string  `json:"headline" validate:"required,min=3,max=160"`
	Bio      *string `json:"bio" validate:"omitempty,max=2000"`
}

type MentorService struct {
	mentors  MentorStore
	validate *validator.Validate
}

func NewMentorService(mentors MentorStore) *MentorService {
	return &MentorService{mentors: mentors, validate: newValidator()}
}

// Apply creates an active mentor profile for the caller. One per account.
func (s *MentorService) Apply(ctx context.Context, id auth.Identity, in MentorApplication) (*models.Mentor, error) {
	if !id.Authenticated() {
		return nil, errAuthenticationRequired
	}
	in.Headline = strings.TrimSpace(in.Headline)
	if err := validateInput(s.validate, in); err != nil {
		return nil, err
	}

	_, err := s.mentors.FindByUserID(ctx, id.UserID)
	if err == nil {
		return nil, newError(KindConflict, "You already have a mentor profile")
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, internal(err, "unable to look up mentor profile")
	}

	mentor := &models.Mentor{
		ID:       uuid.New(),
		UserID:   id.UserID,
		Headline: in.Headline,
		Bio:      nilIfBlank(derefOr(in.Bio, "")),
		Status:   models.MentorStatusActive,
	}
	err = s.mentors.Create(ctx, mentor)
	if errors.Is(err, database.ErrDuplicate) {
		return nil, newError(KindConflict, "You already have a mentor profile")
	}
	if err != nil {
		return nil, internal(err, "unable to create mentor profile")
	}
	return mentor, nil
}

func (s *MentorService) List(ctx context.Context, limit, offset int) ([]models.Mentor, error) {
	mentors, err := s.mentors.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, internal(err, "unable to list mentors")
	}
	if mentors == nil {
		mentors = []models.Mentor{}
	}
	return mentors, nil
}

func (s *MentorService) Get(ctx context.Context, mentorID uuid.UUID) (*models.Mentor, error) {
	mentor, err := s.mentors.FindByID(ctx, mentorID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, newError(KindNotFound, "Mentor not found")
	}
	if err != nil {
		return nil, internal(err, "unable to load mentor")
	}
	return mentor, nil
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
