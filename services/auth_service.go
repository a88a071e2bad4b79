package services

import (
	"context"
	"strings"
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

type RegisterInput struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ProfileInput struct {
	FullName  *string `json:"full_name" validate:"omitempty,min=2,max=100"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url,max=512"`
	Bio       *string `json:"bio" validate:"omitempty,max=2000"`
}

// AuthService owns accounts: registration, login and the caller's own profile.
type AuthService struct {
	users    UserStore
	secret   string
	ttl      time.Duration
	mail     *mailQueue
	validate *validator.Validate
}

func NewAuthService(users UserStore, secret string, ttl time.Duration, mailer notifications.Mailer, log *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		secret:   secret,
		ttl:      ttl,
		mail:     newMailQueue(mailer, log),
		validate: newValidator(),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if err := validateInput(s.validate, in); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, internal(err, "unable to hash password")
	}
	user := &models.User{
		ID:       uuid.New(),
		FullName: in.FullName,
		Email:    in.Email,
		Password: hash,
		Role:     models.RoleMember,
	}
	err = s.users.Create(ctx, user)
	if errors.Is(err, database.ErrDuplicate) {
		return nil, newError(KindConflict, "An account with this email already exists")
	}
	if err != nil {
		return nil, internal(err, "unable to create user")
	}

	subject, html := notifications.WelcomeEmail(user.FullName)
	s.mail.enqueue(notifications.Message{ToEmail: user.Email, ToName: user.FullName, Subject: subject, HTML: html})
	return user, nil
}

// Login checks the credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, *models.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(s.validate, in); err != nil {
		return "", nil, err
	}

	invalid := newError(KindAuthenticationRequired, "Invalid email or password")
	user, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, database.ErrNotFound) {
		return "", nil, invalid
	}
	if err != nil {
		return "", nil, internal(err, "unable to load user")
	}
	if !auth.CheckPassword(user.Password, in.Password) {
		return "", nil, invalid
	}

	token, err := auth.IssueToken(s.secret, auth.Identity{UserID: user.ID, Role: user.Role, Name: user.FullName}, s.ttl)
	if err != nil {
		return "", nil, internal(err, "unable to issue token")
	}
	return token, user, nil
}

func (s *AuthService) Profile(ctx context.Context, id auth.Identity) (*models.User, error) {
	if !id.Authenticated() {
		return nil, errAuthenticationRequired
	}
	user, err := s.users.FindByID(ctx, id.UserID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, newError(KindNotFound, "User not found")
	}
	if err != nil {
		return nil, internal(err, "unable to load user")
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields. An empty avatar_url or bio clears the value.
func (s *AuthService) UpdateProfile(ctx context.Context, id auth.Identity, in ProfileInput) (*models.User, error) {
	user, err := s.Profile(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		in.FullName = &name
	}
	if err := validateInput(s.validate, in); err != nil {
		return nil, err
	}

	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.AvatarURL != nil {
		user.AvatarURL = nilIfBlank(*in.AvatarURL)
	}
	if in.Bio != nil {
		user.Bio = nilIfBlank(*in.Bio)
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, internal(err, "unable to update profile")
	}
	return user, nil
}

// Wait blocks until queued emails have been attempted.
func (s *AuthService) Wait() {
	s.mail.wait()
}

func nilIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
