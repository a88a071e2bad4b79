package services

import (
	"context"
	"fmt"
	"time"

	"github.com/anjiri1684/mentorship/auth"
	"github.com/anjiri1684/mentorship/database"
	"github.com/anjiri1684/mentorship/models"
	"github.com/anjiri1684/mentorship/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const MaxBookingMessageLength = 1000

const (
	msgSelfBooking      = "You cannot book your own mentor profile"
	msgActionNotAllowed = "Action not allowed for current state"
)

// Dispatcher creates notifications. BookingService only needs the write side.
type Dispatcher interface {
	Dispatch(ctx context.Context, in NotificationInput) (*models.Notification, error)
}

// Rewarder grants gamification rewards for a completed booking.
type Rewarder interface {
	AwardSessionCompletion(ctx context.Context, booking *models.Booking) error
}

// SideEffect is the result of one best-effort step that ran after the primary write.
type SideEffect struct {
	Name string
	Err  error
}

// BookingOutcome separates the primary result from its side effects. A failed side effect
// never turns a successful booking write into an error.
type BookingOutcome struct {
	Booking     *models.Booking
	SideEffects []SideEffect
}

func (o *BookingOutcome) record(name string, err error) {
	o.SideEffects = append(o.SideEffects, SideEffect{Name: name, Err: err})
}

// Failed returns only the side effects that returned an error.
func (o *BookingOutcome) Failed() []SideEffect {
	var failed []SideEffect
	for _, effect := range o.SideEffects {
		if effect.Err != nil {
			failed = append(failed, effect)
		}
	}
	return failed
}

type CreateBookingInput struct {
	MentorID uuid.UUID
	Message  *string
}

type BookingService struct {
	bookings   BookingStore
	mentors    MentorStore
	dispatcher Dispatcher
	rewards    Rewarder
	baseURL    string
	log        *zap.Logger
}

func NewBookingService(bookings BookingStore, mentors MentorStore, dispatcher Dispatcher, rewards Rewarder, baseURL string, log *zap.Logger) *BookingService {
	return &BookingService{
		bookings:   bookings,
		mentors:    mentors,
		dispatcher: dispatcher,
		rewards:    rewards,
		baseURL:    baseURL,
		log:        log,
	}
}

func (s *BookingService) link(bookingID uuid.UUID) *string {
	link := fmt.Sprintf("%s/mentorship/bookings/%s", s.baseURL, bookingID)
	return &link
}

// Create stores a new requested booking from the caller to the mentor and notifies both
// parties. Exactly two notifications are attempted.
func (s *BookingService) Create(ctx context.Context, id auth.Identity, in CreateBookingInput) (*BookingOutcome, error) {
	if !id.Authenticated() {
		return nil, errAuthenticationRequired
	}
	if in.MentorID == uuid.Nil {
		return nil, newError(KindValidation, "mentor_id is required")
	}

	mentor, err := s.mentors.FindByID(ctx, in.MentorID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, newError(KindNotFound, "Mentor not found")
	}
	if err != nil {
		return nil, internal(err, "unable to load mentor")
	}
	if mentor.UserID == id.UserID {
		return nil, newError(KindValidation, msgSelfBooking)
	}

	booking := &models.Booking{
		ID:       uuid.New(),
		MentorID: mentor.ID,
		MenteeID: id.UserID,
		Message:  utils.OptionalText(in.Message, MaxBookingMessageLength),
		Status:   models.BookingStatusRequested,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, internal(err, "unable to create booking")
	}
	booking.Mentor = mentor

	outcome := &BookingOutcome{Booking: booking}

	menteeName := id.DisplayName("A mentee")
	mentorName := "your mentor"
	if mentor.User != nil && mentor.User.FullName != "" {
		mentorName = mentor.User.FullName
	}

	_, err = s.dispatcher.Dispatch(ctx, NotificationInput{
		UserID: mentor.UserID,
		Type:   models.NotificationTypeBookingRequest,
		Title:  "New mentorship request",
		Body:   strPtr(menteeName + " requested a mentorship session with you."),
		Link:   s.link(booking.ID),
	})
	outcome.record("notify_mentor", err)

	_, err = s.dispatcher.Dispatch(ctx, NotificationInput{
		UserID: id.UserID,
		Type:   models.NotificationTypeBookingRequestSent,
		Title:  "Mentorship request sent",
		Body:   strPtr("Your request was sent to " + mentorName + "."),
		Link:   s.link(booking.ID),
	})
	outcome.record("notify_mentee", err)

	return outcome, nil
}

// Transition applies action to the booking on behalf of the caller. The write is guarded
// on the status that was read, so a concurrent transition surfaces as a conflict.
func (s *BookingService) Transition(ctx context.Context, id auth.Identity, bookingID uuid.UUID, action models.BookingAction) (*BookingOutcome, error) {
	if !id.Authenticated() {
		return nil, errAuthenticationRequired
	}

	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	role, ok := booking.RoleOf(id.UserID)
	if !ok {
		return nil, newError(KindForbidden, "You are not a participant in this booking")
	}
	next, ok := NextStatus(action, booking.Status, role)
	if !ok {
		return nil, newError(KindForbidden, msgActionNotAllowed)
	}

	updated, err := s.bookings.UpdateStatus(ctx, booking.ID, booking.Status, next)
	if errors.Is(err, database.ErrStaleBooking) {
		return nil, &Error{Kind: KindConflict, Message: "Booking was changed by another request, reload and try again", Err: err}
	}
	if err != nil {
		return nil, internal(err, "unable to update booking")
	}
	if updated.Mentor == nil {
		updated.Mentor = booking.Mentor
	}

	outcome := &BookingOutcome{Booking: updated}

	recipient := updated.MenteeID
	actor := id.DisplayName("Your mentor")
	if role == models.ParticipantMentee {
		recipient = updated.Mentor.UserID
		actor = id.DisplayName("Your mentee")
	}
	text := copyFor(action, actor)
	_, err = s.dispatcher.Dispatch(ctx, NotificationInput{
		UserID: recipient,
		Type:   text.notificationType,
		Title:  text.title,
		Body:   &text.body,
		Link:   s.link(updated.ID),
	})
	outcome.record("notify_counterparty", err)

	if action == models.BookingActionComplete && s.rewards != nil {
		outcome.record("award_xp", s.rewards.AwardSessionCompletion(ctx, updated))
	}

	return outcome, nil
}

// BookingView is a booking as seen by one of its participants.
type BookingView struct {
	Booking        *models.Booking        `json:"booking"`
	Role           models.ParticipantRole `json:"role"`
	AllowedActions []string               `json:"allowed_actions"`
}

func (s *BookingService) Get(ctx context.Context, id auth.Identity, bookingID uuid.UUID) (*BookingView, error) {
	if !id.Authenticated() {
		return nil, errAuthenticationRequired
	}
	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	role, ok := booking.RoleOf(id.UserID)
	if !ok {
		return nil, newError(KindForbidden, "You are not a participant in this booking")
	}
	return &BookingView{
		Booking:        booking,
		Role:           role,
		AllowedActions: AllowedActions(booking.Status, role),
	}, nil
}

// List returns the caller's bookings. An empty role matches both sides.
func (s *BookingService) List(ctx context.Context, id auth.Identity, filter models.BookingFilter) ([]models.Booking, error) {
	if !id.Authenticated() {
		return nil, errAuthenticationRequired
	}
	switch filter.Role {
	case "", models.ParticipantMentor, models.ParticipantMentee:
	default:
		return nil, newError(KindValidation, "role must be one of: mentor, mentee")
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, newError(KindValidation, "status is invalid")
	}
	filter.UserID = id.UserID

	bookings, err := s.bookings.ListForUser(ctx, filter)
	if err != nil {
		return nil, internal(err, "unable to list bookings")
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

// SendReminders nudges mentors about requests that have waited longer than after.
// Each booking is reminded once; statuses are left untouched.
func (s *BookingService) SendReminders(ctx context.Context, now time.Time, after time.Duration) (int, error) {
	stale, err := s.bookings.ListStaleRequests(ctx, now.Add(-after))
	if err != nil {
		return 0, errors.Wrap(err, "unable to list pending requests")
	}

	sent := 0
	for i := range stale {
		booking := &stale[i]
		if booking.Mentor == nil {
			s.log.Warn("skipping reminder for booking without mentor", zap.Stringer("booking_id", booking.ID))
			continue
		}
		_, err := s.dispatcher.Dispatch(ctx, NotificationInput{
			UserID: booking.Mentor.UserID,
			Type:   models.NotificationTypeBookingReminder,
			Title:  "A mentorship request is waiting for you",
			Body:   strPtr(fmt.Sprintf("You have had a pending request since %s.", booking.CreatedAt.Format("Jan 2, 15:04"))),
			Link:   s.link(booking.ID),
		})
		if err != nil {
			s.log.Warn("failed to dispatch booking reminder", zap.Stringer("booking_id", booking.ID), zap.Error(err))
			continue
		}
		if err := s.bookings.MarkReminded(ctx, booking.ID, now); err != nil {
			return sent, errors.Wrap(err, "unable to mark booking reminded")
		}
		sent++
	}
	return sent, nil
}

func (s *BookingService) load(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, newError(KindNotFound, "Booking not found")
	}
	if err != nil {
		return nil, internal(err, "unable to load booking")
	}
	if booking.Mentor == nil {
		return nil, internal(errors.New("mentor not loaded"), "unable to resolve booking participants")
	}
	return booking, nil
}

func strPtr(s string) *string {
	return &s
}
