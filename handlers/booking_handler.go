package handlers

import (
	"strings"

	"github.com/anjiri1684/mentorship/middleware"
	"github.com/anjiri1684/mentorship/models"
	"github.com/anjiri1684/mentorship/services"
	"github.com/anjiri1684/mentorship/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingHandler struct {
	bookings *services.BookingService
	log      *zap.Logger
}

func NewBookingHandler(bookings *services.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{bookings: bookings, log: log}
}

type CreateBookingRequest struct {
	MentorID string  `json:"mentor_id"`
	Message  *string `json:"message"`
}

type TransitionBookingRequest struct {
	Action string `json:"action"`
}

func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var req CreateBookingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	raw := strings.TrimSpace(req.MentorID)
	if raw == "" {
		return badRequest(c, "mentor_id is required")
	}
	mentorID, err := uuid.Parse(raw)
	if err != nil {
		return badRequest(c, "mentor_id must be a valid UUID")
	}

	outcome, err := h.bookings.Create(c.UserContext(), middleware.CurrentIdentity(c), services.CreateBookingInput{
		MentorID: mentorID,
		Message:  req.Message,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	logSideEffects(h.log, "create", outcome)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "booking": outcome.Booking})
}

// TransitionBooking validates the path id and action token before touching the store, so
// a malformed request is a 400 even when the booking does not exist.
func (h *BookingHandler) TransitionBooking(c *fiber.Ctx) error {
	bookingID, ok := paramUUID(c, "bookingId", "booking id")
	if !ok {
		return nil
	}
	var req TransitionBookingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	action, ok := models.ParseBookingAction(strings.TrimSpace(req.Action))
	if !ok {
		return badRequest(c, "Invalid action")
	}

	outcome, err := h.bookings.Transition(c.UserContext(), middleware.CurrentIdentity(c), bookingID, action)
	if err != nil {
		return respondError(c, h.log, err)
	}
	logSideEffects(h.log, action.String(), outcome)

	return c.JSON(fiber.Map{"ok": true, "booking": outcome.Booking})
}

func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	bookingID, ok := paramUUID(c, "bookingId", "booking id")
	if !ok {
		return nil
	}
	view, err := h.bookings.Get(c.UserContext(), middleware.CurrentIdentity(c), bookingID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"ok":              true,
		"booking":         view.Booking,
		"role":            view.Role,
		"allowed_actions": view.AllowedActions,
	})
}

func (h *BookingHandler) ListBookings(c *fiber.Ctx) error {
	limit, offset := utils.Page(c.Query("page"), c.Query("page_size"))
	bookings, err := h.bookings.List(c.UserContext(), middleware.CurrentIdentity(c), models.BookingFilter{
		Role:   models.ParticipantRole(c.Query("role")),
		Status: models.BookingStatus(c.Query("status")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"ok": true, "bookings": bookings})
}
