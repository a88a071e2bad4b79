package handlers

import (
	"github.com/anjiri1684/mentorship/middleware"
	"github.com/anjiri1684/mentorship/services"
	"github.com/anjiri1684/mentorship/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type MentorHandler struct {
	mentors *services.MentorService
	log     *zap.Logger
}

func NewMentorHandler(mentors *services.MentorService, log *zap.Logger) *MentorHandler {
	return &MentorHandler{mentors: mentors, log: log}
}

func (h *MentorHandler) ApplyAsMentor(c *fiber.Ctx) error {
	var req services.MentorApplication
	if err := parseBody(c, &req); err != nil {
		return err
	}
	mentor, err := h.mentors.Apply(c.UserContext(), middleware.CurrentIdentity(c), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mentor)
}

func (h *MentorHandler) ListMentors(c *fiber.Ctx) error {
	limit, offset := utils.Page(c.Query("page"), c.Query("page_size"))
	mentors, err := h.mentors.List(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"mentors": mentors})
}

func (h *MentorHandler) GetMentor(c *fiber.Ctx) error {
	mentorID, ok := paramUUID(c, "mentorId", "mentor id")
	if !ok {
		return nil
	}
	mentor, err := h.mentors.Get(c.UserContext(), mentorID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(mentor)
}
