package handlers

import (
	"github.com/anjiri1684/mentorship/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GamificationHandler struct {
	gamification *services.GamificationService
	log          *zap.Logger
}

func NewGamificationHandler(gamification *services.GamificationService, log *zap.Logger) *GamificationHandler {
	return &GamificationHandler{gamification: gamification, log: log}
}

func (h *GamificationHandler) GetLeaderboard(c *fiber.Ctx) error {
	entries, err := h.gamification.Leaderboard(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(entries)
}
