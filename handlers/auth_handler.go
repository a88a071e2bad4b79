package handlers

import (
	"github.com/anjiri1684/mentorship/middleware"
	"github.com/anjiri1684/mentorship/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth *services.AuthService
	log  *zap.Logger
}

func NewAuthHandler(auth *services.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

func (h *AuthHandler) RegisterUser(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.auth.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *AuthHandler) LoginUser(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	token, user, err := h.auth.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"token": token, "user": user})
}

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user, err := h.auth.Profile(c.UserContext(), middleware.CurrentIdentity(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(user)
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req services.ProfileInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.auth.UpdateProfile(c.UserContext(), middleware.CurrentIdentity(c), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(user)
}
