package handlers

import (
	"github.com/anjiri1684/mentorship/middleware"
	"github.com/anjiri1684/mentorship/models"
	"github.com/anjiri1684/mentorship/services"
	"github.com/anjiri1684/mentorship/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	notifications *services.NotificationService
	log           *zap.Logger
}

func NewNotificationHandler(notifications *services.NotificationService, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, log: log}
}

func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	limit, offset := utils.Page(c.Query("page"), c.Query("page_size"))
	list, err := h.notifications.List(c.UserContext(), middleware.CurrentIdentity(c), models.NotificationFilter{
		UnreadOnly: c.QueryBool("unread_only", false),
		Type:       c.Query("type"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"notifications": list})
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.notifications.UnreadCount(c.UserContext(), middleware.CurrentIdentity(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"unread_count": count})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	notificationID, ok := paramUUID(c, "notificationId", "notification id")
	if !ok {
		return nil
	}
	if err := h.notifications.MarkRead(c.UserContext(), middleware.CurrentIdentity(c), notificationID); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	updated, err := h.notifications.MarkAllRead(c.UserContext(), middleware.CurrentIdentity(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"ok": true, "updated": updated})
}
