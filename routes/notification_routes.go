package routes

import (
	"github.com/anjiri1684/mentorship/handlers"
	"github.com/anjiri1684/mentorship/middleware"
	"github.com/gofiber/fiber/v2"
)

func NotificationRoutes(app *fiber.App, d Deps) {
	h := handlers.NewNotificationHandler(d.Notifications, d.Log)

	notifications := app.Group("/api/v1/notifications", middleware.Protected(d.Config.JWTSecret))
	notifications.Get("", h.ListNotifications)
	notifications.Get("/unread-count", h.UnreadCount)
	notifications.Post("/read-all", h.MarkAllRead)
	notifications.Patch("/:notificationId/read", h.MarkRead)
}
