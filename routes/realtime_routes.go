package routes

import (
	"github.com/anjiri1684/mentorship/websocket"
	"github.com/gofiber/fiber/v2"
)

// RealtimeRoutes exposes the notification feed. The socket authenticates with its first
// frame, so the route itself is public.
func RealtimeRoutes(app *fiber.App, d Deps) {
	app.Use("/api/v1/ws", websocket.UpgradeRequired)
	app.Get("/api/v1/ws", websocket.Handler(d.Hub, d.Config.JWTSecret, d.Log))
}
