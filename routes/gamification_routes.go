package routes

import (
	"github.com/anjiri1684/mentorship/handlers"
	"github.com/gofiber/fiber/v2"
)

func GamificationRoutes(app *fiber.App, d Deps) {
	h := handlers.NewGamificationHandler(d.Gamification, d.Log)

	gamification := app.Group("/api/v1/gamification")
	gamification.Get("/leaderboard", h.GetLeaderboard)
}
