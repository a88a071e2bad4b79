package routes

import (
	"github.com/anjiri1684/mentorship/handlers"
	"github.com/anjiri1684/mentorship/middleware"
	"github.com/gofiber/fiber/v2"
)

func MentorRoutes(app *fiber.App, d Deps) {
	h := handlers.NewMentorHandler(d.Mentors, d.Log)

	mentors := app.Group("/api/v1/mentors")
	mentors.Post("/apply", middleware.Protected(d.Config.JWTSecret), h.ApplyAsMentor)
	mentors.Get("", h.ListMentors)
	mentors.Get("/:mentorId", h.GetMentor)
}
