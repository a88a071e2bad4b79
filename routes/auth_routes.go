package routes

import (
	"github.com/anjiri1684/mentorship/handlers"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App, d Deps) {
	h := handlers.NewAuthHandler(d.Auth, d.Log)

	auth := app.Group("/api/v1/auth")
	auth.Post("/register", h.RegisterUser)
	auth.Post("/login", h.LoginUser)
}
