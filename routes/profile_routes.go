package routes

import (
	"github.com/anjiri1684/mentorship/handlers"
	"github.com/anjiri1684/mentorship/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App, d Deps) {
	h := handlers.NewAuthHandler(d.Auth, d.Log)
	uploads := handlers.NewUploadHandler(d.Config.CloudinaryURL, d.Config.UploadFolder, d.Log)

	profile := app.Group("/api/v1/profile/me", middleware.Protected(d.Config.JWTSecret))
	profile.Get("", h.GetProfile)
	profile.Put("", h.UpdateProfile)

	app.Get("/api/v1/uploads/signature", middleware.Protected(d.Config.JWTSecret), uploads.GenerateUploadSignature)
}
