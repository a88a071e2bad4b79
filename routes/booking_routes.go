package routes

import (
	"github.com/anjiri1684/mentorship/handlers"
	"github.com/anjiri1684/mentorship/middleware"
	"github.com/gofiber/fiber/v2"
)

// BookingRoutes mounts the booking lifecycle at the root, where existing clients call it.
func BookingRoutes(app *fiber.App, d Deps) {
	h := handlers.NewBookingHandler(d.Bookings, d.Log)

	booking := app.Group("/mentor-book", middleware.Protected(d.Config.JWTSecret))
	booking.Post("", h.CreateBooking)
	booking.Get("", h.ListBookings)
	booking.Get("/:bookingId", h.GetBooking)
	booking.Patch("/:bookingId", h.TransitionBooking)
}
