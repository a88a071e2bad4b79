package routes

import (
	"errors"
	"time"

	config "github.com/anjiri1684/mentorship/configs"
	"github.com/anjiri1684/mentorship/middleware"
	"github.com/anjiri1684/mentorship/services"
	"github.com/anjiri1684/mentorship/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config *config.Config
	Log    *zap.Logger

	Auth          *services.AuthService
	Bookings      *services.BookingService
	Mentors       *services.MentorService
	Notifications *services.NotificationService
	Gamification  *services.GamificationService
	Hub           *websocket.Hub
}

func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:       "Mentorship",
		CaseSensitive: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler:  errorHandler(d.Log),
	})

	app.Use(middleware.PreflightOK())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  d.Config.CORSAllowOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Client-Info, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, X-Request-ID",
		MaxAge:        86400,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		Output:     zap.NewStdLog(d.Log).Writer(),
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	BookingRoutes(app, d)
	AuthRoutes(app, d)
	MentorRoutes(app, d)
	ProfileRoutes(app, d)
	NotificationRoutes(app, d)
	GamificationRoutes(app, d)
	RealtimeRoutes(app, d)

	return app
}

// errorHandler keeps the {error} shape for errors no handler answered, such as unknown
// routes and recovered panics.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("unhandled error", zap.String("method", c.Method()), zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(code).JSON(fiber.Map{"error": message})
	}
}
