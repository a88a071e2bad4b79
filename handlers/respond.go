package handlers

import (
	"github.com/anjiri1684/mentorship/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// respondError writes {error: message} with the status of the service error. Internal
// errors are logged and masked.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	svcErr := services.AsError(err)
	if svcErr.Kind == services.KindInternal {
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(svcErr.Err))
	}
	return c.Status(svcErr.StatusCode()).JSON(fiber.Map{"error": svcErr.Message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	return nil
}

// paramUUID parses a path parameter; ok is false when it already answered 400.
func paramUUID(c *fiber.Ctx, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		_ = badRequest(c, "Invalid "+label)
		return uuid.Nil, false
	}
	return id, true
}

// logSideEffects reports best-effort failures without touching the response.
func logSideEffects(log *zap.Logger, operation string, outcome *services.BookingOutcome) {
	for _, effect := range outcome.Failed() {
		log.Warn("booking side effect failed",
			zap.String("operation", operation),
			zap.String("side_effect", effect.Name),
			zap.Stringer("booking_id", outcome.Booking.ID),
			zap.Error(effect.Err))
	}
}
