package middleware

import "github.com/gofiber/fiber/v2"

// PreflightOK answers OPTIONS preflights with an empty 200 instead of the 204 the cors
// middleware writes. Register it before cors.
func PreflightOK() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodOptions {
			return c.Next()
		}
		if err := c.Next(); err != nil {
			return err
		}
		if c.Response().StatusCode() == fiber.StatusNoContent {
			c.Status(fiber.StatusOK)
			c.Response().ResetBody()
		}
		return nil
	}
}
