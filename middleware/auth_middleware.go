package middleware

import (
	"github.com/anjiri1684/mentorship/auth"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

const identityKey = "identity"

// Protected requires a valid bearer token and stores the caller's auth.Identity in the
// request locals.
func Protected(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:     []byte(secret),
		SigningMethod:  "HS256",
		ErrorHandler:   jwtError,
		SuccessHandler: storeIdentity,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
}

func storeIdentity(c *fiber.Ctx) error {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return jwtError(c, auth.ErrInvalidToken)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwtError(c, auth.ErrInvalidToken)
	}
	id, err := auth.IdentityFromClaims(claims)
	if err != nil {
		return jwtError(c, err)
	}
	c.Locals(identityKey, id)
	return c.Next()
}

// CurrentIdentity returns the identity stored by Protected, or the zero Identity on
// routes that are not protected.
func CurrentIdentity(c *fiber.Ctx) auth.Identity {
	id, _ := c.Locals(identityKey).(auth.Identity)
	return id
}
