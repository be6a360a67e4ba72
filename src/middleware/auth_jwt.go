package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"Quiznator-Backend/src/models"
	"Quiznator-Backend/src/utils"
)

// AuthJWT checks the bearer token and stores the caller as models.User under "user".
func AuthJWT(secret string, revoked *utils.RevokedTokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing or invalid Authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseJWT(tokenStr, secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token", "detail": err.Error()})
		}

		isRevoked, err := revoked.IsRevoked(c.UserContext(), tokenStr)
		if err != nil {
			// Redis down: the signature already checked out
			log.Println("⚠️ token blacklist unavailable:", err)
		}
		if isRevoked {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token has been revoked"})
		}

		c.Locals("user", models.User{ID: claims.UserID, Email: claims.Email, Role: claims.Role})
		return c.Next()
	}
}
