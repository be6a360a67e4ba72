package utils

import (
	"strings"

	"Quiznator-Backend/src/models"

	"github.com/gofiber/fiber/v2"
)

// SplitCSV splits a comma separated query value, dropping blanks.
func SplitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CurrentUser reads the identity stored by middleware.AuthJWT.
func CurrentUser(c *fiber.Ctx) models.User {
	user, _ := c.Locals("user").(models.User)
	return user
}
