package handlers

import (
	"foodgram/domain"
	"github.com/gofiber/fiber/v2"
)

func pageParams(c *fiber.Ctx) (int, int) {
	return c.QueryInt("page", 1), c.QueryInt("limit", domain.DefaultPageLimit)
}

// queryFlag is true only for the literal value "1".
func queryFlag(c *fiber.Ctx, key string) bool {
	return c.Query(key) == "1"
}

func currentUser(c *fiber.Ctx) (string, string) {
	userID, _ := c.Locals("user_id").(string)
	role, _ := c.Locals("role").(string)
	return userID, role
}
