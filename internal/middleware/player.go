package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// Keys under which the middleware stores request identity in fiber Locals.
const (
	LocalPlayerID   = "playerID"
	LocalWSGameID   = "wsGameID"
	LocalWSPlayerID = "wsPlayerID"
)

// PlayerID returns the id stored by EnsurePlayerID, or "" if there is none.
func PlayerID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalPlayerID).(string)
	return id
}

// EnsurePlayerID resolves the caller's player id from the X-Player-ID
// header or the playerId query parameter and stores it in Locals.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if PlayerID(c) != "" {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}
		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		c.Locals(LocalPlayerID, playerID)
		return c.Next()
	}
}
