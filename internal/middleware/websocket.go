package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid WebSocket connection attempts.
// It also checks that necessary game and player information is present before allowing the upgrade.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}

		playerID := PlayerID(c)
		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		// Store these IDs in locals so they're available after the WebSocket upgrade
		c.Locals(LocalWSGameID, gameID)
		c.Locals(LocalWSPlayerID, playerID)

		return c.Next()
	}
}

// Identity is the game and player resolved before the upgrade.
type Identity struct {
	GameID   string
	PlayerID string
}

// ConnIdentity reads the identity stored by WebSocketUpgrade from an
// upgraded connection. ok is false if either part is missing.
func ConnIdentity(c *websocket.Conn) (Identity, bool) {
	gameID, _ := c.Locals(LocalWSGameID).(string)
	playerID, _ := c.Locals(LocalWSPlayerID).(string)
	return Identity{GameID: gameID, PlayerID: playerID}, gameID != "" && playerID != ""
}
