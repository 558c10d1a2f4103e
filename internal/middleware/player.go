package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// PlayerIDKey is the Locals key holding the caller's player id.
const PlayerIDKey = "playerID"

const maxPlayerIDLen = 64

// EnsurePlayerID resolves the caller's player id from the X-Player-ID header,
// or the playerId query parameter for WebSocket clients that cannot set
// headers. Fiber reuses request buffers, so the id is copied before it is
// stored: games and the matchmaking queue keep it after the request ends.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals(PlayerIDKey).(string); ok {
			return c.Next()
		}

		id := strings.TrimSpace(c.Get("X-Player-ID"))
		if id == "" {
			id = strings.TrimSpace(c.Query("playerId"))
		}
		switch {
		case id == "":
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player id is required",
			})
		case len(id) > maxPlayerIDLen:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "player id is too long",
			})
		}

		c.Locals(PlayerIDKey, utils.CopyString(id))
		return c.Next()
	}
}

// PlayerID returns the id stored by EnsurePlayerID, or "" if there is none.
func PlayerID(c *fiber.Ctx) string {
	id, _ := c.Locals(PlayerIDKey).(string)
	return id
}
