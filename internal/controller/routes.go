package controller

import (
	"slices"
	"strings"

	"github.com/benbeisheim/chessai-backend/internal/config"
	"github.com/benbeisheim/chessai-backend/internal/middleware"
	"github.com/benbeisheim/chessai-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

// NewApp wires the REST and websocket routes onto a fiber app.
func NewApp(gameService *service.GameService, cfg config.Config) *fiber.App {
	app := fiber.New()

	// an engine invariant panic fails the request, not the process
	app.Use(recover.New())
	app.Use(logger.New())
	// fiber refuses credentials with a wildcard origin
	origins := cfg.Origins()
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: !slices.Contains(origins, "*"),
	}))

	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)

	app.Get("/ws/game/:gameId",
		middleware.EnsurePlayerID(),
		middleware.WebSocketUpgrade(),
		websocket.New(wsController.HandleConnection, websocket.Config{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Origins:         origins,
		}),
	)

	api := app.Group("/api", middleware.EnsurePlayerID())
	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves/:square", gameController.GetLegalMoves)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)

	return app
}
