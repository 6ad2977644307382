package controller

import (
	"errors"

	"github.com/benbeisheim/chessai-backend/internal/middleware"
	"github.com/benbeisheim/chessai-backend/internal/model"
	"github.com/benbeisheim/chessai-backend/internal/service"
	"github.com/benbeisheim/chessai-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	Color string `json:"color"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	playerID := middleware.PlayerID(c)

	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return errorResponse(c, fiber.StatusBadRequest, err)
		}
	}
	gameID, color, err := gc.gameService.CreateGame(playerID, req.Color)
	if err != nil {
		return errorResponse(c, statusFor(err), err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, statusFor(err), err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	square := c.Params("square")
	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), square)
	if err != nil {
		return errorResponse(c, statusFor(err), err)
	}
	return c.JSON(ws.LegalMovesPayload{From: square, Moves: moves})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := middleware.PlayerID(c)

	var move ws.MovePayload
	if err := c.BodyParser(&move); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err)
	}
	if err := gc.gameService.HandleMove(gameID, playerID, move); err != nil {
		return errorResponse(c, statusFor(err), err)
	}
	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return errorResponse(c, statusFor(err), err)
	}
	return c.JSON(gameState)
}

func errorResponse(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// statusFor maps engine and service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameOver):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrInvalidColor),
		errors.Is(err, model.ErrOutOfBounds),
		errors.Is(err, model.ErrInvalidPromotion):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrEmptySquare),
		errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrPromotionRequired),
		errors.Is(err, model.ErrUnexpectedPromotion):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}
