package service

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/chessai-backend/internal/model"
	"github.com/benbeisheim/chessai-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame starts a game for playerID. color is the human's side, matched
// case-insensitively, and defaults to white.
func (gs *GameService) CreateGame(playerID string, color string) (string, model.Color, error) {
	human := model.Color(strings.ToLower(strings.TrimSpace(color)))
	if human == "" {
		human = model.White
	}
	if human != model.White && human != model.Black {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	game, err := gs.gameManager.CreateGame(playerID, human)
	if err != nil {
		return "", "", fmt.Errorf("failed to create game: %w", err)
	}
	return game.ID, human, nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameSnapshot, error) {
	return gs.gameManager.GetGameState(gameID)
}

// LegalMoves returns the legal destinations of the piece on square.
func (gs *GameService) LegalMoves(gameID string, square string) ([]string, error) {
	from, err := model.ParsePosition(square)
	if err != nil {
		return nil, err
	}
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	moves, err := game.LegalMoves(from)
	if err != nil {
		return nil, err
	}
	squares := make([]string, 0, len(moves))
	for _, m := range moves {
		squares = append(squares, m.String())
	}
	return squares, nil
}

// HandleMove applies the player's move and the AI reply.
func (gs *GameService) HandleMove(gameID string, playerID string, move ws.MovePayload) error {
	req, err := model.ParseMoveRequest(move.From, move.To, move.Promotion)
	if err != nil {
		return err
	}
	return gs.gameManager.MakeMove(gameID, playerID, req)
}

// SendTo pushes a single message to playerID's websocket in gameID.
func (gs *GameService) SendTo(gameID string, playerID string, msgType ws.MessageType, payload any) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Send(playerID, msgType, payload)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}
