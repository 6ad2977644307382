// service/game_manager.go
package service

import (
	"errors"
	"log"
	"sync"

	"github.com/benbeisheim/chessai-backend/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
	ErrInvalidColor = errors.New("color must be white or black")
)

// GameManager owns every live game, keyed by id.
type GameManager struct {
	games map[string]*model.Game
	ai    model.Policy
	mu    sync.RWMutex
}

func NewGameManager(ai model.Policy) *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
		ai:    ai,
	}
}

// CreateGame registers a new game for ownerID playing human and lets the AI
// open if it has White.
func (gm *GameManager) CreateGame(ownerID string, human model.Color) (*model.Game, error) {
	gameID := uuid.New().String()

	gm.mu.Lock()
	if _, exists := gm.games[gameID]; exists {
		gm.mu.Unlock()
		return nil, ErrGameExists
	}
	game := model.NewGame(gameID, ownerID, human, gm.ai)
	gm.games[gameID] = game
	gm.mu.Unlock()

	log.Printf("created game %s for player %s as %s", gameID, ownerID, human)
	if err := game.Start(); err != nil {
		log.Printf("game %s failed to start: %v", gameID, err)
		gm.RemoveGame(gameID)
		return nil, err
	}
	return game, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) RemoveGame(gameID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	delete(gm.games, gameID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameSnapshot, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameSnapshot{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.MoveRequest) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
