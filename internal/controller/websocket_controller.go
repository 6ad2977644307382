package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/benbeisheim/chessai-backend/internal/middleware"
	"github.com/benbeisheim/chessai-backend/internal/service"
	"github.com/benbeisheim/chessai-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	id, ok := middleware.ConnIdentity(c)
	if !ok {
		log.Printf("websocket connection without game or player id")
		c.Close()
		return
	}
	gameID, playerID := id.GameID, id.PlayerID

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("failed to register connection: %v", err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("parse error: %v", err)
			wsc.sendError(gameID, playerID, err)
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Printf("handle error: %v", err)
			wsc.sendError(gameID, playerID, err)
		}
	}
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		// the new state reaches every observer through the game's broadcast
		return wsc.gameService.HandleMove(gameID, playerID, move)

	case ws.MessageTypeLegalMoves:
		var req ws.LegalMovesPayload
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		moves, err := wsc.gameService.LegalMoves(gameID, req.From)
		if err != nil {
			return err
		}
		return wsc.gameService.SendTo(gameID, playerID, ws.MessageTypeLegalMoves, ws.LegalMovesPayload{From: req.From, Moves: moves})

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(gameID, playerID string, err error) {
	if sendErr := wsc.gameService.SendTo(gameID, playerID, ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()}); sendErr != nil {
		log.Printf("failed to send error to player %s: %v", playerID, sendErr)
	}
}
