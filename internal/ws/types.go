package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypeLegalMoves MessageType = "legalMoves"
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload is sent by clients with a move in algebraic squares.
type MovePayload struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion"`
}

// LegalMovesPayload asks for, and answers with, the destinations of From.
type LegalMovesPayload struct {
	From  string   `json:"from"`
	Moves []string `json:"moves"`
}

// ErrorPayload carries a rejected request's reason.
type ErrorPayload struct {
	Error string `json:"error"`
}
