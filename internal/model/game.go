package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/chessai-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

var ErrNotAuthorized = errors.New("not authorized for this game")

// The connections for a specific game
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.Mutex
}

// Game is one human-vs-AI session: it serialises access to its GameState
// and pushes a snapshot to every connected observer after each change.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       *GameState
	connections *GameConnections
	players     Players
	human       Color
	ai          Policy
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// GameSnapshot is the client view of a game.
type GameSnapshot struct {
	ID string `json:"id"`
	GameState
	Players Players `json:"players"`
}

func NewGame(id string, ownerID string, human Color, ai Policy) *Game {
	g := &Game{
		ID:          id,
		state:       NewGameState(),
		connections: NewGameConnections(),
		human:       human,
		ai:          ai,
	}
	humanPlayer := ClientPlayer{ID: ownerID, Color: human}
	aiPlayer := ClientPlayer{ID: AIPlayerID, Color: human.Opponent(), IsAI: true}
	if human == White {
		g.players = Players{White: humanPlayer, Black: aiPlayer}
	} else {
		g.players = Players{White: aiPlayer, Black: humanPlayer}
	}
	return g
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// Start lets the AI open when the human plays Black.
func (g *Game) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playAI()
}

func (g *Game) HumanColor() Color {
	return g.human
}

func (g *Game) GetState() GameSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

func (g *Game) snapshot() GameSnapshot {
	return GameSnapshot{ID: g.ID, GameState: *g.state.Clone(), Players: g.players}
}

func (g *Game) IsOwner(playerID string) bool {
	owner := g.players.White
	if g.human == Black {
		owner = g.players.Black
	}
	return owner.ID != "" && owner.ID == playerID
}

// LegalMoves lists the legal destinations of the piece on from.
func (g *Game) LegalMoves(from Position) ([]Position, error) {
	if !from.InBounds() {
		return nil, fmt.Errorf("%w: %v", ErrOutOfBounds, from)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.state.Board.PieceAt(from); !ok {
		return nil, fmt.Errorf("%w: %v", ErrEmptySquare, from)
	}
	return g.state.LegalMoves(from), nil
}

// MakeMove plays the human's move and, unless the game ended, the AI reply.
func (g *Game) MakeMove(playerID string, move MoveRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.IsOwner(playerID) {
		return ErrNotAuthorized
	}
	if g.state.Resolve == nil && g.state.ToMove != g.human {
		return ErrNotYourTurn
	}
	ply, err := g.state.ApplyMove(move)
	if err != nil {
		return err
	}
	log.Printf("game %s: %s played %s", g.ID, g.human, ply.Notation)

	return g.playAI()
}

// playAI must be called with g.mu held.
func (g *Game) playAI() error {
	defer g.broadcastState()

	if g.state.Resolve != nil || g.state.ToMove == g.human {
		return nil
	}
	req, err := g.ai.SelectMove(g.state)
	if errors.Is(err, ErrNoMoveAvailable) {
		return nil
	}
	if err != nil {
		return err
	}
	ply, err := g.state.ApplyMove(req)
	if err != nil {
		return fmt.Errorf("ai move %v%v: %w", req.From, req.To, err)
	}
	log.Printf("game %s: ai played %s", g.ID, ply.Notation)
	return nil
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	connID := fmt.Sprintf("%p", conn)
	log.Printf("registering connection %s for player %s in game %s", connID, playerID, g.ID)

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// If we already have a healthy connection, keep it and reject the new one
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	// Send initial state
	g.mu.Lock()
	defer g.mu.Unlock()
	g.broadcastState()
	return nil
}

// UnregisterConnection drops playerID's connection if it is still conn.
func (g *Game) UnregisterConnection(playerID string, conn *websocket.Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		log.Printf("unregistering connection %p for player %s", conn, playerID)
		delete(g.connections.connections, playerID)
	}
}

// Send writes one message to playerID's connection, if registered.
func (g *Game) Send(playerID string, msgType ws.MessageType, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	conn, ok := g.connections.connections[playerID]
	if !ok {
		return nil
	}
	return conn.WriteJSON(ws.Message{Type: msgType, Payload: raw})
}

// broadcastState must be called with g.mu held.
func (g *Game) broadcastState() {
	payload, err := json.Marshal(g.snapshot())
	if err != nil {
		log.Printf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: payload,
		}); err != nil {
			log.Printf("failed to send state to player %s: %v", playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}
