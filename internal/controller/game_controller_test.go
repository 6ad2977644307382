package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benbeisheim/chessai-backend/internal/config"
	"github.com/benbeisheim/chessai-backend/internal/model"
	"github.com/benbeisheim/chessai-backend/internal/service"
	"github.com/benbeisheim/chessai-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/google/go-cmp/cmp"
)

type firstMove struct{}

func (firstMove) SelectMove(s *model.GameState) (model.MoveRequest, error) {
	moves := s.AllLegalMoves(s.ToMove)
	if len(moves) == 0 {
		return model.MoveRequest{}, model.ErrNoMoveAvailable
	}
	return model.MoveRequest{From: moves[0].From, To: moves[0].To}, nil
}

func newTestApp() *fiber.App {
	gs := service.NewGameService(service.NewGameManager(firstMove{}))
	return NewApp(gs, config.Default())
}

func do(t *testing.T, app *fiber.App, method, target, playerID, body string, out any) int {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if playerID != "" {
		req.Header.Set("X-Player-ID", playerID)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, target, err)
		}
	}
	return resp.StatusCode
}

type createResponse struct {
	Message string      `json:"message"`
	GameID  string      `json:"game_id"`
	Color   model.Color `json:"color"`
}

func createGame(t *testing.T, app *fiber.App, playerID, body string) createResponse {
	t.Helper()
	var created createResponse
	if status := do(t, app, http.MethodPost, "/api/game/create", playerID, body, &created); status != fiber.StatusOK {
		t.Fatalf("create status = %d, want 200", status)
	}
	if created.GameID == "" {
		t.Fatal("create returned no game id")
	}
	return created
}

// snapshot mirrors the JSON shape of a game snapshot.
type snapshot struct {
	ID          string           `json:"id"`
	Board       [][]*model.Piece `json:"boardState"`
	ToMove      model.Color      `json:"toMove"`
	MoveHistory []model.Move     `json:"moveHistory"`
	IsCheck     bool             `json:"isCheck"`
	Resolve     *string          `json:"resolve"`
	Players     model.Players    `json:"players"`
}

func TestMissingPlayerID(t *testing.T) {
	app := newTestApp()
	var body map[string]string
	if status := do(t, app, http.MethodPost, "/api/game/create", "", "", &body); status != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
	if body["error"] == "" {
		t.Error("expected an error message")
	}
}

func TestCreateAndGetGame(t *testing.T) {
	app := newTestApp()
	created := createGame(t, app, "alice", "")
	if created.Color != model.White {
		t.Errorf("color = %s, want white", created.Color)
	}

	var snap snapshot
	if status := do(t, app, http.MethodGet, "/api/game/"+created.GameID, "alice", "", &snap); status != fiber.StatusOK {
		t.Fatalf("get status = %d, want 200", status)
	}
	if snap.ID != created.GameID || snap.ToMove != model.White {
		t.Errorf("snapshot = %+v", snap)
	}
	if len(snap.Board) != 8 || snap.Board[7][4] == nil || snap.Board[7][4].Type != model.King {
		t.Errorf("board row 7 = %v, want white king on e1", snap.Board[7])
	}
	if snap.Board[4][4] != nil {
		t.Errorf("e4 = %+v, want empty", snap.Board[4][4])
	}
	if snap.Players.White.ID != "alice" || !snap.Players.Black.IsAI {
		t.Errorf("players = %+v", snap.Players)
	}
}

func TestCreateGameAsBlack(t *testing.T) {
	app := newTestApp()
	created := createGame(t, app, "alice", `{"color":"black"}`)
	if created.Color != model.Black {
		t.Fatalf("color = %s, want black", created.Color)
	}

	var snap snapshot
	do(t, app, http.MethodGet, "/api/game/"+created.GameID, "alice", "", &snap)
	if snap.ToMove != model.Black || len(snap.MoveHistory) != 1 {
		t.Errorf("ToMove = %s, history = %d; want the AI to have opened", snap.ToMove, len(snap.MoveHistory))
	}
}

func TestCreateGameBadColor(t *testing.T) {
	app := newTestApp()
	var body map[string]string
	if status := do(t, app, http.MethodPost, "/api/game/create", "alice", `{"color":"green"}`, &body); status != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
}

func TestUnknownGame(t *testing.T) {
	app := newTestApp()
	var body map[string]string
	if status := do(t, app, http.MethodGet, "/api/game/nope", "alice", "", &body); status != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}

func TestGetLegalMoves(t *testing.T) {
	app := newTestApp()
	created := createGame(t, app, "alice", "")

	var got ws.LegalMovesPayload
	if status := do(t, app, http.MethodGet, "/api/game/"+created.GameID+"/moves/g1", "alice", "", &got); status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	want := ws.LegalMovesPayload{From: "g1", Moves: []string{"f3", "h3"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}

	// a piece with no moves still reports an empty list
	var blocked map[string]any
	if status := do(t, app, http.MethodGet, "/api/game/"+created.GameID+"/moves/a1", "alice", "", &blocked); status != fiber.StatusOK {
		t.Fatalf("a1 status = %d, want 200", status)
	}
	if moves, ok := blocked["moves"].([]any); !ok || len(moves) != 0 {
		t.Errorf("a1 body = %v, want an empty moves array", blocked)
	}

	var body map[string]string
	if status := do(t, app, http.MethodGet, "/api/game/"+created.GameID+"/moves/e4", "alice", "", &body); status != fiber.StatusUnprocessableEntity {
		t.Errorf("empty square status = %d, want 422", status)
	}
	if status := do(t, app, http.MethodGet, "/api/game/"+created.GameID+"/moves/z0", "alice", "", &body); status != fiber.StatusBadRequest {
		t.Errorf("bad square status = %d, want 400", status)
	}
}

func TestMakeMove(t *testing.T) {
	app := newTestApp()
	created := createGame(t, app, "alice", "")
	path := "/api/game/" + created.GameID + "/move"

	tests := []struct {
		name     string
		playerID string
		body     string
		want     int
	}{
		{"illegal", "alice", `{"from":"e2","to":"e5"}`, fiber.StatusUnprocessableEntity},
		{"stranger", "bob", `{"from":"e2","to":"e4"}`, fiber.StatusForbidden},
		{"bad promotion", "alice", `{"from":"e2","to":"e4","promotion":"king"}`, fiber.StatusBadRequest},
		{"malformed", "alice", `{"from":`, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]any
			if status := do(t, app, http.MethodPost, path, tt.playerID, tt.body, &body); status != tt.want {
				t.Errorf("status = %d, want %d (%v)", status, tt.want, body)
			}
		})
	}

	var snap snapshot
	if status := do(t, app, http.MethodPost, path, "alice", `{"from":"e2","to":"e4"}`, &snap); status != fiber.StatusOK {
		t.Fatalf("legal move status = %d, want 200", status)
	}
	if snap.ToMove != model.White || len(snap.MoveHistory) != 1 || snap.MoveHistory[0].BlackPly == nil {
		t.Errorf("after e4: ToMove = %s, history = %+v; want the AI reply", snap.ToMove, snap.MoveHistory)
	}
	if snap.Board[4][4] == nil || snap.Board[4][4].Type != model.Pawn {
		t.Errorf("e4 = %+v, want a pawn", snap.Board[4][4])
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrGameNotFound, fiber.StatusNotFound},
		{model.ErrNotAuthorized, fiber.StatusForbidden},
		{model.ErrGameOver, fiber.StatusConflict},
		{model.ErrPromotionRequired, fiber.StatusUnprocessableEntity},
		{model.ErrKingNotFound, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
