package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wajih79/kia-python-game/internal/app"
	"github.com/wajih79/kia-python-game/internal/catalog"
	"github.com/wajih79/kia-python-game/internal/domain"
	"github.com/wajih79/kia-python-game/internal/notify"
)

type fixedGenerator struct{ code string }

func (g fixedGenerator) Generate(_ context.Context, _, _, _ string) (string, error) {
	return g.code, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *app.GameService) {
	t.Helper()
	hub := notify.NewHub()
	content := catalog.DefaultContent()
	service := app.NewGameService(app.ServiceConfig{
		StandardCatalog: catalog.New(content[catalog.StandardID]),
		PromptCatalog:   catalog.New(content[catalog.PromptID]),
		Notifier:        hub,
		Generator:       fixedGenerator{code: "print('hi')"},
		PollQuestion:    "Q?",
		PollOptions:     []string{"A", "B"},
		RoundLimitSecs:  300,
	})
	wsHandler := NewWSHandler(service, hub)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, service
}

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws?" + query
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readNext(t *testing.T, conn *websocket.Conn, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg.Type, msg.Payload
}

func TestWebSocketSubmitFlow(t *testing.T) {
	server, service := newTestServer(t)

	team, err := service.Join(context.Background(), domain.ModeStandard, "Alpha")
	if err != nil {
		t.Fatalf("join: %v", err)
	}

	conn := dial(t, server, "mode=standard&role=team&teamId="+team.ID)
	readNext(t, conn, "state")

	submit := map[string]any{
		"type": "submit",
		"payload": map[string]any{
			"itemId": "1.1",
			"code":   "profit = initial_investment * return_rate",
			"output": "Profit: $60000000.0",
		},
	}
	if err := conn.WriteJSON(submit); err != nil {
		t.Fatalf("write submit: %v", err)
	}

	_, payload := readNext(t, conn, "submission_result")
	if payload["correct"] != true || payload["totalScore"] != float64(100) {
		t.Fatalf("unexpected result payload %v", payload)
	}
}

func TestWebSocketTrainerReceivesScoreUpdates(t *testing.T) {
	server, service := newTestServer(t)

	trainer := dial(t, server, "mode=standard&role=trainer")
	readNext(t, trainer, "state")

	team, _ := service.Join(context.Background(), domain.ModeStandard, "Alpha")
	readNext(t, trainer, "team_joined")

	if _, err := service.Submit(context.Background(), domain.ModeStandard, team.ID, "1.1", "", "Profit: $60000000.0", ""); err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, payload := readNext(t, trainer, "score_update")
	if payload["score"] != float64(100) || payload["correct"] != true {
		t.Fatalf("unexpected score payload %v", payload)
	}
}

func TestWebSocketTrainerControls(t *testing.T) {
	server, service := newTestServer(t)

	trainer := dial(t, server, "mode=standard&role=trainer")
	readNext(t, trainer, "state")

	start := map[string]any{
		"type":    "start_round",
		"payload": map[string]any{"round": 1},
	}
	if err := trainer.WriteJSON(start); err != nil {
		t.Fatalf("write start_round: %v", err)
	}

	_, payload := readNext(t, trainer, "round_started")
	if payload["round"] != float64(1) || payload["title"] != "Variables & Basic Math" {
		t.Fatalf("unexpected round payload %v", payload)
	}

	snap, err := service.Snapshot(domain.ModeStandard, "")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !snap.Started || snap.CurrentRound != 1 {
		t.Fatalf("round not started: %+v", snap)
	}
}

func TestWebSocketRejectsTeamControl(t *testing.T) {
	server, service := newTestServer(t)

	team, _ := service.Join(context.Background(), domain.ModeStandard, "Alpha")
	conn := dial(t, server, "mode=standard&role=team&teamId="+team.ID)
	readNext(t, conn, "state")

	if err := conn.WriteJSON(map[string]any{"type": "reset", "payload": map[string]any{}}); err != nil {
		t.Fatalf("write reset: %v", err)
	}
	_, payload := readNext(t, conn, "error")
	if payload["message"] != errTrainerOnly.Error() {
		t.Fatalf("expected trainer-only error, got %v", payload)
	}
}

func TestWebSocketGenerateFlow(t *testing.T) {
	server, service := newTestServer(t)

	team, _ := service.Join(context.Background(), domain.ModePrompt, "Gamma")
	conn := dial(t, server, "mode=prompt&role=team&teamId="+team.ID)
	readNext(t, conn, "state")

	generate := map[string]any{
		"type":    "generate",
		"payload": map[string]any{"itemId": "1.1", "prompt": "print hi"},
	}
	if err := conn.WriteJSON(generate); err != nil {
		t.Fatalf("write generate: %v", err)
	}

	_, payload := readNext(t, conn, "generated_code")
	if payload["code"] != "print('hi')" {
		t.Fatalf("unexpected generated code %v", payload)
	}
}

func TestWebSocketMissingTeamID(t *testing.T) {
	server, _ := newTestServer(t)
	u := "ws" + server.URL[len("http"):] + "/ws?mode=standard&role=team"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	if err == nil {
		t.Fatalf("expected dial to fail without teamId")
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %+v", resp)
	}
}
