package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/wajih79/kia-python-game/internal/app"
	"github.com/wajih79/kia-python-game/internal/domain"
	"github.com/wajih79/kia-python-game/internal/notify"
)

// WSHandler upgrades clients to websockets and wires them into the game
// use cases. Trainers get the control surface; teams get submissions and
// votes. Both receive the event stream of their channel.
type WSHandler struct {
	service  *app.GameService
	hub      *notify.Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService, hub *notify.Hub) *WSHandler {
	return &WSHandler{
		service: service,
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type submitPayload struct {
	ItemID string `json:"itemId"`
	Code   string `json:"code"`
	Output string `json:"output"`
	Prompt string `json:"prompt"`
}

type generatePayload struct {
	ItemID string `json:"itemId"`
	Prompt string `json:"prompt"`
	Seed   string `json:"seed"`
}

type votePayload struct {
	Options []string `json:"options"`
}

type startRoundPayload struct {
	Round int `json:"round"`
}

// ServeWS handles both roles. Query parameters: mode (standard|prompt),
// role (trainer|team) and teamId for the team role.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	mode := domain.Mode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = domain.ModeStandard
	}
	role := r.URL.Query().Get("role")
	teamID := r.URL.Query().Get("teamId")

	var channel string
	switch {
	case role == "trainer" && mode == domain.ModePrompt:
		channel = notify.ChannelPromptTrainer
	case role == "trainer":
		channel = notify.ChannelTrainer
	case teamID != "" && mode == domain.ModePrompt:
		channel = notify.PromptTeamChannel(teamID)
	case teamID != "":
		channel = notify.TeamChannel(teamID)
	default:
		http.Error(w, "missing teamId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, cancel := h.hub.Subscribe(channel)
	defer cancel()

	send := make(chan outboundMessage, 16)
	done := make(chan struct{})
	writerDone := make(chan struct{})
	eventsDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(eventsDone)
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage{Type: ev.Name, Payload: ev.Payload}:
				case <-done:
					return
				}
			case <-done:
				return
			}
		}
	}()

	snap, err := h.service.Snapshot(mode, teamID)
	if err == nil {
		send <- outboundMessage{Type: "state", Payload: snap}
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		h.dispatch(r.Context(), send, mode, role, teamID, inbound)
	}

	close(done)
	<-eventsDone
	close(send)
	<-writerDone
}

func (h *WSHandler) dispatch(ctx context.Context, send chan<- outboundMessage, mode domain.Mode, role, teamID string, inbound inboundMessage) {
	fail := func(err error) {
		send <- outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}}
	}

	switch inbound.Type {
	case "submit":
		var payload submitPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			fail(errInvalidPayload)
			return
		}
		result, err := h.service.Submit(ctx, mode, teamID, payload.ItemID, payload.Code, payload.Output, payload.Prompt)
		if err != nil {
			fail(err)
			return
		}
		send <- outboundMessage{Type: "submission_result", Payload: result}

	case "generate":
		var payload generatePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			fail(errInvalidPayload)
			return
		}
		code, err := h.service.GenerateCode(ctx, teamID, payload.ItemID, payload.Prompt, payload.Seed)
		if err != nil {
			fail(err)
			return
		}
		send <- outboundMessage{Type: "generated_code", Payload: map[string]string{"code": code}}

	case "vote":
		var payload votePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			fail(errInvalidPayload)
			return
		}
		results, err := h.service.Vote(teamID, payload.Options)
		if err != nil {
			fail(err)
			return
		}
		send <- outboundMessage{Type: "vote_accepted", Payload: results}

	case "state":
		snap, err := h.service.Snapshot(mode, teamID)
		if err != nil {
			fail(err)
			return
		}
		send <- outboundMessage{Type: "state", Payload: snap}

	case "start_round":
		if role != "trainer" {
			fail(errTrainerOnly)
			return
		}
		var payload startRoundPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			fail(errInvalidPayload)
			return
		}
		if _, err := h.service.StartRound(mode, payload.Round); err != nil {
			fail(err)
			return
		}

	case "toggle_pause":
		if role != "trainer" {
			fail(errTrainerOnly)
			return
		}
		if _, err := h.service.TogglePause(mode); err != nil {
			fail(err)
		}

	case "reset":
		if role != "trainer" {
			fail(errTrainerOnly)
			return
		}
		if err := h.service.Reset(mode); err != nil {
			fail(err)
		}

	case "start_poll":
		if role != "trainer" {
			fail(errTrainerOnly)
			return
		}
		h.service.StartPoll()

	case "stop_poll":
		if role != "trainer" {
			fail(errTrainerOnly)
			return
		}
		h.service.StopPoll()

	case "leaderboard":
		entries, err := h.service.Leaderboard(mode)
		if err != nil {
			fail(err)
			return
		}
		send <- outboundMessage{Type: "leaderboard", Payload: entries}

	default:
		fail(errUnsupportedType)
	}
}
