package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/wajih79/kia-python-game/internal/app"
	"github.com/wajih79/kia-python-game/internal/domain"
)

var (
	errInvalidPayload  = errors.New("invalid payload")
	errTrainerOnly     = errors.New("trainer role required")
	errUnsupportedType = errors.New("unsupported message type")
)

// Handler serves the small HTTP surface around the websocket: team
// registration, the join-link QR code, poll results and health.
type Handler struct {
	service *app.GameService
	joinURL string
}

func NewHandler(service *app.GameService, joinURL string) *Handler {
	return &Handler{service: service, joinURL: joinURL}
}

type joinRequest struct {
	Name string `json:"name"`
	Mode string `json:"mode"`
}

type joinResponse struct {
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
}

// Join registers a team and returns its opaque identifier. The client
// stores the token and presents it on the websocket.
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	mode := domain.Mode(req.Mode)
	if mode == "" {
		mode = domain.ModeStandard
	}

	team, err := h.service.Join(r.Context(), mode, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, joinResponse{TeamID: team.ID, TeamName: team.Name})
}

const qrSize = 256

// QR serves a PNG QR code pointing at the join page, for the trainer to
// project.
func (h *Handler) QR(w http.ResponseWriter, r *http.Request) {
	png, err := qrcode.Encode(h.joinURL, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr encoding failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	_, _ = w.Write(png)
}

// PollResults returns the current poll tally as JSON.
func (h *Handler) PollResults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.PollResults())
}

// Leaderboard returns the scoreboard for the requested mode.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	mode := domain.Mode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = domain.ModeStandard
	}
	entries, err := h.service.Leaderboard(mode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Health is the liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotRegistered):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrUnknownItem),
		errors.Is(err, domain.ErrUnknownRound),
		errors.Is(err, domain.ErrPollNotActive),
		errors.Is(err, domain.ErrEmptyTeamName):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrGenerationFailed):
		status = http.StatusBadGateway
	}
	http.Error(w, err.Error(), status)
}
