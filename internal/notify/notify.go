// Package notify fans out game events to the trainer dashboard and to team
// devices. Delivery is fire-and-forget: scoring must never stall behind a
// slow websocket.
package notify

// Event is one state-change notification on a named channel.
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"payload"`
}

// Broadcaster publishes events to named channels ("trainer", "team_<id>",
// "prompt_trainer", "prompt_team_<id>").
type Broadcaster interface {
	Broadcast(channel, event string, payload any)
	BroadcastAll(event string, payload any)
}

// Event names emitted by the game service.
const (
	EventTeamJoined   = "team_joined"
	EventScoreUpdate  = "score_update"
	EventRoundStarted = "round_started"
	EventGamePaused   = "game_paused"
	EventGameReset    = "game_reset"
	EventPollStarted  = "poll_started"
	EventPollUpdate   = "poll_update"
	EventPollStopped  = "poll_stopped"
)

// ChannelTrainer and friends name the well-known channels.
const (
	ChannelTrainer       = "trainer"
	ChannelPromptTrainer = "prompt_trainer"
)

// TeamChannel returns the channel name for one team in the standard game.
func TeamChannel(teamID string) string {
	return "team_" + teamID
}

// PromptTeamChannel returns the channel name for one team in the prompt game.
func PromptTeamChannel(teamID string) string {
	return "prompt_team_" + teamID
}
