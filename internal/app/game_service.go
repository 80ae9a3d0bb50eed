// Package app contains the game's core use cases: team registration,
// submission scoring, round control, the audience poll and the prompt
// generation flow. All state is in process memory; a restart starts a
// fresh game.
package app

import (
	"context"
	"fmt"

	"github.com/wajih79/kia-python-game/internal/catalog"
	"github.com/wajih79/kia-python-game/internal/domain"
	"github.com/wajih79/kia-python-game/internal/genai"
	"github.com/wajih79/kia-python-game/internal/notify"
)

// GameService ties the per-mode games, the poll, the notifier and the
// code-generation collaborator together. Trainer and team operations all
// enter through here.
type GameService struct {
	games     map[domain.Mode]*Game
	poll      *Poll
	notifier  notify.Broadcaster
	generator genai.Generator
}

// ServiceConfig carries the dependencies for NewGameService.
type ServiceConfig struct {
	StandardCatalog *catalog.Catalog
	PromptCatalog   *catalog.Catalog
	Notifier        notify.Broadcaster
	Generator       genai.Generator
	PollQuestion    string
	PollOptions     []string
	RoundLimitSecs  int
}

func NewGameService(cfg ServiceConfig) *GameService {
	return &GameService{
		games: map[domain.Mode]*Game{
			domain.ModeStandard: NewGame(domain.ModeStandard, cfg.StandardCatalog, cfg.RoundLimitSecs),
			domain.ModePrompt:   NewGame(domain.ModePrompt, cfg.PromptCatalog, cfg.RoundLimitSecs),
		},
		poll:      NewPoll(cfg.PollQuestion, cfg.PollOptions),
		notifier:  cfg.Notifier,
		generator: cfg.Generator,
	}
}

// Game returns the state container for one mode.
func (s *GameService) Game(mode domain.Mode) (*Game, error) {
	game, ok := s.games[mode]
	if !ok {
		return nil, fmt.Errorf("unknown game mode %q", mode)
	}
	return game, nil
}

// Join registers a new team and announces it to the trainer dashboard.
func (s *GameService) Join(_ context.Context, mode domain.Mode, name string) (*domain.Team, error) {
	game, err := s.Game(mode)
	if err != nil {
		return nil, err
	}
	team, err := game.RegisterTeam(name)
	if err != nil {
		return nil, err
	}
	s.notifier.Broadcast(trainerChannel(mode), notify.EventTeamJoined, map[string]any{
		"team_id":   team.ID,
		"team_name": team.Name,
		"score":     team.Score,
	})
	return team, nil
}

// Submit scores a team's observed output for one catalog item and fans out
// the score change. In prompt mode, promptText feeds the quality bonus.
func (s *GameService) Submit(_ context.Context, mode domain.Mode, teamID, itemID, code, output, promptText string) (domain.SubmissionResult, error) {
	game, err := s.Game(mode)
	if err != nil {
		return domain.SubmissionResult{}, err
	}
	result, entry, err := game.Submit(teamID, itemID, code, output, promptText)
	if err != nil {
		return domain.SubmissionResult{}, err
	}
	s.notifier.Broadcast(trainerChannel(mode), notify.EventScoreUpdate, map[string]any{
		"team_id":   entry.ID,
		"team_name": entry.Name,
		"score":     entry.Score,
		"item_id":   itemID,
		"correct":   result.Correct,
		"points":    result.PointsEarned,
	})
	return result, nil
}

// GenerateCode turns a team's prompt into code via the external service.
// The call happens before any state is touched; on failure nothing is
// mutated and the team keeps its attempt count.
func (s *GameService) GenerateCode(ctx context.Context, teamID, itemID, promptText, seedData string) (string, error) {
	game := s.games[domain.ModePrompt]
	if !game.HasTeam(teamID) {
		return "", domain.ErrNotRegistered
	}
	item, err := game.Catalog().Item(itemID)
	if err != nil {
		return "", err
	}
	return s.generator.Generate(ctx, promptText, item.Question, item.Hint)
}

// StartRound activates a round and broadcasts its metadata to everyone in
// that mode.
func (s *GameService) StartRound(mode domain.Mode, number int) (domain.Round, error) {
	game, err := s.Game(mode)
	if err != nil {
		return domain.Round{}, err
	}
	round, err := game.StartRound(number)
	if err != nil {
		return domain.Round{}, err
	}
	s.broadcastToGame(mode, game, notify.EventRoundStarted, map[string]any{
		"round":      round.Number,
		"title":      round.Title,
		"theme":      round.Theme,
		"time_limit": game.RemainingSeconds(),
	})
	return round, nil
}

// TogglePause flips the pause flag for one mode and announces it.
func (s *GameService) TogglePause(mode domain.Mode) (bool, error) {
	game, err := s.Game(mode)
	if err != nil {
		return false, err
	}
	paused := game.TogglePause()
	s.broadcastToGame(mode, game, notify.EventGamePaused, map[string]any{"paused": paused})
	return paused, nil
}

// Reset wipes one mode's roster and round state. Broadcast goes out after
// the wipe, so late subscribers see a clean slate either way.
func (s *GameService) Reset(mode domain.Mode) error {
	game, err := s.Game(mode)
	if err != nil {
		return err
	}
	ids := game.TeamIDs()
	game.Reset()
	s.notifier.Broadcast(trainerChannel(mode), notify.EventGameReset, struct{}{})
	for _, id := range ids {
		s.notifier.Broadcast(teamChannel(mode, id), notify.EventGameReset, struct{}{})
	}
	return nil
}

// Snapshot returns the team-facing state for one mode.
func (s *GameService) Snapshot(mode domain.Mode, teamID string) (domain.GameSnapshot, error) {
	game, err := s.Game(mode)
	if err != nil {
		return domain.GameSnapshot{}, err
	}
	snap := game.Snapshot(teamID)
	snap.PollActive = s.poll.Active()
	return snap, nil
}

// Leaderboard returns the sorted scoreboard for one mode.
func (s *GameService) Leaderboard(mode domain.Mode) ([]domain.TeamEntry, error) {
	game, err := s.Game(mode)
	if err != nil {
		return nil, err
	}
	return game.Leaderboard(), nil
}

// StartPoll activates the audience poll and announces it everywhere.
func (s *GameService) StartPoll() {
	s.poll.Start()
	question, options := s.poll.Question()
	s.notifier.BroadcastAll(notify.EventPollStarted, map[string]any{
		"question": question,
		"options":  options,
	})
}

// StopPoll deactivates the poll; votes stay visible until the next start.
func (s *GameService) StopPoll() {
	s.poll.Stop()
	s.notifier.BroadcastAll(notify.EventPollStopped, struct{}{})
}

// Vote records a team's poll selection. The voter must be registered in
// the standard game roster.
func (s *GameService) Vote(teamID string, options []string) (domain.PollResults, error) {
	if !s.games[domain.ModeStandard].HasTeam(teamID) {
		return domain.PollResults{}, domain.ErrNotRegistered
	}
	if err := s.poll.Vote(teamID, options); err != nil {
		return domain.PollResults{}, err
	}
	results := s.poll.Tally()
	s.notifier.Broadcast(notify.ChannelTrainer, notify.EventPollUpdate, map[string]any{
		"results":     results.Percent,
		"total_votes": results.TotalVotes,
	})
	return results, nil
}

// PollResults returns the current tally.
func (s *GameService) PollResults() domain.PollResults {
	return s.poll.Tally()
}

func (s *GameService) broadcastToGame(mode domain.Mode, game *Game, event string, payload any) {
	s.notifier.Broadcast(trainerChannel(mode), event, payload)
	for _, id := range game.TeamIDs() {
		s.notifier.Broadcast(teamChannel(mode, id), event, payload)
	}
}

func trainerChannel(mode domain.Mode) string {
	if mode == domain.ModePrompt {
		return notify.ChannelPromptTrainer
	}
	return notify.ChannelTrainer
}

func teamChannel(mode domain.Mode, teamID string) string {
	if mode == domain.ModePrompt {
		return notify.PromptTeamChannel(teamID)
	}
	return notify.TeamChannel(teamID)
}
