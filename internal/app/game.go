package app

import (
	"crypto/rand"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wajih79/kia-python-game/internal/catalog"
	"github.com/wajih79/kia-python-game/internal/domain"
	"github.com/wajih79/kia-python-game/internal/match"
	"github.com/wajih79/kia-python-game/internal/prompt"
)

// Game holds the mutable state of one game mode: the team roster and the
// round state machine. A single mutex guards every read-modify-write
// sequence; nothing under the lock performs I/O.
type Game struct {
	mode         domain.Mode
	catalog      *catalog.Catalog
	defaultLimit int // seconds, used while no round is active

	mu            sync.Mutex
	now           func() time.Time
	teams         map[string]*domain.Team
	currentRound  int
	roundStarted  time.Time
	started       bool
	paused        bool
	challengeType string
}

// NewGame builds an empty game for one mode.
func NewGame(mode domain.Mode, cat *catalog.Catalog, defaultLimitSecs int) *Game {
	return NewGameWithClock(mode, cat, defaultLimitSecs, time.Now)
}

// NewGameWithClock allows deterministic timestamps in tests.
func NewGameWithClock(mode domain.Mode, cat *catalog.Catalog, defaultLimitSecs int, now func() time.Time) *Game {
	return &Game{
		mode:         mode,
		catalog:      cat,
		defaultLimit: defaultLimitSecs,
		now:          now,
		teams:        make(map[string]*domain.Team),
	}
}

// Mode returns the game's mode tag.
func (g *Game) Mode() domain.Mode {
	return g.mode
}

// Catalog returns the game's immutable content registry.
func (g *Game) Catalog() *catalog.Catalog {
	return g.catalog
}

// RegisterTeam adds a team under a fresh opaque identifier.
func (g *Game) RegisterTeam(name string) (*domain.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyTeamName
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	id := newTeamID()
	for {
		if _, taken := g.teams[id]; !taken {
			break
		}
		id = newTeamID()
	}

	team := &domain.Team{
		ID:       id,
		Name:     name,
		Attempts: make(map[string]*domain.Attempt),
		JoinedAt: g.now(),
	}
	g.teams[id] = team
	return team, nil
}

// newTeamID returns an 8-character uppercase hex token. Four random bytes
// are plenty for a roster that lives for one training session.
func newTeamID() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand failure means a broken platform
	}
	return strings.ToUpper(hex.EncodeToString(buf))
}

// decayMultiplier returns the fraction of points kept on the nth attempt
// in prompt mode: full value first, 75% second, half from the third on.
func decayMultiplier(attemptNo int) float64 {
	switch {
	case attemptNo <= 1:
		return 1.0
	case attemptNo == 2:
		return 0.75
	default:
		return 0.5
	}
}

// Submit scores one observed output against a catalog item and records the
// attempt. The whole check-score-record sequence runs under the game lock,
// so two racing submissions for the same (team, item) cannot both win.
func (g *Game) Submit(teamID, itemID, code, output, promptText string) (domain.SubmissionResult, domain.TeamEntry, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	team, ok := g.teams[teamID]
	if !ok {
		return domain.SubmissionResult{}, domain.TeamEntry{}, domain.ErrNotRegistered
	}
	item, err := g.catalog.Item(itemID)
	if err != nil {
		return domain.SubmissionResult{}, domain.TeamEntry{}, err
	}

	// At-most-once scoring: a solved item is frozen, resubmissions are
	// acknowledged but never rescored.
	if prev, ok := team.Attempts[itemID]; ok && prev.Correct {
		return domain.SubmissionResult{
			Correct:       true,
			AlreadySolved: true,
			TotalScore:    team.Score,
		}, entryFor(team), nil
	}

	correct := match.Matches(output, item.ExpectedOutput)
	attemptNo := 1
	if prev, ok := team.Attempts[itemID]; ok {
		attemptNo = prev.Count + 1
	}

	points := 0
	var bonusReasons []string
	if correct {
		base := item.Points
		if g.mode == domain.ModePrompt {
			bonus := prompt.Evaluate(promptText)
			base += bonus.Points
			bonusReasons = bonus.Reasons
			points = int(float64(base) * decayMultiplier(attemptNo))
		} else {
			points = base
		}
		team.Score += points
	}

	team.Attempts[itemID] = &domain.Attempt{
		Count:      attemptNo,
		Correct:    correct,
		LastCode:   code,
		LastOutput: output,
		Points:     points,
		UpdatedAt:  g.now(),
	}

	result := domain.SubmissionResult{
		Correct:      correct,
		PointsEarned: points,
		TotalScore:   team.Score,
		BonusReasons: bonusReasons,
	}
	if !correct {
		// Never reveal the solution to a team that already has it right.
		result.ExpectedOutput = item.ExpectedOutput
		result.SolutionCode = item.SolutionCode
	}
	return result, entryFor(team), nil
}

// StartRound activates a round. Re-entrant: restarting the current round
// simply restarts its clock.
func (g *Game) StartRound(number int) (domain.Round, error) {
	round, err := g.catalog.Round(number)
	if err != nil {
		return domain.Round{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentRound = number
	g.started = true
	g.paused = false
	g.roundStarted = g.now()
	g.challengeType = round.ChallengeType
	return round, nil
}

// TogglePause flips the paused flag and returns the new value. The round
// clock keeps running while paused; remaining time is always derived from
// the wall-clock start. That mirrors the original game's behavior and is
// a known simplification, kept on purpose.
func (g *Game) TogglePause() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = !g.paused
	return g.paused
}

// Reset clears the roster and returns the machine to the not-started
// state. Irreversible.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.teams = make(map[string]*domain.Team)
	g.currentRound = 0
	g.started = false
	g.paused = false
	g.roundStarted = time.Time{}
	g.challengeType = ""
}

// RemainingSeconds derives the time left in the active round, or the full
// limit when nothing has started.
func (g *Game) RemainingSeconds() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.remainingLocked()
}

func (g *Game) remainingLocked() int {
	limit := g.defaultLimit
	if round, err := g.catalog.Round(g.currentRound); err == nil && round.TimeLimitSecs > 0 {
		limit = round.TimeLimitSecs
	}
	if !g.started || g.roundStarted.IsZero() {
		return limit
	}
	elapsed := int(g.now().Sub(g.roundStarted).Seconds())
	if remaining := limit - elapsed; remaining > 0 {
		return remaining
	}
	return 0
}

// Snapshot returns the team-facing state view. An unknown or empty teamID
// yields the shared state with zeroed personal fields.
func (g *Game) Snapshot(teamID string) domain.GameSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap := domain.GameSnapshot{
		Mode:          g.mode,
		CurrentRound:  g.currentRound,
		Started:       g.started,
		Paused:        g.paused,
		ChallengeType: g.challengeType,
		RemainingSecs: g.remainingLocked(),
	}
	if team, ok := g.teams[teamID]; ok {
		snap.YourScore = team.Score
		snap.YourAttempts = copyAttempts(team.Attempts)
	}
	return snap
}

// Leaderboard returns teams ordered by score descending, name ascending.
func (g *Game) Leaderboard() []domain.TeamEntry {
	g.mu.Lock()
	defer g.mu.Unlock()

	entries := make([]domain.TeamEntry, 0, len(g.teams))
	for _, team := range g.teams {
		entries = append(entries, entryFor(team))
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// HasTeam reports whether a team ID is registered.
func (g *Game) HasTeam(teamID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.teams[teamID]
	return ok
}

// TeamIDs returns a snapshot of the registered team identifiers.
func (g *Game) TeamIDs() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ids := make([]string, 0, len(g.teams))
	for id := range g.teams {
		ids = append(ids, id)
	}
	return ids
}

func entryFor(team *domain.Team) domain.TeamEntry {
	return domain.TeamEntry{ID: team.ID, Name: team.Name, Score: team.Score}
}

func copyAttempts(attempts map[string]*domain.Attempt) map[string]*domain.Attempt {
	out := make(map[string]*domain.Attempt, len(attempts))
	for id, attempt := range attempts {
		copied := *attempt
		out[id] = &copied
	}
	return out
}
