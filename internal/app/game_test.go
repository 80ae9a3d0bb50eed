package app

import (
	"errors"
	"testing"
	"time"

	"github.com/wajih79/kia-python-game/internal/catalog"
	"github.com/wajih79/kia-python-game/internal/domain"
)

func standardGame(now func() time.Time) *Game {
	cat := catalog.New([]domain.Round{
		{
			Number: 1, Title: "Variables & Basic Math", Theme: "Calculate Portfolio Returns", TimeLimitSecs: 300,
			Items: []domain.CatalogItem{
				{ID: "1.1", ExpectedOutput: "Profit: $60000000.0", SolutionCode: "profit = x * r", Points: 100},
				{ID: "1.2", ExpectedOutput: "Final Value: $146932807.68", Points: 100},
			},
		},
	})
	return NewGameWithClock(domain.ModeStandard, cat, 300, now)
}

func promptGame(now func() time.Time) *Game {
	cat := catalog.New([]domain.Round{
		{
			Number: 1, Title: "Speed Round", TimeLimitSecs: 300, ChallengeType: "speed",
			Items: []domain.CatalogItem{
				{ID: "1.1", ExpectedOutput: "Total: 42", Points: 100},
			},
		},
	})
	return NewGameWithClock(domain.ModePrompt, cat, 300, now)
}

func TestSubmitCorrectAnswerScenario(t *testing.T) {
	game := standardGame(time.Now)
	team, err := game.RegisterTeam("Alpha")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	result, entry, err := game.Submit(team.ID, "1.1", "profit = 60000000.0", "Profit: $60000000.0", "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Correct || result.PointsEarned != 100 || result.TotalScore != 100 {
		t.Fatalf("expected correct/100/100, got %+v", result)
	}
	if entry.Score != 100 {
		t.Fatalf("expected entry score 100, got %d", entry.Score)
	}
	if result.ExpectedOutput != "" || result.SolutionCode != "" {
		t.Fatalf("solution must not leak on a correct answer: %+v", result)
	}
}

func TestSubmitIdempotentOnSolvedItem(t *testing.T) {
	game := standardGame(time.Now)
	team, _ := game.RegisterTeam("Alpha")

	if _, _, err := game.Submit(team.ID, "1.1", "", "Profit: $60000000.0", ""); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	result, _, err := game.Submit(team.ID, "1.1", "", "anything at all", "")
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if !result.AlreadySolved || !result.Correct {
		t.Fatalf("expected already-solved acknowledgement, got %+v", result)
	}
	if result.PointsEarned != 0 || result.TotalScore != 100 {
		t.Fatalf("resubmission must not rescore: %+v", result)
	}
	if result.ExpectedOutput != "" || result.SolutionCode != "" {
		t.Fatalf("solution must not leak on a redundant resubmission")
	}
}

func TestSubmitIncorrectRevealsSolution(t *testing.T) {
	game := standardGame(time.Now)
	team, _ := game.RegisterTeam("Alpha")

	result, _, err := game.Submit(team.ID, "1.1", "profit = 0", "Profit: $7", "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Correct || result.PointsEarned != 0 {
		t.Fatalf("expected incorrect with zero points, got %+v", result)
	}
	if result.ExpectedOutput != "Profit: $60000000.0" || result.SolutionCode != "profit = x * r" {
		t.Fatalf("expected solution feedback on wrong answer, got %+v", result)
	}

	attempts := game.Snapshot(team.ID).YourAttempts
	if attempts["1.1"].Count != 1 || attempts["1.1"].Correct {
		t.Fatalf("expected recorded failed attempt, got %+v", attempts["1.1"])
	}
}

func TestScoreMonotonicity(t *testing.T) {
	game := standardGame(time.Now)
	team, _ := game.RegisterTeam("Alpha")

	lastScore := 0
	submissions := []struct{ item, output string }{
		{"1.1", "wrong"},
		{"1.1", "Profit: $60000000.0"},
		{"1.2", "garbage"},
		{"1.1", "Profit: $60000000.0"},
		{"1.2", "Final Value: $146932807.68"},
	}
	for i, sub := range submissions {
		result, _, err := game.Submit(team.ID, sub.item, "", sub.output, "")
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if result.TotalScore < lastScore {
			t.Fatalf("score decreased from %d to %d at submission %d", lastScore, result.TotalScore, i)
		}
		lastScore = result.TotalScore
	}
	if lastScore != 200 {
		t.Fatalf("expected final score 200, got %d", lastScore)
	}
}

func TestPromptModeAttemptDecay(t *testing.T) {
	cases := []struct {
		failures int
		want     int
	}{
		{0, 100}, // first attempt: full value
		{1, 75},  // second attempt: 75%
		{2, 50},  // third attempt: 50%
		{5, 50},  // later attempts stay at 50%
	}
	for _, tc := range cases {
		game := promptGame(time.Now)
		team, _ := game.RegisterTeam("Alpha")
		for i := 0; i < tc.failures; i++ {
			if _, _, err := game.Submit(team.ID, "1.1", "", "wrong answer", "x"); err != nil {
				t.Fatalf("failed attempt: %v", err)
			}
		}
		// A 200-word prompt earns no quality bonus, leaving the base value.
		longPrompt := ""
		for i := 0; i < 200; i++ {
			longPrompt += "word "
		}
		result, _, err := game.Submit(team.ID, "1.1", "", "Total: 42", longPrompt)
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if result.PointsEarned != tc.want {
			t.Errorf("after %d failures: expected %d points, got %d", tc.failures, tc.want, result.PointsEarned)
		}
	}
}

func TestPromptModeBonusAddsBeforeDecay(t *testing.T) {
	game := promptGame(time.Now)
	team, _ := game.RegisterTeam("Alpha")

	// Fail once so the winning attempt is the second (75%).
	_, _, _ = game.Submit(team.ID, "1.1", "", "nope", "x")

	// Short prompt: conciseness bonus +15 on top of 100 base.
	result, _, err := game.Submit(team.ID, "1.1", "", "Total: 42", "print the total")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	// int((100 + 15) * 0.75) = 86
	if result.PointsEarned != 86 {
		t.Fatalf("expected 86 points, got %d", result.PointsEarned)
	}
	if len(result.BonusReasons) == 0 {
		t.Fatalf("expected bonus reasons for feedback display")
	}
}

func TestSubmitPreconditions(t *testing.T) {
	game := standardGame(time.Now)
	if _, _, err := game.Submit("NOPE", "1.1", "", "x", ""); !errors.Is(err, domain.ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}

	team, _ := game.RegisterTeam("Alpha")
	if _, _, err := game.Submit(team.ID, "9.9", "", "x", ""); !errors.Is(err, domain.ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
	if game.Snapshot(team.ID).YourScore != 0 {
		t.Fatalf("failed precondition must not mutate state")
	}
}

func TestRoundClockAndPause(t *testing.T) {
	current := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	now := func() time.Time { return current }
	game := standardGame(now)

	if got := game.RemainingSeconds(); got != 300 {
		t.Fatalf("expected full limit before start, got %d", got)
	}

	if _, err := game.StartRound(1); err != nil {
		t.Fatalf("start round: %v", err)
	}
	current = current.Add(40 * time.Second)
	if got := game.RemainingSeconds(); got != 260 {
		t.Fatalf("expected 260s remaining, got %d", got)
	}

	// Pausing does not stop the clock; remaining time is wall-clock based.
	if paused := game.TogglePause(); !paused {
		t.Fatalf("expected paused true")
	}
	current = current.Add(60 * time.Second)
	if got := game.RemainingSeconds(); got != 200 {
		t.Fatalf("expected clock to keep running while paused, got %d", got)
	}
	if paused := game.TogglePause(); paused {
		t.Fatalf("expected paused false after second toggle")
	}

	current = current.Add(time.Hour)
	if got := game.RemainingSeconds(); got != 0 {
		t.Fatalf("expected clamped zero after expiry, got %d", got)
	}
}

func TestStartRoundReentrant(t *testing.T) {
	current := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	now := func() time.Time { return current }
	game := standardGame(now)

	_, _ = game.StartRound(1)
	current = current.Add(250 * time.Second)
	if _, err := game.StartRound(1); err != nil {
		t.Fatalf("restart round: %v", err)
	}
	if got := game.RemainingSeconds(); got != 300 {
		t.Fatalf("restarting a round must restart its clock, got %d", got)
	}

	if _, err := game.StartRound(99); !errors.Is(err, domain.ErrUnknownRound) {
		t.Fatalf("expected ErrUnknownRound, got %v", err)
	}
}

func TestResetClearsRoster(t *testing.T) {
	game := standardGame(time.Now)
	team, _ := game.RegisterTeam("Alpha")
	_, _ = game.StartRound(1)
	_, _, _ = game.Submit(team.ID, "1.1", "", "Profit: $60000000.0", "")

	game.Reset()

	if game.HasTeam(team.ID) {
		t.Fatalf("reset must clear the roster")
	}
	snap := game.Snapshot(team.ID)
	if snap.CurrentRound != 0 || snap.Started || snap.Paused {
		t.Fatalf("reset must return to not-started, got %+v", snap)
	}
	if got := game.RemainingSeconds(); got != 300 {
		t.Fatalf("expected full time limit after reset, got %d", got)
	}
}

func TestRegisterTeamIDsAreOpaque(t *testing.T) {
	game := standardGame(time.Now)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		team, err := game.RegisterTeam("Team")
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if len(team.ID) != 8 {
			t.Fatalf("expected 8-char token, got %q", team.ID)
		}
		if seen[team.ID] {
			t.Fatalf("duplicate team id %q", team.ID)
		}
		seen[team.ID] = true
	}

	if _, err := game.RegisterTeam("   "); !errors.Is(err, domain.ErrEmptyTeamName) {
		t.Fatalf("expected ErrEmptyTeamName, got %v", err)
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	game := standardGame(time.Now)
	alpha, _ := game.RegisterTeam("Alpha")
	beta, _ := game.RegisterTeam("Beta")
	_, _ = game.RegisterTeam("Zero")

	_, _, _ = game.Submit(alpha.ID, "1.1", "", "Profit: $60000000.0", "")
	_, _, _ = game.Submit(beta.ID, "1.1", "", "Profit: $60000000.0", "")
	_, _, _ = game.Submit(beta.ID, "1.2", "", "Final Value: $146932807.68", "")

	entries := game.Leaderboard()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Name != "Beta" || entries[0].Score != 200 {
		t.Fatalf("expected Beta leading with 200, got %+v", entries[0])
	}
	if entries[1].Name != "Alpha" || entries[2].Name != "Zero" {
		t.Fatalf("unexpected ordering: %+v", entries)
	}
}
