package domain

import "time"

// Mode selects which of the two parallel games a request targets.
type Mode string

const (
	// ModeStandard is the classic fill-in-the-code quiz.
	ModeStandard Mode = "standard"
	// ModePrompt is the variant where teams write prompts that an external
	// service turns into code.
	ModePrompt Mode = "prompt"
)

// CatalogItem is one question/challenge with a known expected output.
// Items are immutable once the catalog is built.
type CatalogItem struct {
	ID             string `json:"id"` // "<round>.<index>"
	Question       string `json:"question"`
	CodeTemplate   string `json:"codeTemplate,omitempty"`
	SolutionCode   string `json:"solutionCode,omitempty"`
	ExpectedOutput string `json:"expectedOutput"`
	Points         int    `json:"points"`
	Hint           string `json:"hint,omitempty"`
	Bonus          bool   `json:"bonus,omitempty"`
}

// Round is a themed, time-boxed group of catalog items. Rounds are
// 1-indexed; round 0 means no round has started.
type Round struct {
	Number        int           `json:"number"`
	Title         string        `json:"title"`
	Theme         string        `json:"theme"`
	TimeLimitSecs int           `json:"timeLimitSecs,omitempty"`
	ChallengeType string        `json:"challengeType,omitempty"` // prompt mode: "speed", "efficiency" or "debug"
	Items         []CatalogItem `json:"items"`
}

// Attempt records a team's submissions against one catalog item.
// Once Correct is true the item's score contribution is frozen.
type Attempt struct {
	Count      int       `json:"count"`
	Correct    bool      `json:"correct"`
	LastCode   string    `json:"lastCode,omitempty"`
	LastOutput string    `json:"lastOutput"`
	Points     int       `json:"points"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Team is a participant group sharing one submission identity.
type Team struct {
	ID       string
	Name     string
	Score    int
	Attempts map[string]*Attempt
	JoinedAt time.Time
}

// TeamEntry is a snapshot-friendly view of a team for leaderboards.
type TeamEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// SubmissionResult summarizes the outcome of one Submit call.
// ExpectedOutput and SolutionCode are populated only for an incorrect
// answer, never for a correct or already-solved one.
type SubmissionResult struct {
	Correct        bool     `json:"correct"`
	AlreadySolved  bool     `json:"alreadySolved"`
	PointsEarned   int      `json:"pointsEarned"`
	TotalScore     int      `json:"totalScore"`
	ExpectedOutput string   `json:"expectedOutput,omitempty"`
	SolutionCode   string   `json:"solutionCode,omitempty"`
	BonusReasons   []string `json:"bonusReasons,omitempty"`
}

// GameSnapshot is the team-facing view of the current game state.
type GameSnapshot struct {
	Mode          Mode                `json:"mode"`
	CurrentRound  int                 `json:"currentRound"`
	Started       bool                `json:"started"`
	Paused        bool                `json:"paused"`
	ChallengeType string              `json:"challengeType,omitempty"`
	RemainingSecs int                 `json:"remainingSecs"`
	YourScore     int                 `json:"yourScore"`
	YourAttempts  map[string]*Attempt `json:"yourAttempts,omitempty"`
	PollActive    bool                `json:"pollActive"`
}

// PollResults is the tallied view of the pre-game poll.
type PollResults struct {
	Question   string         `json:"question"`
	Options    []string       `json:"options"`
	Percent    map[string]int `json:"results"`
	TotalVotes int            `json:"totalVotes"`
	Active     bool           `json:"active"`
}
