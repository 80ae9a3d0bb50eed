package app

import (
	"math"
	"sync"

	"github.com/wajih79/kia-python-game/internal/domain"
)

// Poll is the pre-game audience poll: one question, fixed options,
// last-vote-wins per team. It has its own lock and tally, independent of
// game scoring.
type Poll struct {
	question string
	options  []string

	mu     sync.Mutex
	active bool
	votes  map[string][]string
}

func NewPoll(question string, options []string) *Poll {
	return &Poll{
		question: question,
		options:  options,
		votes:    make(map[string][]string),
	}
}

// Start activates the poll and clears any votes from a previous run.
func (p *Poll) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = true
	p.votes = make(map[string][]string)
}

// Stop deactivates the poll. Votes are retained for result display until
// the next Start.
func (p *Poll) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = false
}

// Vote records a team's selection, replacing any prior one entirely.
func (p *Poll) Vote(teamID string, options []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return domain.ErrPollNotActive
	}
	p.votes[teamID] = append([]string(nil), options...)
	return nil
}

// Question returns the poll question and its fixed options.
func (p *Poll) Question() (string, []string) {
	return p.question, p.options
}

// Tally counts, for every option, the share of voting teams that selected
// it, as a rounded percentage. Unknown option labels in votes are ignored.
func (p *Poll) Tally() domain.PollResults {
	p.mu.Lock()
	defer p.mu.Unlock()

	counts := make(map[string]int, len(p.options))
	for _, option := range p.options {
		counts[option] = 0
	}
	for _, selected := range p.votes {
		for _, option := range selected {
			if _, known := counts[option]; known {
				counts[option]++
			}
		}
	}

	percent := make(map[string]int, len(counts))
	total := len(p.votes)
	for option, count := range counts {
		if total == 0 {
			percent[option] = 0
			continue
		}
		percent[option] = int(math.Round(float64(count) / float64(total) * 100))
	}

	return domain.PollResults{
		Question:   p.question,
		Options:    p.options,
		Percent:    percent,
		TotalVotes: total,
		Active:     p.active,
	}
}

// Active reports whether the poll is currently accepting votes.
func (p *Poll) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}
