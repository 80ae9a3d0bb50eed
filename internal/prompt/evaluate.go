// Package prompt scores the quality of a natural-language prompt written by
// a team in the prompt-challenge game. Well-structured, specific and
// concise prompts earn bonus points on top of the challenge's base value.
package prompt

import (
	"regexp"
	"strings"
)

// Bonus is the additive outcome of evaluating one prompt. Reasons lists
// the heuristics that fired, for feedback display.
type Bonus struct {
	Points  int      `json:"points"`
	Reasons []string `json:"reasons"`
}

var structureRe = regexp.MustCompile(`(?m)^\s*(\d+[.)]|[-*•])\s`)

var formatVocabulary = []string{
	"float", "integer", "string", "decimal", "format", ".2f", ":,", "comma",
}

var exampleMarkers = []string{
	"for example", "e.g.", "such as", "like this:", "output:",
}

// Evaluate scores a prompt against a fixed set of independent heuristics:
// structure markers (+15), formatting/type vocabulary (+10), an example
// (+10) and a conciseness tier based on word count (+15/+10/+5/0).
func Evaluate(text string) Bonus {
	var b Bonus
	lower := strings.ToLower(text)

	if structureRe.MatchString(text) {
		b.add(15, "Structured prompt with numbered or bulleted steps (+15)")
	}

	for _, word := range formatVocabulary {
		if strings.Contains(lower, word) {
			b.add(10, "Mentions output format or data types (+10)")
			break
		}
	}

	for _, marker := range exampleMarkers {
		if strings.Contains(lower, marker) {
			b.add(10, "Includes an example of the desired output (+10)")
			break
		}
	}

	switch words := len(strings.Fields(text)); {
	case words < 50:
		b.add(15, "Concise prompt under 50 words (+15)")
	case words < 100:
		b.add(10, "Reasonably concise prompt under 100 words (+10)")
	case words < 150:
		b.add(5, "Prompt under 150 words (+5)")
	}

	return b
}

func (b *Bonus) add(points int, reason string) {
	b.Points += points
	b.Reasons = append(b.Reasons, reason)
}
