// Package match decides whether a team's observed program output satisfies
// an expected answer. Matching is deliberately tolerant: output comes from
// hand-written or machine-generated code, so formatting differences such as
// currency symbols, thousand separators or newline style must not cost a
// team their points.
package match

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// digits with optional thousands separators and an optional decimal part,
	// e.g. "1,175", "60000000.0", "146932807.68"
	numberRe = regexp.MustCompile(`[\d,]+\.?\d*`)
)

// Matches reports whether observed satisfies expected. Layered strategy,
// accepting on the first positive check:
//
//  1. equality after whitespace/case normalization
//  2. containment in either direction
//  3. line-wise equality, or every expected line contained in the output
//  4. numeric fallback: the last number on each side differs by < 1.0
//
// Empty input on either side never matches.
func Matches(observed, expected string) bool {
	if strings.TrimSpace(observed) == "" || strings.TrimSpace(expected) == "" {
		return false
	}

	obs := Normalize(observed)
	exp := Normalize(expected)

	if obs == exp {
		return true
	}
	if strings.Contains(obs, exp) || strings.Contains(exp, obs) {
		return true
	}
	if matchLines(observed, expected, obs) {
		return true
	}
	return matchNumbers(observed, expected)
}

// Normalize trims, collapses whitespace runs (including newlines) to a
// single space and lowercases, so layout differences do not affect
// comparison.
func Normalize(s string) string {
	return strings.ToLower(whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " "))
}

// matchLines compares the raw strings line by line. Equal ordered line
// sequences match; failing that, the output matches if every expected line
// occurs somewhere in it.
func matchLines(observed, expected, observedNorm string) bool {
	obsLines := splitLines(observed)
	expLines := splitLines(expected)
	if len(expLines) == 0 {
		return false
	}

	if len(obsLines) == len(expLines) {
		equal := true
		for i := range expLines {
			if obsLines[i] != expLines[i] {
				equal = false
				break
			}
		}
		if equal {
			return true
		}
	}

	for _, line := range expLines {
		if !strings.Contains(observedNorm, line) {
			return false
		}
	}
	return true
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// matchNumbers extracts every number-looking substring from both raw
// strings and compares the last one of each. An absolute difference below
// 1.0 counts as a match, which absorbs rounding noise like "$1175 million"
// vs "1175.4".
func matchNumbers(observed, expected string) bool {
	obsNums := numberRe.FindAllString(observed, -1)
	expNums := numberRe.FindAllString(expected, -1)
	if len(obsNums) == 0 || len(expNums) == 0 {
		return false
	}

	obsVal, okObs := parseNumber(obsNums[len(obsNums)-1])
	expVal, okExp := parseNumber(expNums[len(expNums)-1])
	if !okObs || !okExp {
		return false
	}

	diff := obsVal - expVal
	if diff < 0 {
		diff = -diff
	}
	return diff < 1.0
}

func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
