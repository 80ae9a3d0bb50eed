package genai

import "strings"

// Sanitize strips markdown code fences from generated text. Models often
// wrap code in ```python ... ``` blocks even when asked not to; the first
// fenced block wins, bare text passes through trimmed.
func Sanitize(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.Contains(trimmed, "```") {
		return trimmed
	}

	start := strings.Index(trimmed, "```")
	rest := trimmed[start+3:]

	// Drop a language tag on the fence line ("python", "py", ...).
	if newline := strings.IndexByte(rest, '\n'); newline >= 0 {
		firstLine := strings.TrimSpace(rest[:newline])
		if firstLine == "" || isLanguageTag(firstLine) {
			rest = rest[newline+1:]
		}
	}

	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

func isLanguageTag(s string) bool {
	if len(s) > 12 {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
