package validate

import (
	"regexp"
	"strings"
)

const (
	MinPromptLen = 10
	MaxPromptLen = 2000
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// SanitizePrompt strips HTML-like tags, trims surrounding whitespace and
// truncates the prompt to MaxPromptLen runes. Applying it twice yields the
// same result.
func SanitizePrompt(prompt string) string {
	s := tagPattern.ReplaceAllString(prompt, "")
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) > MaxPromptLen {
		s = strings.TrimSpace(string(runes[:MaxPromptLen]))
	}
	return s
}

// IsValidPrompt reports whether a sanitized prompt meets the minimum length.
func IsValidPrompt(sanitized string) bool {
	return len([]rune(sanitized)) >= MinPromptLen
}
