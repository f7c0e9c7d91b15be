package redact

import (
	"regexp"
	"strings"
)

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for secrets that can show up in API
// error payloads and transport errors.
var secretPatterns = []*regexp.Regexp{
	// Bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// JWTs (three base64 segments separated by dots)
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// OpenAI API keys, including project keys
	regexp.MustCompile(`sk-(proj-)?[A-Za-z0-9_-]{20,}`),
	// Generic secrets/tokens in assignments
	regexp.MustCompile(`(?i)(api[_-]?key|secret|token|password)\s*[:=]\s*["']([^"']{8,})["']`),
}

// Secrets replaces detected secrets in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllString(result, placeholder)
	}
	return result
}

// Known replaces every occurrence of the given secret values in text, then
// applies the heuristic patterns. Empty values are ignored.
func Known(text string, values ...string) string {
	for _, v := range values {
		if v == "" {
			continue
		}
		text = strings.ReplaceAll(text, v, placeholder)
	}
	return Secrets(text)
}

// Mask shows just enough of a token to recognise it.
func Mask(token string) string {
	if token == "" {
		return ""
	}
	if len(token) < 16 {
		return placeholder
	}
	return token[:4] + "..." + token[len(token)-4:]
}
