package ai

import "strings"

// StripFences recovers a JSON payload candidate from model output that
// may be wrapped in a markdown code fence, with or without a language
// tag. First match wins; nested fences are not handled.
func StripFences(text string) string {
	trimmed := strings.TrimSpace(text)

	switch {
	case strings.HasPrefix(trimmed, "```json"):
		trimmed = strings.TrimPrefix(trimmed, "```json")
	case strings.HasPrefix(trimmed, "```"):
		trimmed = strings.TrimPrefix(trimmed, "```")
	default:
		return trimmed
	}

	for strings.HasSuffix(trimmed, "```") {
		trimmed = strings.TrimSuffix(trimmed, "```")
	}
	return strings.TrimSpace(trimmed)
}
