package utils

import "strings"

// TruncateForLog shortens s to limit runes, appending an ellipsis when truncated.
// Free-text values such as search queries and error bodies pass through it before
// they become log fields.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
