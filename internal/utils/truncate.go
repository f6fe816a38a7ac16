package utils

import "strings"

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	cut := TruncateRunes(s, limit)
	if limit > 0 && len(cut) < len(s) {
		return cut + "..."
	}
	return cut
}

// TruncateRunes returns at most limit runes of s without splitting a multi-byte character.
func TruncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
