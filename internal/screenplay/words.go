package screenplay

import "strings"

// CountWords counts whitespace-separated words in a raw text unit.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.ReplaceAll(key, " ", "")
}
