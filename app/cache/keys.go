package cache

import (
	"strconv"
	"unicode/utf8"
)

// maxLoggedKeyRunes bounds how much of a query text appears in log lines
const maxLoggedKeyRunes = 80

// logKey renders a query text for log output. Keys themselves are never
// normalized: two texts differing only in case or whitespace are distinct.
func logKey(text string) string {
	if utf8.RuneCountInString(text) <= maxLoggedKeyRunes {
		return strconv.Quote(text)
	}
	runes := []rune(text)
	return strconv.Quote(string(runes[:maxLoggedKeyRunes])) + "..."
}
