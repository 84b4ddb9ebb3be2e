package search

import (
	"strings"
	"unicode"
)

// Snippet returns the text around the first case-insensitive occurrence of
// query, widened by window runes on each side and out to word boundaries.
// Without an occurrence it returns the head of text. Elided ends are marked
// with "...".
func Snippet(text, query string, window int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if window <= 0 {
		window = 40
	}

	start, end := indexFold(runes, []rune(query))
	if start < 0 {
		if len(runes) > window*2 {
			return string(runes[:window*2]) + "..."
		}
		return text
	}

	from := max(start-window, 0)
	to := min(end+window, len(runes))
	for from > 0 && runes[from-1] != ' ' {
		from--
	}
	for to < len(runes) && runes[to] != ' ' {
		to++
	}

	prefix, suffix := "", ""
	if from > 0 {
		prefix = "..."
	}
	if to < len(runes) {
		suffix = "..."
	}
	return prefix + strings.TrimSpace(string(runes[from:to])) + suffix
}

// indexFold finds needle in haystack comparing rune by rune under simple case
// folding, returning rune offsets or -1.
func indexFold(haystack, needle []rune) (int, int) {
	if len(needle) == 0 {
		return -1, -1
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, r := range needle {
			if unicode.ToLower(haystack[i+j]) != unicode.ToLower(r) {
				continue outer
			}
		}
		return i, i + len(needle)
	}
	return -1, -1
}
