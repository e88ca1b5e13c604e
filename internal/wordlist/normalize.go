// Package wordlist turns raw text into clean word lists.
package wordlist

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize splits text into lines, trims them, drops empty lines and removes
// case-insensitive duplicates. The first spelling of a word wins and order is kept.
func Normalize(text string) []string {
	lines := SplitLines(text)
	words := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		word := strings.TrimFunc(line, isTrimmable)
		if word == "" {
			continue
		}
		key := FoldKey(word)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		words = append(words, word)
	}
	return words
}

// FoldKey returns the key used to compare words case-insensitively.
func FoldKey(word string) string {
	return cases.Lower(language.Und).String(word)
}

// SplitLines splits on every line boundary, treating "\r\n" as one break.
// A trailing break does not produce an extra empty line.
func SplitLines(text string) []string {
	var lines []string
	start := 0
	for i, r := range text {
		if i < start {
			continue
		}
		if !isLineBreak(r) {
			continue
		}
		lines = append(lines, text[start:i])
		start = i + len(string(r))
		if r == '\r' && start < len(text) && text[start] == '\n' {
			start++
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	default:
		return false
	}
}

// isTrimmable reports Unicode white space and the ASCII information
// separators U+001C to U+001F.
func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

// Join renders words back into the one-per-line form accepted by Normalize.
func Join(words []string) string {
	return strings.Join(words, "\n")
}
