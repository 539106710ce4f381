// Package analysis turns plain regulation text into study material: short
// explanations, question/answer flashcards and aerodynamic highlights.
// Everything here is a pure function of its input.
package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Truncate returns the first n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Ellipsize truncates s to n runes and appends "..." when anything was cut.
func Ellipsize(s string, n int) string {
	t := Truncate(s, n)
	if len(t) < len(s) {
		return t + "..."
	}
	return t
}

// SplitSentences cuts text after '.', '!' or '?' whenever the punctuation is
// followed by whitespace. The whitespace run itself is dropped.
func SplitSentences(text string) []string {
	var out []string
	start := 0
	prevTerminal := false
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if prevTerminal && unicode.IsSpace(r) {
			out = append(out, text[start:i])
			j := i
			for j < len(text) {
				r2, s2 := utf8.DecodeRuneInString(text[j:])
				if !unicode.IsSpace(r2) {
					break
				}
				j += s2
			}
			start = j
			i = j
			prevTerminal = false
			continue
		}
		prevTerminal = r == '.' || r == '!' || r == '?'
		i += size
	}
	out = append(out, text[start:])
	return out
}

func containsAny(lower string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
