package analysis

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

const (
	minSentenceLength = 20
	maxCandidates     = 200
	fallbackPrefix    = "What does this regulation state? "
	fallbackLength    = 120
)

// Obligation words are turned into "What must ..." style questions. Only a
// trailing word boundary is required, so "MUST" and "shall," match but
// "mustard" and "musté" do not. RE2's \b is ASCII-only, so the boundary is
// checked in isWordEnd.
var obligationPattern = regexp.MustCompile(`(?i)must|shall|should`)

// Card is a generated, not yet persisted flashcard.
type Card struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Tag      *string `json:"tag"`
}

// GenerateFlashcards converts declarative sentences of text into at most
// count question/answer cards, in sentence order. The same input always
// yields the same cards.
func GenerateFlashcards(text string, count int, tag *string) []Card {
	if count <= 0 {
		return []Card{}
	}
	candidates := make([]string, 0, 16)
	for _, s := range SplitSentences(text) {
		if utf8.RuneCountInString(s) <= minSentenceLength {
			continue
		}
		candidates = append(candidates, s)
		if len(candidates) == maxCandidates {
			break
		}
	}

	cards := make([]Card, 0, min(count, len(candidates)))
	for _, s := range candidates {
		if len(cards) >= count {
			break
		}
		cards = append(cards, Card{Question: Question(s), Answer: s, Tag: tag})
	}
	return cards
}

// Question rewrites a regulation sentence into a prompt.
func Question(sentence string) string {
	for _, loc := range obligationPattern.FindAllStringIndex(sentence, -1) {
		if isWordEnd(sentence, loc[1]) {
			return sentence[:loc[0]] + "What " + sentence[loc[0]:]
		}
	}
	return fallbackPrefix + Truncate(sentence, fallbackLength)
}

// isWordEnd reports whether no Unicode word character starts at byte offset i.
func isWordEnd(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !(unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_')
}
