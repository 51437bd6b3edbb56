package news

import (
	"strings"
	"unicode"
)

// Story similarity contract shared by the scorer's novelty check and the
// deduplicator. Two titles describe the same story when one is contained in
// the other (beyond a trivial length) or their stop-word-filtered token sets
// overlap with Jaccard >= 0.45. One measure, used everywhere.

const (
	containmentMinLen = 15
	jaccardThreshold  = 0.45
)

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true,
	"to": true, "of": true, "in": true, "on": true, "for": true,
	"with": true, "by": true, "and": true, "or": true, "as": true,
	"at": true, "from": true, "after": true, "before": true,
	"is": true, "are": true, "its": true, "it": true, "into": true,
	"new": true, "says": true,
}

// SimilarTitles reports whether two titles describe the same story.
func SimilarTitles(a, b string) bool {
	t1 := strings.ToLower(strings.TrimSpace(a))
	t2 := strings.ToLower(strings.TrimSpace(b))
	if t1 == "" || t2 == "" {
		return false
	}
	if t1 == t2 {
		return true
	}

	short, long := t1, t2
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) > containmentMinLen && strings.Contains(long, short) {
		return true
	}

	return jaccard(titleTokens(t1), titleTokens(t2)) >= jaccardThreshold
}

// titleTokens splits a lowercased title into significant tokens: punctuation
// becomes whitespace, stop words and one/two-letter fragments are dropped.
func titleTokens(title string) map[string]bool {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return r
		}
		return ' '
	}, title)

	tokens := make(map[string]bool)
	for _, w := range strings.Fields(mapped) {
		if stopWords[w] {
			continue
		}
		// Short fragments are noise, except version/model numbers ("5" in
		// "GPT-5"), which carry most of the signal in this domain.
		if len(w) <= 2 && !hasDigit(w) {
			continue
		}
		tokens[w] = true
	}
	return tokens
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if b[t] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
