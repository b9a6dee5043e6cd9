package score

import (
	"regexp"
	"strings"
)

// non-word runs are collapsed to a single space, keeping hyphens and
// underscores as word characters
var nonWord = regexp.MustCompile(`[^a-z0-9_-]+`)

const minTokenLen = 4

// Tokens lowercases text, replaces every run of characters outside
// [a-z0-9_-] with a space, splits on whitespace and keeps only tokens
// of length >= 4. Used for both titles and summaries before keyword
// matching.
func Tokens(text string) []string {
	words := strings.Fields(nonWord.ReplaceAllString(strings.ToLower(text), " "))
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) >= minTokenLen {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// CanonicalAuthor reduces a full author name to its coarse
// "first-initial surname" identity, e.g. "Jane Q. Smith" -> "j smith".
// Returns "" when the name normalizes to nothing; callers drop it.
// Distinct names may collapse to the same key, that is accepted.
func CanonicalAuthor(fullName string) string {
	words := strings.Fields(nonWord.ReplaceAllString(strings.ToLower(fullName), " "))
	if len(words) == 0 {
		return ""
	}
	return words[0][:1] + " " + words[len(words)-1]
}
