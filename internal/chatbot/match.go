package chatbot

import (
	"strings"
	"unicode"
)

// normalizeLabel lowercases s and drops slashes and whitespace so that
// "Gates/Fencing", "gates fencing" and "GATESFENCING" compare equal.
func normalizeLabel(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if r == '/' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var normalizedCategories = func() map[string]Category {
	m := make(map[string]Category, len(Categories))
	for _, c := range Categories {
		m[normalizeLabel(string(c))] = c
	}
	return m
}()

// MatchCategory reports which category label, if any, the utterance names.
func MatchCategory(utterance string) (Category, bool) {
	key := normalizeLabel(utterance)
	if key == "" {
		return "", false
	}
	c, ok := normalizedCategories[key]
	return c, ok
}

// IsHazardRequest reports whether the text asks for do-it-yourself electrical
// guidance.
func IsHazardRequest(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range hazardPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
