package utils

import "strings"

// Normalize lowercases an utterance, drops apostrophes and replaces other
// punctuation with spaces so phrase matching works on whole words.
func Normalize(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case r == '\'' || r == '’':
			// "can't" -> "cant" so contraction phrases match
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ContainsPhrase reports whether a normalized text contains the phrase as
// whole words, not as a substring of a longer word.
func ContainsPhrase(normalized, phrase string) bool {
	return strings.Contains(" "+normalized+" ", " "+Normalize(phrase)+" ")
}
