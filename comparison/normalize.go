package comparison

import (
	"strings"
	"unicode"
)

// legalSuffixes are corporate form tokens stripped during normalization.
// Matched as whole tokens only, never as substrings.
var legalSuffixes = map[string]struct{}{
	"ltd": {}, "limited": {}, "llc": {}, "inc": {}, "incorporated": {},
	"corp": {}, "corporation": {}, "plc": {}, "gmbh": {}, "ag": {},
	"sa": {}, "nv": {}, "bv": {}, "oy": {}, "ab": {},
}

// legalIndicators are the suffix spellings counted as substrings of raw
// names by the legal_indicators_diff feature.
var legalIndicators = []string{
	"ltd", "limited", "llc", "inc", "incorporated", "corp", "corporation",
}

// Normalize canonicalizes a legal entity name for comparison: lower-case,
// punctuation replaced by spaces, whitespace collapsed, legal suffix tokens
// dropped. Normalizing an already normalized name yields the same value.
// A name made up entirely of suffix tokens normalizes to the empty string.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	words := strings.Fields(b.String())
	kept := words[:0]
	for _, w := range words {
		if _, ok := legalSuffixes[w]; !ok {
			kept = append(kept, w)
		}
	}

	return strings.Join(kept, " ")
}

// countLegalIndicators counts suffix spellings appearing as substrings of the
// raw name. Intentionally computed on the unnormalized input: it measures how
// much legal boilerplate the source string carried.
func countLegalIndicators(name string) int {
	lower := strings.ToLower(name)
	count := 0
	for _, indicator := range legalIndicators {
		if strings.Contains(lower, indicator) {
			count++
		}
	}
	return count
}
