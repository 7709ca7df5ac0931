package comparison

import (
	"sort"
	"strings"
)

// The fuzzy ratio family mirrors the classic fuzzywuzzy scores: a ratio over
// an indel-weighted edit distance, which reduces to 2*LCS/(len1+len2).
// All scores are in [0,1] and resolve to 0 when both inputs are empty.

// fuzzyRatio is the whole-string similarity ratio.
func fuzzyRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 0
	}
	return 2 * float64(lcsLength(ra, rb)) / float64(total)
}

// fuzzyPartialRatio is the best ratio of the shorter string against any
// equal-length window of the longer one.
func fuzzyPartialRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		return 0
	}
	if len(ra) == len(rb) {
		return fuzzyRatio(string(ra), string(rb))
	}

	best := 0.0
	for i := 0; i+len(ra) <= len(rb); i++ {
		window := rb[i : i+len(ra)]
		score := 2 * float64(lcsLength(ra, window)) / float64(len(ra)+len(window))
		if score > best {
			best = score
		}
		if best == 1 {
			break
		}
	}
	return best
}

// fuzzyTokenSortRatio compares the strings with their tokens sorted, making
// the score insensitive to word order.
func fuzzyTokenSortRatio(a, b string) float64 {
	return fuzzyRatio(sortTokens(a), sortTokens(b))
}

// fuzzyTokenSetRatio compares token sets: the shared tokens, then the shared
// tokens extended with each side's remainder, taking the best pairing.
// Duplicate tokens are ignored.
func fuzzyTokenSetRatio(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	var shared, onlyA, onlyB []string
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			shared = append(shared, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range setB {
		if _, ok := setA[tok]; !ok {
			onlyB = append(onlyB, tok)
		}
	}
	sort.Strings(shared)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	t0 := strings.Join(shared, " ")
	t1 := strings.TrimSpace(t0 + " " + strings.Join(onlyA, " "))
	t2 := strings.TrimSpace(t0 + " " + strings.Join(onlyB, " "))

	best := fuzzyRatio(t1, t2)
	if s := fuzzyRatio(t0, t1); s > best {
		best = s
	}
	if s := fuzzyRatio(t0, t2); s > best {
		best = s
	}
	return best
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}

// lcsLength computes the longest common subsequence length with a
// two-row dynamic program.
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// hammingDistance counts mismatched positions between equal-length strings.
// Returns -1 when the lengths differ; the feature schema uses that as an
// explicit "not applicable" marker.
func hammingDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) != len(rb) {
		return -1
	}
	d := 0
	for i := range ra {
		if ra[i] != rb[i] {
			d++
		}
	}
	return d
}
