package comparison

import (
	"strings"
	"unicode/utf8"

	"github.com/adrg/strutil/metrics"
)

// FeatureVector maps feature names to numeric values for one name pair.
type FeatureVector map[string]float64

// featureNames is the canonical feature schema, in the order features are
// presented to the classifier. Every vector an Extractor produces carries
// exactly this key set.
var featureNames = []string{
	"exact_match",
	"length_diff",
	"length_ratio",
	"fuzzy_ratio",
	"fuzzy_partial_ratio",
	"fuzzy_token_sort_ratio",
	"fuzzy_token_set_ratio",
	"levenshtein_distance",
	"jaro_similarity",
	"jaro_winkler_similarity",
	"hamming_distance",
	"word_overlap",
	"word_jaccard",
	"char_overlap",
	"char_jaccard",
	"cosine_similarity",
	"legal_indicators_diff",
	"acronym_similarity",
}

// FeatureNames returns the ordered feature schema.
func FeatureNames() []string {
	out := make([]string, len(featureNames))
	copy(out, featureNames)
	return out
}

// Extractor computes similarity feature vectors for name pairs. It holds no
// mutable state and is safe for concurrent use.
type Extractor struct {
	lev  *metrics.Levenshtein
	jaro *metrics.Jaro
	jw   *metrics.JaroWinkler
}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		lev:  metrics.NewLevenshtein(),
		jaro: metrics.NewJaro(),
		jw:   metrics.NewJaroWinkler(),
	}
}

// Extract computes the full feature vector for a pair of raw names. All
// metrics operate on the normalized forms except legal_indicators_diff, which
// counts boilerplate in the raw inputs. Degenerate inputs (empty after
// normalization, unequal lengths for hamming) resolve to defined defaults
// rather than errors.
func (e *Extractor) Extract(name1, name2 string) FeatureVector {
	n1 := Normalize(name1)
	n2 := Normalize(name2)

	len1 := utf8.RuneCountInString(n1)
	len2 := utf8.RuneCountInString(n2)

	features := make(FeatureVector, len(featureNames))

	if n1 == n2 {
		features["exact_match"] = 1
	} else {
		features["exact_match"] = 0
	}

	features["length_diff"] = float64(absInt(len1 - len2))
	features["length_ratio"] = safeRatio(minInt(len1, len2), maxInt(len1, len2))

	features["fuzzy_ratio"] = fuzzyRatio(n1, n2)
	features["fuzzy_partial_ratio"] = fuzzyPartialRatio(n1, n2)
	features["fuzzy_token_sort_ratio"] = fuzzyTokenSortRatio(n1, n2)
	features["fuzzy_token_set_ratio"] = fuzzyTokenSetRatio(n1, n2)

	features["levenshtein_distance"] = float64(e.lev.Distance(n1, n2))
	if n1 == "" || n2 == "" {
		features["jaro_similarity"] = 0
		features["jaro_winkler_similarity"] = 0
	} else {
		features["jaro_similarity"] = e.jaro.Compare(n1, n2)
		features["jaro_winkler_similarity"] = e.jw.Compare(n1, n2)
	}
	features["hamming_distance"] = float64(hammingDistance(n1, n2))

	words1 := tokenSet(n1)
	words2 := tokenSet(n2)
	features["word_overlap"], features["word_jaccard"] = setOverlap(words1, words2)

	chars1 := charSet(n1)
	chars2 := charSet(n2)
	features["char_overlap"], features["char_jaccard"] = setOverlap(chars1, chars2)

	features["cosine_similarity"] = tfidfCosine(n1, n2)

	features["legal_indicators_diff"] = float64(absInt(
		countLegalIndicators(name1) - countLegalIndicators(name2)))

	features["acronym_similarity"] = acronymSimilarity(n1, n2)

	return features
}

// Vector flattens the feature map into the canonical schema order.
func (fv FeatureVector) Vector(schema []string) []float64 {
	out := make([]float64, len(schema))
	for i, name := range schema {
		out[i] = fv[name]
	}
	return out
}

// acronymSimilarity builds an acronym from the first character of each token
// and scores the two acronyms with the whole-string fuzzy ratio.
func acronymSimilarity(n1, n2 string) float64 {
	a1 := acronym(n1)
	a2 := acronym(n2)
	if a1 == "" || a2 == "" {
		return 0
	}
	return fuzzyRatio(a1, a2)
}

func acronym(s string) string {
	var b strings.Builder
	for _, tok := range strings.Fields(s) {
		r := []rune(tok)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}

// setOverlap returns the overlap ratio (intersection over larger set) and
// Jaccard index of two sets. Both are 0 when the sets are empty.
func setOverlap(a, b map[string]struct{}) (overlap, jaccard float64) {
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	larger := maxInt(len(a), len(b))
	union := len(a) + len(b) - inter
	if larger > 0 {
		overlap = float64(inter) / float64(larger)
	}
	if union > 0 {
		jaccard = float64(inter) / float64(union)
	}
	return overlap, jaccard
}

func charSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, r := range s {
		if r == ' ' {
			continue
		}
		set[string(r)] = struct{}{}
	}
	return set
}

func safeRatio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
