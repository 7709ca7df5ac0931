package comparison

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestExtractIdenticalNames(t *testing.T) {
	e := NewExtractor()
	fv := e.Extract("Acme Holdings Ltd", "Acme Holdings Ltd")

	wantOnes := []string{
		"exact_match", "length_ratio", "fuzzy_ratio", "fuzzy_partial_ratio",
		"fuzzy_token_sort_ratio", "fuzzy_token_set_ratio", "jaro_similarity",
		"jaro_winkler_similarity", "word_overlap", "word_jaccard",
		"char_overlap", "char_jaccard", "cosine_similarity", "acronym_similarity",
	}
	for _, name := range wantOnes {
		if !almostEqual(fv[name], 1) {
			t.Errorf("%s = %v; want 1", name, fv[name])
		}
	}

	wantZeros := []string{"length_diff", "levenshtein_distance", "hamming_distance", "legal_indicators_diff"}
	for _, name := range wantZeros {
		if !almostEqual(fv[name], 0) {
			t.Errorf("%s = %v; want 0", name, fv[name])
		}
	}
}

func TestExtractSuffixInsensitive(t *testing.T) {
	e := NewExtractor()

	// Same entity under two corporate forms normalizes to the same string.
	fv := e.Extract("Acme Holdings Ltd", "Acme Holdings Inc")
	if fv["exact_match"] != 1 {
		t.Fatalf("exact_match = %v; want 1 for suffix-only difference", fv["exact_match"])
	}
	if fv["levenshtein_distance"] != 0 {
		t.Fatalf("levenshtein_distance = %v; want 0", fv["levenshtein_distance"])
	}
}

func TestExtractSymmetric(t *testing.T) {
	e := NewExtractor()
	a, b := "Acme Holdings Ltd", "Acme Global Trading LLC"

	fv1 := e.Extract(a, b)
	fv2 := e.Extract(b, a)

	for _, name := range FeatureNames() {
		if !almostEqual(fv1[name], fv2[name]) {
			t.Errorf("%s not symmetric: %v vs %v", name, fv1[name], fv2[name])
		}
	}
}

func TestExtractEmptyInputs(t *testing.T) {
	e := NewExtractor()
	fv := e.Extract("", "")

	// Two empty names are identical, but every ratio defaults to 0.
	if fv["exact_match"] != 1 {
		t.Errorf("exact_match = %v; want 1", fv["exact_match"])
	}
	zeros := []string{
		"fuzzy_ratio", "fuzzy_partial_ratio", "fuzzy_token_sort_ratio",
		"fuzzy_token_set_ratio", "jaro_similarity", "jaro_winkler_similarity",
		"word_overlap", "word_jaccard", "char_overlap", "char_jaccard",
		"cosine_similarity", "acronym_similarity", "length_ratio",
	}
	for _, name := range zeros {
		if !almostEqual(fv[name], 0) {
			t.Errorf("%s = %v; want 0 on empty inputs", name, fv[name])
		}
	}

	// A name that is pure legal boilerplate also normalizes to empty.
	fv = e.Extract("Ltd", "Acme")
	if fv["exact_match"] != 0 {
		t.Errorf("exact_match = %v; want 0", fv["exact_match"])
	}
	if fv["jaro_similarity"] != 0 || fv["jaro_winkler_similarity"] != 0 {
		t.Errorf("jaro metrics should be 0 against an empty normalized name")
	}
}

func TestExtractHammingSentinel(t *testing.T) {
	e := NewExtractor()

	fv := e.Extract("Acme", "Acmee")
	if fv["hamming_distance"] != -1 {
		t.Fatalf("hamming_distance = %v; want -1 for unequal lengths", fv["hamming_distance"])
	}

	fv = e.Extract("Acme", "Acne")
	if fv["hamming_distance"] != 1 {
		t.Fatalf("hamming_distance = %v; want 1", fv["hamming_distance"])
	}
}

func TestExtractLegalIndicatorsDiff(t *testing.T) {
	e := NewExtractor()

	fv := e.Extract("Acme Ltd", "Acme")
	if fv["legal_indicators_diff"] != 1 {
		t.Fatalf("legal_indicators_diff = %v; want 1", fv["legal_indicators_diff"])
	}

	fv = e.Extract("Acme Incorporated Corp", "Acme Ltd")
	if fv["legal_indicators_diff"] != 2 {
		t.Fatalf("legal_indicators_diff = %v; want 2", fv["legal_indicators_diff"])
	}
}

func TestExtractSchemaComplete(t *testing.T) {
	e := NewExtractor()
	fv := e.Extract("Acme Holdings", "Beta Industries")

	schema := FeatureNames()
	if len(fv) != len(schema) {
		t.Fatalf("feature vector has %d entries; want %d", len(fv), len(schema))
	}
	for _, name := range schema {
		if _, ok := fv[name]; !ok {
			t.Errorf("feature %s missing from vector", name)
		}
	}

	vec := fv.Vector(schema)
	if len(vec) != len(schema) {
		t.Fatalf("Vector returned %d values; want %d", len(vec), len(schema))
	}
	for i, name := range schema {
		if !almostEqual(vec[i], fv[name]) {
			t.Errorf("Vector[%d] = %v; want %v (%s)", i, vec[i], fv[name], name)
		}
	}
}

func TestFuzzyRatios(t *testing.T) {
	cases := []struct {
		name string
		fn   func(a, b string) float64
		a, b string
		want float64
	}{
		{"ratio identical", fuzzyRatio, "acme", "acme", 1},
		{"ratio disjoint", fuzzyRatio, "abc", "xyz", 0},
		{"ratio reversal", fuzzyRatio, "ab", "ba", 0.5},
		{"ratio one empty", fuzzyRatio, "acme", "", 0},
		{"ratio both empty", fuzzyRatio, "", "", 0},
		{"partial substring", fuzzyPartialRatio, "acme", "acme holdings", 1},
		{"partial both empty", fuzzyPartialRatio, "", "", 0},
		{"token sort reorder", fuzzyTokenSortRatio, "holdings acme", "acme holdings", 1},
		{"token set subset", fuzzyTokenSetRatio, "acme holdings", "acme", 1},
		{"token set both empty", fuzzyTokenSetRatio, "", "", 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.fn(c.a, c.b)
			if !almostEqual(got, c.want) {
				t.Fatalf("got %v; want %v", got, c.want)
			}
		})
	}
}

func TestAcronymSimilarity(t *testing.T) {
	if got := acronymSimilarity("international business machines", "ibm"); got == 0 {
		t.Fatalf("acronym of a multi-word name should overlap its initialism, got 0")
	}
	if got := acronymSimilarity("acme holdings", "acme holdings"); got != 1 {
		t.Fatalf("identical names should have acronym similarity 1, got %v", got)
	}
}
