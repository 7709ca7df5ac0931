package comparison

import (
	"math"
	"strings"
)

// tfidfCosine computes the cosine similarity between TF-IDF vectors built
// from word unigrams and bigrams, with the two inputs as the entire corpus.
// Tokens shorter than two characters are skipped, matching the usual
// vectorizer behavior; when either side produces no terms the score is 0.
func tfidfCosine(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	termsA := ngramTerms(a)
	termsB := ngramTerms(b)
	if len(termsA) == 0 || len(termsB) == 0 {
		return 0
	}

	// Document frequency over the two-document corpus, smoothed.
	idf := func(term string) float64 {
		df := 0
		if _, ok := termsA[term]; ok {
			df++
		}
		if _, ok := termsB[term]; ok {
			df++
		}
		return math.Log(3.0/float64(1+df)) + 1
	}

	weigh := func(terms map[string]int) map[string]float64 {
		vec := make(map[string]float64, len(terms))
		var norm float64
		for term, tf := range terms {
			w := float64(tf) * idf(term)
			vec[term] = w
			norm += w * w
		}
		if norm == 0 {
			return nil
		}
		norm = math.Sqrt(norm)
		for term := range vec {
			vec[term] /= norm
		}
		return vec
	}

	vecA := weigh(termsA)
	vecB := weigh(termsB)
	if vecA == nil || vecB == nil {
		return 0
	}

	var dot float64
	for term, wa := range vecA {
		if wb, ok := vecB[term]; ok {
			dot += wa * wb
		}
	}
	return dot
}

// ngramTerms returns term frequencies for word unigrams and bigrams.
func ngramTerms(s string) map[string]int {
	var tokens []string
	for _, tok := range strings.Fields(s) {
		if len(tok) >= 2 {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return nil
	}

	terms := make(map[string]int, 2*len(tokens))
	for i, tok := range tokens {
		terms[tok]++
		if i+1 < len(tokens) {
			terms[tok+" "+tokens[i+1]]++
		}
	}
	return terms
}
