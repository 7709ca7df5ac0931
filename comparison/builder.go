package comparison

import (
	"errors"
	"strings"

	"namecheck/types"
)

// ErrNoValidPairs indicates a training set produced zero usable name pairs.
// This is the most common operator mistake (blank source columns), so it is
// reported distinctly from other failures.
var ErrNoValidPairs = errors.New("no valid name pairs in training data")

// TrainingExample is one labeled feature vector, derived from a pair of
// names in a TrainingRecord. Examples only live for the duration of a
// training run.
type TrainingExample struct {
	Features   FeatureVector
	IsMaterial bool
}

// BuildTrainingSet expands multi-source records into pairwise examples.
// Each record contributes every unordered pair of its non-blank names, all
// carrying the record's single label: a record is material if any of its
// sources disagree, so the label is deliberately not reinterpreted per pair.
// Records with fewer than two usable names are skipped; the skip count is
// returned alongside the examples.
func BuildTrainingSet(extractor *Extractor, records []types.TrainingRecord) ([]TrainingExample, int) {
	var examples []TrainingExample
	skipped := 0

	for _, record := range records {
		var names []string
		for _, name := range record.Names {
			if strings.TrimSpace(name) != "" {
				names = append(names, name)
			}
		}

		if len(names) < 2 {
			skipped++
			continue
		}

		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				examples = append(examples, TrainingExample{
					Features:   extractor.Extract(names[i], names[j]),
					IsMaterial: record.IsMaterial,
				})
			}
		}
	}

	return examples, skipped
}
