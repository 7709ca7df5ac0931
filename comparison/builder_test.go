package comparison

import (
	"testing"

	"namecheck/types"
)

func TestBuildTrainingSetPairCounts(t *testing.T) {
	cases := []struct {
		name        string
		record      types.TrainingRecord
		wantPairs   int
		wantSkipped int
	}{
		{
			"two names one pair",
			types.TrainingRecord{Names: []string{"Acme Ltd", "Acme Inc"}, IsMaterial: false},
			1, 0,
		},
		{
			"three names three pairs",
			types.TrainingRecord{Names: []string{"Acme Ltd", "Acme Inc", "Acme Corp"}, IsMaterial: true},
			3, 0,
		},
		{
			"single name skipped",
			types.TrainingRecord{Names: []string{"Acme Ltd"}},
			0, 1,
		},
		{
			"blank names skipped",
			types.TrainingRecord{Names: []string{"  ", "", "Acme Ltd"}},
			0, 1,
		},
		{
			"all blank skipped",
			types.TrainingRecord{Names: []string{"", "  ", "\t"}},
			0, 1,
		},
	}

	extractor := NewExtractor()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			examples, skipped := BuildTrainingSet(extractor, []types.TrainingRecord{c.record})
			if len(examples) != c.wantPairs {
				t.Fatalf("got %d pairs; want %d", len(examples), c.wantPairs)
			}
			if skipped != c.wantSkipped {
				t.Fatalf("got %d skipped; want %d", skipped, c.wantSkipped)
			}
		})
	}
}

func TestBuildTrainingSetLabelPropagation(t *testing.T) {
	extractor := NewExtractor()
	records := []types.TrainingRecord{
		{Names: []string{"Acme Ltd", "Acme Inc", "Acme Corp"}, IsMaterial: true},
		{Names: []string{"Beta GmbH", "Beta AG"}, IsMaterial: false},
	}

	examples, skipped := BuildTrainingSet(extractor, records)
	if skipped != 0 {
		t.Fatalf("got %d skipped; want 0", skipped)
	}
	if len(examples) != 4 {
		t.Fatalf("got %d examples; want 4", len(examples))
	}
	for i, ex := range examples[:3] {
		if !ex.IsMaterial {
			t.Errorf("example %d should carry the record's material label", i)
		}
	}
	if examples[3].IsMaterial {
		t.Errorf("example 3 should carry the record's immaterial label")
	}
}

func TestBuildTrainingSetEmptyInput(t *testing.T) {
	extractor := NewExtractor()

	examples, skipped := BuildTrainingSet(extractor, nil)
	if len(examples) != 0 || skipped != 0 {
		t.Fatalf("nil records: got %d examples, %d skipped; want 0, 0", len(examples), skipped)
	}

	examples, skipped = BuildTrainingSet(extractor, []types.TrainingRecord{{}})
	if len(examples) != 0 || skipped != 1 {
		t.Fatalf("empty record: got %d examples, %d skipped; want 0, 1", len(examples), skipped)
	}
}
