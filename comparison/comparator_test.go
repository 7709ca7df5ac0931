package comparison

import (
	"errors"
	"fmt"
	"testing"

	"namecheck/types"
)

// trainingFixture builds a separable dataset: immaterial records are the
// same entity under cosmetic variations, material records pair unrelated
// entities.
func trainingFixture() []types.TrainingRecord {
	bases := []string{
		"Acme Holdings", "Globex", "Initech Systems", "Umbrella Research",
		"Stark Industries", "Wayne Enterprises", "Tyrell", "Cyberdyne Systems",
		"Wonka Confections", "Duff Brewing", "Sirius Cybernetics", "Gringotts",
	}

	var records []types.TrainingRecord
	for _, base := range bases {
		records = append(records, types.TrainingRecord{
			Names:      []string{base + " Ltd", base + " Limited", base + ", Inc."},
			IsMaterial: false,
		})
	}
	for i := 0; i < len(bases); i++ {
		j := (i + 5) % len(bases)
		records = append(records, types.TrainingRecord{
			Names:      []string{bases[i] + " Ltd", bases[j] + " Corp"},
			IsMaterial: true,
		})
	}
	return records
}

func trainedComparator(t *testing.T) *Comparator {
	t.Helper()
	c := NewComparator()
	examples, skipped := BuildTrainingSet(c.Extractor(), trainingFixture())
	if skipped != 0 {
		t.Fatalf("fixture produced %d skipped records", skipped)
	}
	if _, err := c.Train(examples); err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	return c
}

func TestComparatorPredictBeforeTrain(t *testing.T) {
	c := NewComparator()
	if c.Trained() {
		t.Fatalf("fresh comparator reports trained")
	}
	_, err := c.Predict("Acme Ltd", "Acme Inc")
	if !errors.Is(err, ErrNotTrained) {
		t.Fatalf("Predict before Train: got %v; want ErrNotTrained", err)
	}
}

func TestComparatorTrainEmpty(t *testing.T) {
	c := NewComparator()
	if _, err := c.Train(nil); !errors.Is(err, ErrNoValidPairs) {
		t.Fatalf("Train(nil): got %v; want ErrNoValidPairs", err)
	}
}

func TestComparatorSeparatesVariantsFromStrangers(t *testing.T) {
	c := trainedComparator(t)

	variant, err := c.Predict("Pemberton Analytics Ltd", "Pemberton Analytics, Inc.")
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	stranger, err := c.Predict("Pemberton Analytics Ltd", "Vandelay Imports Corp")
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	if variant.MaterialProbability >= stranger.MaterialProbability {
		t.Fatalf("cosmetic variant scored %.4f material, stranger %.4f; want variant lower",
			variant.MaterialProbability, stranger.MaterialProbability)
	}
	if variant.IsMaterial {
		t.Errorf("cosmetic suffix variant classified material")
	}
	if !stranger.IsMaterial {
		t.Errorf("unrelated names classified immaterial")
	}
}

func TestComparatorSeparatesOnTwoRecords(t *testing.T) {
	// The smallest meaningful dataset: one variant group and one group of
	// strangers, six pairs total. Training must still produce a model that
	// ranks the variant pair below the stranger pair.
	records := []types.TrainingRecord{
		{Names: []string{"ABC LTD", "ABC Limited", "ABC LLC"}, IsMaterial: false},
		{Names: []string{"ABC Limited", "XYZ Limited", "ABC's LTD"}, IsMaterial: true},
	}

	c := NewComparator()
	examples, skipped := BuildTrainingSet(c.Extractor(), records)
	if skipped != 0 {
		t.Fatalf("dataset produced %d skipped records", skipped)
	}
	if len(examples) != 6 {
		t.Fatalf("dataset produced %d pairs; want 6", len(examples))
	}
	if _, err := c.Train(examples); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	variant, err := c.Predict("ABC LTD", "ABC Limited")
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	stranger, err := c.Predict("ABC Limited", "XYZ Limited")
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	if variant.MaterialProbability == stranger.MaterialProbability {
		t.Fatalf("model is constant on a two-record dataset: both pairs score %.4f",
			variant.MaterialProbability)
	}
	if variant.MaterialProbability >= stranger.MaterialProbability {
		t.Fatalf("variant pair scored %.4f material, stranger pair %.4f; want variant lower",
			variant.MaterialProbability, stranger.MaterialProbability)
	}
	if variant.IsMaterial {
		t.Errorf("suffix variant pair classified material")
	}
	if !stranger.IsMaterial {
		t.Errorf("stranger pair classified immaterial")
	}
}

func TestComparatorPredictionShape(t *testing.T) {
	c := trainedComparator(t)

	p, err := c.Predict("Acme Holdings Ltd", "Globex Corp")
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	if p.Name1 != "Acme Holdings Ltd" || p.Name2 != "Globex Corp" {
		t.Errorf("prediction echoes wrong names: %q, %q", p.Name1, p.Name2)
	}
	sum := p.MaterialProbability + p.ImmaterialProbability
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("probabilities sum to %v; want 1", sum)
	}
	if p.IsMaterial != (p.MaterialProbability >= 0.5) {
		t.Errorf("verdict inconsistent with material probability %v", p.MaterialProbability)
	}
	if p.Label != types.MaterialityLabel(p.IsMaterial) {
		t.Errorf("label %q inconsistent with verdict %v", p.Label, p.IsMaterial)
	}
}

func TestComparatorDeterministicTraining(t *testing.T) {
	c1 := trainedComparator(t)
	c2 := trainedComparator(t)

	if c1.Accuracy() != c2.Accuracy() {
		t.Fatalf("accuracy differs across identical runs: %v vs %v", c1.Accuracy(), c2.Accuracy())
	}

	p1, err := c1.Predict("Acme Holdings Ltd", "Acme Holdings Limited")
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	p2, err := c2.Predict("Acme Holdings Ltd", "Acme Holdings Limited")
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if p1.MaterialProbability != p2.MaterialProbability {
		t.Fatalf("predictions differ across identical runs: %v vs %v",
			p1.MaterialProbability, p2.MaterialProbability)
	}
}

func TestComparatorFeatureImportance(t *testing.T) {
	c := trainedComparator(t)

	importance := c.FeatureImportance()
	if len(importance) != len(FeatureNames()) {
		t.Fatalf("importance has %d entries; want %d", len(importance), len(FeatureNames()))
	}
	total := 0.0
	for name, v := range importance {
		if v < 0 {
			t.Errorf("importance for %s is negative: %v", name, v)
		}
		total += v
	}
	if total <= 0 {
		t.Fatalf("no feature gained anything during training")
	}
}

func TestModelEncodeDecodeRoundTrip(t *testing.T) {
	c := trainedComparator(t)

	data, err := c.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !decoded.Trained() {
		t.Fatalf("decoded comparator reports untrained")
	}
	if decoded.Accuracy() != c.Accuracy() {
		t.Errorf("accuracy changed through round trip: %v vs %v", decoded.Accuracy(), c.Accuracy())
	}

	pairs := [][2]string{
		{"Acme Holdings Ltd", "Acme Holdings Limited"},
		{"Acme Holdings Ltd", "Duff Brewing Corp"},
	}
	for _, pair := range pairs {
		want, err := c.Predict(pair[0], pair[1])
		if err != nil {
			t.Fatalf("Predict failed: %v", err)
		}
		got, err := decoded.Predict(pair[0], pair[1])
		if err != nil {
			t.Fatalf("decoded Predict failed: %v", err)
		}
		if got.MaterialProbability != want.MaterialProbability || got.IsMaterial != want.IsMaterial {
			t.Errorf("round trip changed prediction for %v: %+v vs %+v", pair, got, want)
		}
	}
}

func TestDecodeRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"garbage", "not json"},
		{"wrong version", `{"format_version": 99, "feature_names": [], "labels": [], "ensemble": null}`},
		{"missing ensemble", fmt.Sprintf(`{"format_version": %d, "feature_names": [], "labels": []}`, ContainerFormatVersion)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Decode([]byte(c.data)); err == nil {
				t.Fatalf("Decode accepted %s payload", c.name)
			}
		})
	}
}
