package comparison

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"namecheck/config"
	"namecheck/gbt"
	"namecheck/types"
)

// ErrNotTrained indicates Predict was called before any successful Train.
// Clients should prompt for training rather than retry.
var ErrNotTrained = errors.New("model not trained")

// labelClasses is the fixed label encoding: class index 0 is immaterial,
// class index 1 is material.
var labelClasses = []string{"immaterial", "material"}

// Comparator owns a trained materiality model together with the feature
// schema and label encoding captured at training time.
type Comparator struct {
	extractor    *Extractor
	model        *gbt.Ensemble
	featureNames []string
	labels       []string
	accuracy     float64
}

// NewComparator creates an untrained Comparator.
func NewComparator() *Comparator {
	return &Comparator{extractor: NewExtractor()}
}

// Extractor exposes the comparator's feature extractor.
func (c *Comparator) Extractor() *Extractor {
	return c.extractor
}

// Trained reports whether the comparator holds a fitted model.
func (c *Comparator) Trained() bool {
	return c.model != nil
}

// Accuracy returns the held-out accuracy measured at training time.
func (c *Comparator) Accuracy() float64 {
	return c.accuracy
}

// Train fits a fresh boosted-tree model on the examples and returns accuracy
// on a seeded 80/20 held-out partition. Every call fits from scratch; there
// is no incremental update. With very few examples the held-out side can be
// empty, in which case accuracy falls back to the training partition.
func (c *Comparator) Train(examples []TrainingExample) (float64, error) {
	if len(examples) == 0 {
		return 0, ErrNoValidPairs
	}

	schema := FeatureNames()
	rows := make([][]float64, len(examples))
	labels := make([]int, len(examples))
	for i, ex := range examples {
		rows[i] = ex.Features.Vector(schema)
		if ex.IsMaterial {
			labels[i] = 1
		}
	}

	trainIdx, evalIdx := splitIndexes(len(examples), config.EvalRatio, config.RandomSeed)

	trainRows := make([][]float64, len(trainIdx))
	trainLabels := make([]int, len(trainIdx))
	for i, idx := range trainIdx {
		trainRows[i] = rows[idx]
		trainLabels[i] = labels[idx]
	}

	cfg := gbt.Config{
		Rounds:         config.BoostRounds,
		LearningRate:   config.LearningRate,
		MaxDepth:       config.MaxTreeDepth,
		Subsample:      config.RowSubsample,
		ColSubsample:   config.ColSubsample,
		Lambda:         1.0,
		Gamma:          0.0,
		MinChildWeight: 1.0,
		Seed:           config.RandomSeed,
	}

	model, err := gbt.Train(trainRows, trainLabels, cfg)
	if err != nil {
		return 0, fmt.Errorf("fit model: %w", err)
	}

	// Evaluate on the held-out partition; fall back to the training rows
	// when the split left nothing aside.
	if len(evalIdx) == 0 {
		evalIdx = trainIdx
	}
	correct := 0
	evalClasses := map[int]struct{}{}
	for _, idx := range evalIdx {
		pred, err := model.Predict(rows[idx])
		if err != nil {
			return 0, fmt.Errorf("evaluate model: %w", err)
		}
		if pred == labels[idx] {
			correct++
		}
		evalClasses[labels[idx]] = struct{}{}
	}
	accuracy := float64(correct) / float64(len(evalIdx))

	if len(evalClasses) < 2 {
		log.Printf("Warning: evaluation partition contains a single class; skipping per-class breakdown")
	} else {
		logClassBreakdown(model, rows, labels, evalIdx)
	}

	c.model = model
	c.featureNames = schema
	c.labels = append([]string(nil), labelClasses...)
	c.accuracy = accuracy

	log.Printf("Model trained on %d examples, accuracy %.4f", len(trainIdx), accuracy)
	return accuracy, nil
}

// Predict classifies a raw name pair with the fitted model. The feature
// vector is computed once and aligned to the exact schema captured at
// training time; a schema mismatch fails rather than silently misaligning.
func (c *Comparator) Predict(name1, name2 string) (*types.Prediction, error) {
	if c.model == nil {
		return nil, ErrNotTrained
	}

	features := c.extractor.Extract(name1, name2)
	if len(features) != len(c.featureNames) {
		return nil, fmt.Errorf("feature schema mismatch: extractor produced %d features, model expects %d",
			len(features), len(c.featureNames))
	}
	for _, name := range c.featureNames {
		if _, ok := features[name]; !ok {
			return nil, fmt.Errorf("feature schema mismatch: missing feature %q", name)
		}
	}

	pMaterial, err := c.model.PredictProb(features.Vector(c.featureNames))
	if err != nil {
		return nil, fmt.Errorf("score name pair: %w", err)
	}

	isMaterial := pMaterial >= 0.5
	return &types.Prediction{
		Name1:                 name1,
		Name2:                 name2,
		IsMaterial:            isMaterial,
		Label:                 types.MaterialityLabel(isMaterial),
		MaterialProbability:   pMaterial,
		ImmaterialProbability: 1 - pMaterial,
	}, nil
}

// FeatureImportance maps feature names to relative split-gain importance.
// Returns nil when untrained.
func (c *Comparator) FeatureImportance() map[string]float64 {
	if c.model == nil {
		return nil
	}
	gains := c.model.FeatureImportance()
	out := make(map[string]float64, len(c.featureNames))
	for i, name := range c.featureNames {
		out[name] = gains[i]
	}
	return out
}

// splitIndexes shuffles example indexes with a fixed seed and carves off the
// evaluation share.
func splitIndexes(n int, evalRatio float64, seed int64) (train, eval []int) {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)
	evalCount := int(float64(n) * evalRatio)
	eval = perm[:evalCount]
	train = perm[evalCount:]
	return train, eval
}

// logClassBreakdown logs per-class precision and recall on the evaluation
// partition.
func logClassBreakdown(model *gbt.Ensemble, rows [][]float64, labels []int, evalIdx []int) {
	for class := 0; class < 2; class++ {
		tp, fp, fn := 0, 0, 0
		for _, idx := range evalIdx {
			pred, err := model.Predict(rows[idx])
			if err != nil {
				return
			}
			switch {
			case pred == class && labels[idx] == class:
				tp++
			case pred == class && labels[idx] != class:
				fp++
			case pred != class && labels[idx] == class:
				fn++
			}
		}
		precision := safeRatio(tp, tp+fp)
		recall := safeRatio(tp, tp+fn)
		log.Printf("  %s: precision %.3f, recall %.3f", labelClasses[class], precision, recall)
	}
}
