// Package gbt implements a small gradient-boosted decision-tree learner for
// binary classification with a logistic objective. Trees are fit with
// second-order gradient statistics and support row and column subsampling;
// the ensemble serializes to a stable JSON form.
package gbt

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Config holds the boosting hyperparameters.
type Config struct {
	Rounds         int     `json:"rounds"`
	LearningRate   float64 `json:"learning_rate"`
	MaxDepth       int     `json:"max_depth"`
	Subsample      float64 `json:"subsample"`
	ColSubsample   float64 `json:"col_subsample"`
	Lambda         float64 `json:"lambda"`
	Gamma          float64 `json:"gamma"`
	MinChildWeight float64 `json:"min_child_weight"`
	Seed           int64   `json:"seed"`
}

// DefaultConfig returns the standard hyperparameters: 100 rounds of depth-6
// trees at learning rate 0.1 with 0.8 row and column subsampling.
func DefaultConfig() Config {
	return Config{
		Rounds:         100,
		LearningRate:   0.1,
		MaxDepth:       6,
		Subsample:      0.8,
		ColSubsample:   0.8,
		Lambda:         1.0,
		Gamma:          0.0,
		MinChildWeight: 1.0,
		Seed:           42,
	}
}

// Ensemble is a trained boosted-tree model.
type Ensemble struct {
	Trees        []Tree  `json:"trees"`
	LearningRate float64 `json:"learning_rate"`
	BaseScore    float64 `json:"base_score"`
	NumFeatures  int     `json:"num_features"`
}

// Tree is one regression tree, stored as a flat node array; children refer
// to node indexes.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Node is a single tree node. Leaf nodes carry a weight; split nodes carry a
// feature index, threshold and child indexes. Samples with feature value
// strictly below the threshold go left.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      bool    `json:"leaf"`
	Weight    float64 `json:"weight"`
	Gain      float64 `json:"gain"`
}

// Train fits an ensemble on the given rows. Labels must be 0 or 1 and rows
// must share a width.
func Train(rows [][]float64, labels []int, cfg Config) (*Ensemble, error) {
	if len(rows) == 0 {
		return nil, errors.New("no training rows")
	}
	if len(rows) != len(labels) {
		return nil, fmt.Errorf("rows/labels length mismatch: %d vs %d", len(rows), len(labels))
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has width %d, want %d", i, len(row), width)
		}
	}
	for i, y := range labels {
		if y != 0 && y != 1 {
			return nil, fmt.Errorf("label %d is %d, want 0 or 1", i, y)
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	ens := &Ensemble{
		Trees:        make([]Tree, 0, cfg.Rounds),
		LearningRate: cfg.LearningRate,
		BaseScore:    0, // raw logit of 0.5
		NumFeatures:  width,
	}

	n := len(rows)
	raw := make([]float64, n)
	grad := make([]float64, n)
	hess := make([]float64, n)

	for round := 0; round < cfg.Rounds; round++ {
		for i := range rows {
			p := sigmoid(raw[i])
			grad[i] = p - float64(labels[i])
			hess[i] = p * (1 - p)
		}

		rowIdx := sampleIndexes(rng, n, cfg.Subsample)
		colMask := sampleColumns(rng, width, cfg.ColSubsample)

		builder := treeBuilder{
			rows:   rows,
			grad:   grad,
			hess:   hess,
			cols:   colMask,
			lambda: cfg.Lambda,
			gamma:  cfg.Gamma,
			minH:   cfg.MinChildWeight,
			depth:  cfg.MaxDepth,
		}
		tree := builder.build(rowIdx)
		ens.Trees = append(ens.Trees, tree)

		for i, row := range rows {
			raw[i] += cfg.LearningRate * tree.score(row)
		}
	}

	return ens, nil
}

// PredictProb returns the probability of class 1 for one feature row.
func (e *Ensemble) PredictProb(row []float64) (float64, error) {
	if len(row) != e.NumFeatures {
		return 0, fmt.Errorf("feature row has width %d, model expects %d", len(row), e.NumFeatures)
	}
	raw := e.BaseScore
	for i := range e.Trees {
		raw += e.LearningRate * e.Trees[i].score(row)
	}
	return sigmoid(raw), nil
}

// Predict returns the predicted class (0 or 1) for one feature row.
func (e *Ensemble) Predict(row []float64) (int, error) {
	p, err := e.PredictProb(row)
	if err != nil {
		return 0, err
	}
	if p >= 0.5 {
		return 1, nil
	}
	return 0, nil
}

// FeatureImportance returns per-feature split gain totals, normalized to sum
// to 1. Features never used for a split have importance 0.
func (e *Ensemble) FeatureImportance() []float64 {
	gains := make([]float64, e.NumFeatures)
	var total float64
	for _, tree := range e.Trees {
		for _, node := range tree.Nodes {
			if node.Leaf {
				continue
			}
			gains[node.Feature] += node.Gain
			total += node.Gain
		}
	}
	if total > 0 {
		for i := range gains {
			gains[i] /= total
		}
	}
	return gains
}

func (t *Tree) score(row []float64) float64 {
	idx := 0
	for {
		node := &t.Nodes[idx]
		if node.Leaf {
			return node.Weight
		}
		if row[node.Feature] < node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// sampleIndexes draws a subsample of row indexes without replacement,
// keeping at least one row.
func sampleIndexes(rng *rand.Rand, n int, fraction float64) []int {
	count := int(fraction * float64(n))
	if count < 1 {
		count = 1
	}
	if count > n {
		count = n
	}
	perm := rng.Perm(n)
	return perm[:count]
}

// sampleColumns marks a subsample of feature columns usable for splits,
// keeping at least one column.
func sampleColumns(rng *rand.Rand, width int, fraction float64) []bool {
	count := int(fraction * float64(width))
	if count < 1 {
		count = 1
	}
	if count > width {
		count = width
	}
	mask := make([]bool, width)
	for _, c := range rng.Perm(width)[:count] {
		mask[c] = true
	}
	return mask
}
