package config

import "time"

// Retraining Constants
const (
	// RetrainThreshold is the number of unprocessed feedback records required
	// before a retraining cycle may start
	RetrainThreshold = 10

	// FeedbackBatchLimit bounds how many feedback records one retraining
	// cycle consumes
	FeedbackBatchLimit = 100
)

// Training Constants
const (
	// EvalRatio is the share of training examples held out for evaluation
	EvalRatio = 0.2

	// RandomSeed fixes the train/eval split and the boosting row/column
	// sampling so training runs are reproducible
	RandomSeed = 42
)

// Boosting Constants
const (
	// BoostRounds is the number of trees in the ensemble
	BoostRounds = 100

	// LearningRate shrinks each tree's contribution
	LearningRate = 0.1

	// MaxTreeDepth limits individual tree depth
	MaxTreeDepth = 6

	// RowSubsample is the fraction of rows sampled per tree
	RowSubsample = 0.8

	// ColSubsample is the fraction of feature columns sampled per tree
	ColSubsample = 0.8
)

// Cache Constants
const (
	// PredictionCacheTTL is the sliding expiry applied to cached predictions
	PredictionCacheTTL = 24 * time.Hour
)
