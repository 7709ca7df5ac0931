// Package engine hosts the serving component: it owns the single mutable
// active-model reference, runs training and retraining cycles, and answers
// predictions. Everything else talks to it through its methods.
package engine

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"namecheck/comparison"
	"namecheck/config"
	"namecheck/store"
	"namecheck/types"
)

// PredictionCache is an optional read-through cache for prediction results.
// Implementations must treat misses and backend failures identically: a
// miss falls through to computation.
type PredictionCache interface {
	Get(ctx context.Context, key string) (*types.Prediction, bool)
	Set(ctx context.Context, key string, p *types.Prediction)
}

// activeModel pairs a trained comparator with its version tag. The pointer
// is swapped atomically so in-flight predictions always see a consistent
// snapshot.
type activeModel struct {
	comparator *comparison.Comparator
	version    string
}

// Service coordinates the comparison engine with its stores.
type Service struct {
	store *store.Store
	blobs store.BlobStore
	cache PredictionCache

	active    atomic.Pointer[activeModel]
	retrainMu sync.Mutex
}

// New creates a Service. cache may be nil.
func New(st *store.Store, blobs store.BlobStore, cache PredictionCache) *Service {
	return &Service{store: st, blobs: blobs, cache: cache}
}

// TrainResult reports a completed training cycle.
type TrainResult struct {
	Version        string  `json:"version"`
	Accuracy       float64 `json:"accuracy"`
	PairCount      int     `json:"pair_count"`
	SkippedRecords int     `json:"skipped_records"`
}

// TrainFromRecords builds the pairwise training set, fits a fresh model,
// persists it as a new active version and swaps it in. The previous model
// keeps serving until the swap.
func (s *Service) TrainFromRecords(records []types.TrainingRecord) (*TrainResult, error) {
	comparator := comparison.NewComparator()

	examples, skipped := comparison.BuildTrainingSet(comparator.Extractor(), records)
	if len(examples) == 0 {
		return nil, comparison.ErrNoValidPairs
	}

	accuracy, err := comparator.Train(examples)
	if err != nil {
		return nil, err
	}

	version, err := s.persist(comparator, accuracy)
	if err != nil {
		return nil, err
	}

	s.active.Store(&activeModel{comparator: comparator, version: version})

	return &TrainResult{
		Version:        version,
		Accuracy:       accuracy,
		PairCount:      len(examples),
		SkippedRecords: skipped,
	}, nil
}

// Predict classifies one raw name pair with the active model. Fails with
// comparison.ErrNotTrained when no model has been trained or loaded.
func (s *Service) Predict(ctx context.Context, name1, name2 string) (*types.Prediction, error) {
	active := s.active.Load()
	if active == nil {
		return nil, comparison.ErrNotTrained
	}

	var key string
	if s.cache != nil {
		key = cacheKey(name1, name2, active.version)
		if cached, ok := s.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	prediction, err := active.comparator.Predict(name1, name2)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, prediction)
	}
	return prediction, nil
}

// BatchResult carries bulk prediction results plus the summary counts
// reported to operators.
type BatchResult struct {
	Results            []*types.Prediction `json:"results"`
	Total              int                 `json:"total_predictions"`
	MaterialCount      int                 `json:"material_count"`
	ImmaterialCount    int                 `json:"immaterial_count"`
	MaterialPercentage float64             `json:"material_percentage"`
	SkippedRows        int                 `json:"skipped_rows"`
}

// PredictBatch classifies every pair and summarizes the outcome.
func (s *Service) PredictBatch(ctx context.Context, pairs []types.NamePair, skippedRows int) (*BatchResult, error) {
	results := make([]*types.Prediction, 0, len(pairs))
	material := 0
	for _, pair := range pairs {
		prediction, err := s.Predict(ctx, pair.Name1, pair.Name2)
		if err != nil {
			return nil, err
		}
		if prediction.IsMaterial {
			material++
		}
		results = append(results, prediction)
	}

	batch := &BatchResult{
		Results:         results,
		Total:           len(results),
		MaterialCount:   material,
		ImmaterialCount: len(results) - material,
		SkippedRows:     skippedRows,
	}
	if batch.Total > 0 {
		batch.MaterialPercentage = float64(material) / float64(batch.Total) * 100
	}
	return batch, nil
}

// RecordFeedback appends a user correction and returns its id.
func (s *Service) RecordFeedback(fb types.FeedbackRecord) (string, error) {
	return s.store.AddFeedback(fb)
}

// FeedbackStats summarizes the feedback table.
func (s *Service) FeedbackStats() (*types.FeedbackStats, error) {
	return s.store.FeedbackStats()
}

// ShouldRetrain reports whether enough unprocessed feedback has accumulated
// to justify a retraining cycle. Pure read, safe to call at any time.
func (s *Service) ShouldRetrain() (bool, error) {
	count, err := s.store.UnprocessedCount()
	if err != nil {
		return false, err
	}
	return count >= config.RetrainThreshold, nil
}

// Retrain runs one feedback-driven retraining cycle. It returns false
// without side effects when the threshold isn't met or when another cycle is
// already running. The new version row and the processed flags commit in a
// single transaction, and the model pointer swaps only after that commit, so
// a failed cycle leaves the active model and the feedback backlog exactly as
// they were.
func (s *Service) Retrain() (bool, error) {
	if !s.retrainMu.TryLock() {
		log.Printf("Retrain requested while another cycle is running; skipping")
		return false, nil
	}
	defer s.retrainMu.Unlock()

	ok, err := s.ShouldRetrain()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	feedback, err := s.store.RecentUnprocessed(config.FeedbackBatchLimit)
	if err != nil {
		return false, err
	}

	// Each correction becomes a two-source record with the user's label as
	// ground truth.
	records := make([]types.TrainingRecord, 0, len(feedback))
	ids := make([]string, 0, len(feedback))
	for _, fb := range feedback {
		records = append(records, types.TrainingRecord{
			Names:      []string{fb.Name1, fb.Name2},
			IsMaterial: fb.UserCorrection,
		})
		ids = append(ids, fb.ID)
	}

	comparator := comparison.NewComparator()
	examples, _ := comparison.BuildTrainingSet(comparator.Extractor(), records)
	if len(examples) == 0 {
		log.Printf("Warning: no valid training pairs from %d feedback records; aborting retrain", len(feedback))
		return false, nil
	}

	accuracy, err := comparator.Train(examples)
	if err != nil {
		return false, fmt.Errorf("retrain model: %w", err)
	}

	data, err := comparator.Encode()
	if err != nil {
		return false, err
	}

	version := versionTag()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.blobs.Put(ctx, blobKey(version), data); err != nil {
		return false, fmt.Errorf("persist model blob: %w", err)
	}

	// An orphaned blob from a failed commit is harmless; the version row
	// pointing at it never exists.
	if err := s.store.SaveRetrainedVersion(version, accuracy, ids); err != nil {
		return false, fmt.Errorf("persist retrained version: %w", err)
	}

	s.active.Store(&activeModel{comparator: comparator, version: version})

	log.Printf("Model retrained on %d feedback records, accuracy %.4f, version %s",
		len(feedback), accuracy, version)
	return true, nil
}

// ListVersions returns the model version history, newest first.
func (s *Service) ListVersions() ([]types.ModelVersion, error) {
	return s.store.ListVersions()
}

// FeatureImportance returns the active model's feature importances.
func (s *Service) FeatureImportance() (map[string]float64, error) {
	active := s.active.Load()
	if active == nil {
		return nil, comparison.ErrNotTrained
	}
	return active.comparator.FeatureImportance(), nil
}

// ActiveVersion returns the serving model's version tag, or "" when no model
// is active.
func (s *Service) ActiveVersion() string {
	if active := s.active.Load(); active != nil {
		return active.version
	}
	return ""
}

// Ping verifies store connectivity, for health checks.
func (s *Service) Ping() error {
	return s.store.Ping()
}

// LoadActive restores the active model version from the blob store, if one
// exists. Intended for startup; a missing active version is not an error.
func (s *Service) LoadActive(ctx context.Context) error {
	version, err := s.store.ActiveVersion()
	if err != nil {
		return err
	}
	if version == nil {
		return nil
	}

	data, err := s.blobs.Get(ctx, blobKey(version.Version))
	if err != nil {
		return fmt.Errorf("load model %s: %w", version.Version, err)
	}

	comparator, err := comparison.Decode(data)
	if err != nil {
		return fmt.Errorf("load model %s: %w", version.Version, err)
	}

	s.active.Store(&activeModel{comparator: comparator, version: version.Version})
	log.Printf("Loaded active model %s (accuracy %.4f)", version.Version, version.Accuracy)
	return nil
}

// persist writes the model blob and version metadata. The version tag is
// timestamp-derived and opaque to callers.
func (s *Service) persist(comparator *comparison.Comparator, accuracy float64) (string, error) {
	data, err := comparator.Encode()
	if err != nil {
		return "", err
	}

	version := versionTag()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.blobs.Put(ctx, blobKey(version), data); err != nil {
		return "", fmt.Errorf("persist model blob: %w", err)
	}

	if err := s.store.SaveVersion(version, accuracy); err != nil {
		return "", fmt.Errorf("persist model version: %w", err)
	}

	return version, nil
}

func versionTag() string {
	return time.Now().UTC().Format("20060102_150405.000000000")
}

func blobKey(version string) string {
	return "model_" + version + ".json"
}
