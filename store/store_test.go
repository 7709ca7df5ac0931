package store

import (
	"path/filepath"
	"testing"

	"namecheck/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFeedbackLifecycle(t *testing.T) {
	s := openTestStore(t)

	count, err := s.UnprocessedCount()
	if err != nil {
		t.Fatalf("UnprocessedCount failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("fresh store has %d unprocessed records", count)
	}

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := s.AddFeedback(types.FeedbackRecord{
			Name1:              "Acme Ltd",
			Name2:              "Acme Inc",
			OriginalPrediction: true,
			UserCorrection:     false,
			Confidence:         0.9,
			Note:               "same entity",
		})
		if err != nil {
			t.Fatalf("AddFeedback failed: %v", err)
		}
		if id == "" {
			t.Fatalf("AddFeedback returned empty id")
		}
		ids = append(ids, id)
	}

	count, err = s.UnprocessedCount()
	if err != nil {
		t.Fatalf("UnprocessedCount failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("got %d unprocessed; want 3", count)
	}

	records, err := s.RecentUnprocessed(10)
	if err != nil {
		t.Fatalf("RecentUnprocessed failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records; want 3", len(records))
	}
	for _, r := range records {
		if r.Name1 != "Acme Ltd" || r.UserCorrection {
			t.Errorf("record round trip corrupted: %+v", r)
		}
	}

	// A retrain consumes two of three records; the third stays in the backlog.
	if err := s.SaveRetrainedVersion("20240103_000000.000000001", 0.88, ids[:2]); err != nil {
		t.Fatalf("SaveRetrainedVersion failed: %v", err)
	}
	count, err = s.UnprocessedCount()
	if err != nil {
		t.Fatalf("UnprocessedCount failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("got %d unprocessed after marking; want 1", count)
	}

	records, err = s.RecentUnprocessed(10)
	if err != nil {
		t.Fatalf("RecentUnprocessed failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != ids[2] {
		t.Fatalf("wrong record left unprocessed: %+v", records)
	}
}

func TestRecentUnprocessedLimit(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := s.AddFeedback(types.FeedbackRecord{Name1: "A", Name2: "B"}); err != nil {
			t.Fatalf("AddFeedback failed: %v", err)
		}
	}

	records, err := s.RecentUnprocessed(2)
	if err != nil {
		t.Fatalf("RecentUnprocessed failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records; want 2", len(records))
	}
}

func TestSaveRetrainedVersion(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveVersion("20240101_000000.000000001", 0.91); err != nil {
		t.Fatalf("SaveVersion failed: %v", err)
	}

	var ids []string
	for i := 0; i < 2; i++ {
		id, err := s.AddFeedback(types.FeedbackRecord{Name1: "A", Name2: "B"})
		if err != nil {
			t.Fatalf("AddFeedback failed: %v", err)
		}
		ids = append(ids, id)
	}

	if err := s.SaveRetrainedVersion("20240102_000000.000000001", 0.95, ids); err != nil {
		t.Fatalf("SaveRetrainedVersion failed: %v", err)
	}

	active, err := s.ActiveVersion()
	if err != nil {
		t.Fatalf("ActiveVersion failed: %v", err)
	}
	if active == nil || active.Version != "20240102_000000.000000001" || active.Accuracy != 0.95 {
		t.Fatalf("active version = %+v; want the retrained save", active)
	}

	count, err := s.UnprocessedCount()
	if err != nil {
		t.Fatalf("UnprocessedCount failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("got %d unprocessed after retrain commit; want 0", count)
	}

	versions, err := s.ListVersions()
	if err != nil {
		t.Fatalf("ListVersions failed: %v", err)
	}
	activeCount := 0
	for _, v := range versions {
		if v.IsActive {
			activeCount++
		}
	}
	if len(versions) != 2 || activeCount != 1 {
		t.Fatalf("got %d versions, %d active; want 2 and 1", len(versions), activeCount)
	}
}

func TestFeedbackStats(t *testing.T) {
	s := openTestStore(t)

	stats, err := s.FeedbackStats()
	if err != nil {
		t.Fatalf("FeedbackStats failed: %v", err)
	}
	if stats.Total != 0 || stats.CorrectionRate != 0 {
		t.Fatalf("fresh store stats: %+v", stats)
	}

	// Two disagreements, two confirmations.
	for i := 0; i < 2; i++ {
		if _, err := s.AddFeedback(types.FeedbackRecord{OriginalPrediction: true, UserCorrection: false}); err != nil {
			t.Fatalf("AddFeedback failed: %v", err)
		}
		if _, err := s.AddFeedback(types.FeedbackRecord{OriginalPrediction: true, UserCorrection: true}); err != nil {
			t.Fatalf("AddFeedback failed: %v", err)
		}
	}

	stats, err = s.FeedbackStats()
	if err != nil {
		t.Fatalf("FeedbackStats failed: %v", err)
	}
	if stats.Total != 4 || stats.Unprocessed != 4 || stats.Corrections != 2 {
		t.Fatalf("stats = %+v; want 4 total, 4 unprocessed, 2 corrections", stats)
	}
	if stats.CorrectionRate != 50 {
		t.Fatalf("correction rate %v; want 50", stats.CorrectionRate)
	}
}

func TestVersionActivation(t *testing.T) {
	s := openTestStore(t)

	active, err := s.ActiveVersion()
	if err != nil {
		t.Fatalf("ActiveVersion failed: %v", err)
	}
	if active != nil {
		t.Fatalf("fresh store has active version %+v", active)
	}

	if err := s.SaveVersion("20240101_000000.000000001", 0.91); err != nil {
		t.Fatalf("SaveVersion failed: %v", err)
	}
	if err := s.SaveVersion("20240102_000000.000000001", 0.94); err != nil {
		t.Fatalf("SaveVersion failed: %v", err)
	}

	active, err = s.ActiveVersion()
	if err != nil {
		t.Fatalf("ActiveVersion failed: %v", err)
	}
	if active == nil || active.Version != "20240102_000000.000000001" {
		t.Fatalf("active version = %+v; want the second save", active)
	}
	if active.Accuracy != 0.94 {
		t.Fatalf("active accuracy = %v; want 0.94", active.Accuracy)
	}

	versions, err := s.ListVersions()
	if err != nil {
		t.Fatalf("ListVersions failed: %v", err)
	}
	if len(versions) != 2 {
		t.Fatalf("got %d versions; want 2", len(versions))
	}
	activeCount := 0
	for _, v := range versions {
		if v.IsActive {
			activeCount++
		}
	}
	if activeCount != 1 {
		t.Fatalf("%d versions marked active; want exactly 1", activeCount)
	}
}

func TestLocalBlobStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	blobs, err := NewLocalBlobStore(filepath.Join(dir, "models"))
	if err != nil {
		t.Fatalf("NewLocalBlobStore failed: %v", err)
	}

	ctx := t.Context()
	payload := []byte(`{"hello":"world"}`)
	if err := blobs.Put(ctx, "model_x.json", payload); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := blobs.Get(ctx, "model_x.json")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("Get returned %q; want %q", got, payload)
	}

	if _, err := blobs.Get(ctx, "missing.json"); err == nil {
		t.Fatalf("Get of a missing key succeeded")
	}
}
