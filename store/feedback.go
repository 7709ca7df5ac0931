package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"namecheck/types"
)

// AddFeedback appends an unprocessed feedback record and returns its id.
// Repeated corrections on the same pair are kept as independent records.
func (s *Store) AddFeedback(fb types.FeedbackRecord) (string, error) {
	id := uuid.New().String()
	now := time.Now()

	_, err := s.db.Exec(`
		INSERT INTO feedback (id, name1, name2, original_prediction, user_correction, confidence_score, feedback_text, processed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, FALSE, ?)`,
		id, fb.Name1, fb.Name2, fb.OriginalPrediction, fb.UserCorrection, fb.Confidence, fb.Note, now,
	)
	if err != nil {
		return "", fmt.Errorf("insert feedback: %w", err)
	}

	return id, nil
}

// UnprocessedCount returns the number of feedback records not yet consumed
// by a retraining cycle.
func (s *Store) UnprocessedCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM feedback WHERE processed = FALSE").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unprocessed feedback: %w", err)
	}
	return count, nil
}

// RecentUnprocessed returns up to limit unprocessed feedback records, most
// recent first.
func (s *Store) RecentUnprocessed(limit int) ([]types.FeedbackRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, name1, name2, original_prediction, user_correction, confidence_score, feedback_text, created_at
		FROM feedback
		WHERE processed = FALSE
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list unprocessed feedback: %w", err)
	}
	defer rows.Close()

	var records []types.FeedbackRecord
	for rows.Next() {
		var fb types.FeedbackRecord
		if err := rows.Scan(&fb.ID, &fb.Name1, &fb.Name2, &fb.OriginalPrediction,
			&fb.UserCorrection, &fb.Confidence, &fb.Note, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		records = append(records, fb)
	}

	return records, rows.Err()
}

// FeedbackStats summarizes the feedback table: totals, backlog and how often
// users disagreed with the original prediction.
func (s *Store) FeedbackStats() (*types.FeedbackStats, error) {
	stats := &types.FeedbackStats{}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM feedback").Scan(&stats.Total); err != nil {
		return nil, fmt.Errorf("count feedback: %w", err)
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM feedback WHERE processed = FALSE").Scan(&stats.Unprocessed); err != nil {
		return nil, fmt.Errorf("count unprocessed feedback: %w", err)
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM feedback WHERE original_prediction != user_correction").Scan(&stats.Corrections); err != nil {
		return nil, fmt.Errorf("count corrections: %w", err)
	}

	if stats.Total > 0 {
		stats.CorrectionRate = float64(stats.Corrections) / float64(stats.Total) * 100
	}
	return stats, nil
}
