package types

import "time"

// TrainingRecord is one labeled observation: a small group of name variants
// reported by different source systems for the same entity slot, plus a single
// label saying whether the group contains a genuine entity mismatch.
type TrainingRecord struct {
	Names      []string `json:"names"`
	IsMaterial bool     `json:"is_material"`
}

// NamePair is a pair of raw names submitted for comparison.
type NamePair struct {
	Name1 string `json:"name1"`
	Name2 string `json:"name2"`
}

// Prediction is the result of comparing two names with the active model.
type Prediction struct {
	Name1                 string  `json:"name1"`
	Name2                 string  `json:"name2"`
	IsMaterial            bool    `json:"is_material"`
	Label                 string  `json:"prediction"`
	MaterialProbability   float64 `json:"materiality_probability"`
	ImmaterialProbability float64 `json:"immateriality_probability"`
}

// FeedbackRecord captures a human correction of a prediction. Records start
// unprocessed and are flipped to processed exactly once, when a retraining
// cycle consumes them.
type FeedbackRecord struct {
	ID                 string    `json:"id"`
	Name1              string    `json:"name1"`
	Name2              string    `json:"name2"`
	OriginalPrediction bool      `json:"original_prediction"`
	UserCorrection     bool      `json:"user_correction"`
	Confidence         float64   `json:"confidence_score,omitempty"`
	Note               string    `json:"feedback_text,omitempty"`
	Processed          bool      `json:"processed"`
	CreatedAt          time.Time `json:"created_at"`
}

// ModelVersion is version metadata for one persisted model.
type ModelVersion struct {
	Version   string    `json:"version"`
	Accuracy  float64   `json:"accuracy"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

// FeedbackStats summarizes the feedback table.
type FeedbackStats struct {
	Total          int     `json:"total_feedback"`
	Unprocessed    int     `json:"unprocessed_feedback"`
	Corrections    int     `json:"corrections_count"`
	CorrectionRate float64 `json:"correction_rate"`
}

// MaterialityLabel returns the human-readable label for a materiality verdict.
func MaterialityLabel(isMaterial bool) string {
	if isMaterial {
		return "Material"
	}
	return "Immaterial"
}
