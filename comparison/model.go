package comparison

import (
	"encoding/json"
	"fmt"
	"time"

	"namecheck/gbt"
)

// ContainerFormatVersion identifies the persisted model layout. Bumped when
// the container shape changes so stale blobs fail at load time instead of
// deep inside inference.
const ContainerFormatVersion = 1

// ModelContainer is the persisted form of a trained comparator: the fitted
// ensemble, the label encoding and the exact ordered feature schema, bundled
// as one atomic unit. None of the parts load independently.
type ModelContainer struct {
	FormatVersion int           `json:"format_version"`
	FeatureNames  []string      `json:"feature_names"`
	Labels        []string      `json:"labels"`
	Accuracy      float64       `json:"accuracy"`
	TrainedAt     time.Time     `json:"trained_at"`
	Ensemble      *gbt.Ensemble `json:"ensemble"`
}

// Encode packages the trained model for persistence.
func (c *Comparator) Encode() ([]byte, error) {
	if c.model == nil {
		return nil, ErrNotTrained
	}
	container := ModelContainer{
		FormatVersion: ContainerFormatVersion,
		FeatureNames:  c.featureNames,
		Labels:        c.labels,
		Accuracy:      c.accuracy,
		TrainedAt:     time.Now().UTC(),
		Ensemble:      c.model,
	}
	data, err := json.Marshal(container)
	if err != nil {
		return nil, fmt.Errorf("encode model container: %w", err)
	}
	return data, nil
}

// Decode reconstructs a comparator from a persisted container, validating
// the format version and that the stored schema matches the extractor's
// current one.
func Decode(data []byte) (*Comparator, error) {
	var container ModelContainer
	if err := json.Unmarshal(data, &container); err != nil {
		return nil, fmt.Errorf("decode model container: %w", err)
	}

	if container.FormatVersion != ContainerFormatVersion {
		return nil, fmt.Errorf("unsupported model format version %d, want %d",
			container.FormatVersion, ContainerFormatVersion)
	}
	if container.Ensemble == nil {
		return nil, fmt.Errorf("model container has no ensemble")
	}
	if len(container.Labels) != len(labelClasses) {
		return nil, fmt.Errorf("model container has %d labels, want %d",
			len(container.Labels), len(labelClasses))
	}

	current := FeatureNames()
	if len(container.FeatureNames) != len(current) {
		return nil, fmt.Errorf("model schema has %d features, extractor produces %d",
			len(container.FeatureNames), len(current))
	}
	for i, name := range container.FeatureNames {
		if name != current[i] {
			return nil, fmt.Errorf("model schema mismatch at position %d: %q vs %q",
				i, name, current[i])
		}
	}

	return &Comparator{
		extractor:    NewExtractor(),
		model:        container.Ensemble,
		featureNames: container.FeatureNames,
		labels:       container.Labels,
		accuracy:     container.Accuracy,
	}, nil
}
