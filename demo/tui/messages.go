package tui

import (
	"time"

	"namecheck/types"
)

// Messages for the tea program (polling-based)

// StatusUpdateMsg is sent when a polling round completes
type StatusUpdateMsg struct {
	Health   *HealthResponse
	Versions *VersionsResponse
	Stats    *types.FeedbackStats
	Err      error
}

// TickMsg is sent periodically to trigger polling
type TickMsg struct {
	Time time.Time
}

// RetrainTriggeredMsg is sent when a manual retrain request returns
type RetrainTriggeredMsg struct {
	Result *RetrainResponse
	Err    error
}
