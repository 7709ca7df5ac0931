package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"namecheck/types"
)

// LogEntry represents a single log line with timestamp
type LogEntry struct {
	Timestamp time.Time
	Message   string
}

const maxLogEntries = 8

// Model represents the TUI client state (thin client)
type Model struct {
	// Service client
	Client *ServiceClient

	// Local UI state (synced from the service)
	Health     *HealthResponse
	Versions   []types.ModelVersion
	Stats      *types.FeedbackStats
	Logs       []LogEntry
	Err        error
	Retraining bool

	// Connection status
	Connected bool
}

// NewModel creates a new TUI model
func NewModel(serverURL string) Model {
	return Model{
		Client: NewServiceClient(serverURL),
		Logs:   make([]LogEntry, 0),
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	// Start polling immediately
	return tea.Batch(
		pollStatus(m.Client),
		tickCmd(),
	)
}

// AddLog appends a log entry, keeping only the most recent lines
func (m Model) AddLog(message string) Model {
	m.Logs = append(m.Logs, LogEntry{Timestamp: time.Now(), Message: message})
	if len(m.Logs) > maxLogEntries {
		m.Logs = m.Logs[len(m.Logs)-maxLogEntries:]
	}
	return m
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	if !m.Connected {
		return ErrorStyle.Render("❌ Not connected to comparison service")
	}

	if m.Retraining {
		return StatusStyle.Render("🔄 Retraining in progress...")
	}

	if m.Health != nil && !m.Health.ModelLoaded {
		return ErrorStyle.Render("⚠️  No model trained yet") + "\n\n" +
			InfoStyle.Render("Upload a training dataset to POST /api/train")
	}

	if m.Health != nil {
		return HighlightStyle.Render(fmt.Sprintf("✅ Serving model %s", m.Health.ActiveVersion))
	}

	return StatusStyle.Render("⏳ Waiting for first status poll...")
}
