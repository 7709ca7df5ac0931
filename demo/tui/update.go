package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case TickMsg:
		return m, tea.Batch(pollStatus(m.Client), tickCmd())
	case StatusUpdateMsg:
		return m.handleStatusUpdate(msg)
	case RetrainTriggeredMsg:
		return m.handleRetrainTriggered(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r", "R":
		if !m.Retraining && m.Connected {
			m.Retraining = true
			m = m.AddLog("Retraining requested...")
			return m, triggerRetrain(m.Client)
		}
	}
	return m, nil
}

// handleStatusUpdate processes a completed polling round
func (m Model) handleStatusUpdate(msg StatusUpdateMsg) (tea.Model, tea.Cmd) {
	if msg.Health == nil {
		if m.Connected {
			m = m.AddLog(fmt.Sprintf("Lost connection: %v", msg.Err))
		}
		m.Connected = false
		m.Err = msg.Err
		return m, nil
	}

	if !m.Connected {
		m = m.AddLog("Connected to comparison service")
	}
	m.Connected = true
	m.Err = msg.Err
	m.Health = msg.Health
	if msg.Versions != nil {
		m.Versions = msg.Versions.Versions
	}
	if msg.Stats != nil {
		m.Stats = msg.Stats
	}
	return m, nil
}

// handleRetrainTriggered processes the outcome of a manual retrain request
func (m Model) handleRetrainTriggered(msg RetrainTriggeredMsg) (tea.Model, tea.Cmd) {
	m.Retraining = false
	if msg.Err != nil {
		m = m.AddLog(fmt.Sprintf("Retraining failed: %v", msg.Err))
		return m, nil
	}
	if msg.Result.Retrained {
		m = m.AddLog(fmt.Sprintf("Retrained; now serving %s", msg.Result.ActiveVersion))
	} else {
		m = m.AddLog("Retraining skipped (no unprocessed feedback or already running)")
	}
	return m, pollStatus(m.Client)
}
