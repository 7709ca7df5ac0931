package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// pollStatus creates a command that fetches health, versions and feedback stats
func pollStatus(client *ServiceClient) tea.Cmd {
	return func() tea.Msg {
		health, err := client.GetHealth()
		if err != nil {
			return StatusUpdateMsg{Err: err}
		}
		versions, err := client.GetVersions()
		if err != nil {
			return StatusUpdateMsg{Health: health, Err: err}
		}
		stats, err := client.GetFeedbackStats()
		return StatusUpdateMsg{
			Health:   health,
			Versions: versions,
			Stats:    stats,
			Err:      err,
		}
	}
}

// triggerRetrain creates a command that requests a retraining cycle
func triggerRetrain(client *ServiceClient) tea.Cmd {
	return func() tea.Msg {
		result, err := client.TriggerRetrain()
		return RetrainTriggeredMsg{Result: result, Err: err}
	}
}

// tickCmd creates a command that ticks every 2s for polling
func tickCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
