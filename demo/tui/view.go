package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("⚖️  Name Materiality Dashboard"))
	b.WriteString("\n\n")

	// Current state
	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	// Feedback statistics
	if m.Stats != nil {
		stats := fmt.Sprintf("📊 Feedback: %d total | %d unprocessed | %d corrections (%.1f%%)",
			m.Stats.Total, m.Stats.Unprocessed, m.Stats.Corrections, m.Stats.CorrectionRate)
		b.WriteString(InfoStyle.Render(stats))
		b.WriteString("\n\n")
	}

	// Model versions
	if len(m.Versions) > 0 {
		b.WriteString(BoxStyle.Render(m.formatVersions()))
		b.WriteString("\n\n")
	}

	// Logs
	if len(m.Logs) > 0 {
		b.WriteString(InfoStyle.Render("📝 Recent Activity:"))
		b.WriteString("\n")
		for _, entry := range m.Logs {
			line := fmt.Sprintf("   %s %s", entry.Timestamp.Format("15:04:05"), entry.Message)
			b.WriteString(InfoStyle.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Help text
	b.WriteString(InfoStyle.Render("Press 'r' to retrain | Press 'q' or Ctrl+C to quit"))

	return b.String()
}

// formatVersions renders the model version table, newest first
func (m Model) formatVersions() string {
	var b strings.Builder

	b.WriteString(HighlightStyle.Render("Model Versions"))
	b.WriteString("\n\n")

	shown := m.Versions
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for _, v := range shown {
		marker := "  "
		if v.IsActive {
			marker = "▶ "
		}
		line := fmt.Sprintf("%s%s  accuracy %.3f  %s",
			marker, v.Version, v.Accuracy, v.CreatedAt.Format("2006-01-02 15:04"))
		if v.IsActive {
			b.WriteString(StatusStyle.Render(line))
		} else {
			b.WriteString(InfoStyle.Render(line))
		}
		b.WriteString("\n")
	}
	if len(m.Versions) > len(shown) {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("   ... and %d older", len(m.Versions)-len(shown))))
		b.WriteString("\n")
	}

	return b.String()
}
