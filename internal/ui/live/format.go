package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"ragjudge/internal/judge"
)

// formatIndex formats a question index.
func formatIndex(index int) string {
	if index+1 < 10 {
		return "Q0" + strconv.Itoa(index+1)
	}
	return "Q" + strconv.Itoa(index+1)
}

// formatQuestionText truncates question text for display.
func formatQuestionText(text string) string {
	normalized := strings.Join(strings.Fields(text), " ")
	const limit = 60
	runes := []rune(normalized)
	if len(runes) <= limit {
		return normalized
	}
	return string(runes[:limit-3]) + "..."
}

// formatSide renders one system's outcome for a judged row.
func formatSide(row QuestionRow, correct bool, label judge.Label, noColor bool) string {
	if !row.Judged {
		return ""
	}
	text := "✗ " + label.Wire()
	color := lipgloss.Color("196")
	if correct {
		text = "✓ " + label.Wire()
		color = lipgloss.Color("42")
	}
	return stylize(text, noColor, color)
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row QuestionRow, now time.Time) string {
	if !row.FinishedAt.IsZero() && !row.StartedAt.IsZero() {
		return formatDuration(row.FinishedAt.Sub(row.StartedAt))
	}
	if !row.StartedAt.IsZero() {
		return formatDuration(now.Sub(row.StartedAt))
	}
	return ""
}

// formatDuration renders a rounded duration for display.
func formatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "0s"
	}
	return duration.Round(100 * time.Millisecond).String()
}

// stylizeStatus applies status coloring when enabled.
func stylizeStatus(status Status, noColor bool) string {
	return stylize(string(status), noColor, statusColor(status))
}

// statusColor selects a color for a given status.
func statusColor(status Status) lipgloss.Color {
	switch status {
	case StatusDone:
		return lipgloss.Color("42")
	case StatusDegraded:
		return lipgloss.Color("220")
	case StatusAnswering:
		return lipgloss.Color("33")
	case StatusJudging:
		return lipgloss.Color("201")
	default:
		return lipgloss.Color("246")
	}
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor || text == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
