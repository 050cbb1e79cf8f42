package live

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	line := "Run " + state.RunID
	if state.OutputPath != "" {
		line += " | " + state.OutputPath
	}
	if !state.StartedAt.IsZero() {
		line += " | Elapsed: " + formatDuration(now.Sub(state.StartedAt))
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the progress counts line.
func renderSummary(state State, noColor bool) string {
	c := state.Counts
	line := "Done: " + strconv.Itoa(c.Done) + "/" + strconv.Itoa(state.Total) +
		" Queued: " + strconv.Itoa(c.Queued) +
		" In flight: " + strconv.Itoa(c.InFlight) +
		" Degraded: " + strconv.Itoa(c.Degraded) +
		" RAG benar: " + strconv.Itoa(c.RAGCorrect) +
		" OG benar: " + strconv.Itoa(c.OGCorrect)
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderCooldown renders the countdown while the batch is paused.
func renderCooldown(state State, noColor bool) string {
	if state.Cooldown <= 0 {
		return ""
	}
	line := "Cooldown #" + strconv.Itoa(state.Cooldowns) + ": " + strconv.Itoa(state.Cooldown) + "s remaining"
	return stylize(line, noColor, lipgloss.Color("39"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}
