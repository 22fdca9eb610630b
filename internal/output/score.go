package output

import (
	"fmt"
	"strings"

	"github.com/hearthside-labs/memberpulse/internal/engagement"
)

// ScoreBar renders a visual progress bar for a 0-100 engagement score.
// Example: "████████░░ 80/100"
func ScoreBar(score float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int((score / 100.0) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	var style func(string) string
	switch {
	case score >= 60:
		style = func(s string) string { return StyleSuccess.Render(s) }
	case score >= 20:
		style = func(s string) string { return StyleWarning.Render(s) }
	default:
		style = func(s string) string { return StyleError.Render(s) }
	}

	return fmt.Sprintf("%s %s", style(bar), StyleMuted.Render(fmt.Sprintf("%.0f/100", score)))
}

// LevelBadge renders an engagement level with the color matching its rank.
func LevelBadge(level engagement.Level) string {
	switch level {
	case engagement.LevelHighlyActive, engagement.LevelActive:
		return StyleSuccess.Render(string(level))
	case engagement.LevelModerate, engagement.LevelLow:
		return StyleWarning.Render(string(level))
	}
	return StyleError.Render(string(level))
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
