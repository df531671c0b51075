package render

import (
	"fmt"
	"strings"

	"github.com/opd-ai/go-arena/pkg/engine"
)

// StatusLine formats the HUD text for a game snapshot
func StatusLine(s engine.GameState) string {
	switch s.Status {
	case engine.GameStatusWaiting:
		return "Waiting to start"
	case engine.GameStatusOver:
		return fmt.Sprintf("GAME OVER  Score: %d  Wave: %d  (r to restart, q to quit)", s.Score, s.Wave)
	}

	line := fmt.Sprintf(
		"Score: %d  Wave: %d  Enemies: %d  HP: %.0f/%.0f  Blast: %s",
		s.Score,
		s.Wave,
		s.Enemies,
		s.HP,
		s.MaxHP,
		meter(s.BlastCharge, 10),
	)
	if s.Paused {
		line += "  [PAUSED]"
	}
	return line
}

// meter draws a fill bar of width cells for a fraction in [0, 1]
func meter(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(filled, width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}
