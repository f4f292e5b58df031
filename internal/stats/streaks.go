package stats

import (
	"fmt"
	"strings"

	"github.com/amsibert-fmms/Solitaire/internal/dataset"
)

// StreakSummary holds win/loss streak statistics for a sequence of
// attempt records, in recorded order.
type StreakSummary struct {
	TotalRecords        int
	Wins                int
	Losses              int
	LongestWinStreak    int
	LongestLossStreak   int
	CurrentStreakResult string // "win", "loss", or "" when no live streak
	CurrentStreakLength int
}

// ComputeStreaks walks records in order and tracks win/loss runs. Results
// outside {win, loss} break the running streak; abandoned attempts count
// as losses when abandonedAsLoss is set.
func ComputeStreaks(records []dataset.Record, abandonedAsLoss bool) StreakSummary {
	s := StreakSummary{TotalRecords: len(records)}
	longest := map[string]int{"win": 0, "loss": 0}
	current := ""
	length := 0

	for _, r := range records {
		result := strings.ToLower(strings.TrimSpace(r.Result))
		tracked := result
		if result == "abandoned" && abandonedAsLoss {
			tracked = "loss"
		}

		switch tracked {
		case "win":
			s.Wins++
		case "loss":
			s.Losses++
		default:
			current = ""
			length = 0
			continue
		}

		if tracked == current {
			length++
		} else {
			current = tracked
			length = 1
		}
		if length > longest[tracked] {
			longest[tracked] = length
		}
	}

	s.LongestWinStreak = longest["win"]
	s.LongestLossStreak = longest["loss"]
	s.CurrentStreakResult = current
	s.CurrentStreakLength = length
	return s
}

// FormatStreaks renders a human-readable description of s for path.
func FormatStreaks(path string, s StreakSummary) string {
	lines := []string{
		fmt.Sprintf("%s: %d records", path, s.TotalRecords),
		fmt.Sprintf("  wins=%d losses=%d", s.Wins, s.Losses),
		fmt.Sprintf("  longest win streak: %d", s.LongestWinStreak),
		fmt.Sprintf("  longest loss streak: %d", s.LongestLossStreak),
	}
	if s.CurrentStreakResult != "" {
		lines = append(lines, fmt.Sprintf("  current %s streak: %d", s.CurrentStreakResult, s.CurrentStreakLength))
	} else {
		lines = append(lines, "  current streak: none")
	}
	return strings.Join(lines, "\n")
}
