// Package stats aggregates solitaire attempt records into summary and
// streak statistics.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/amsibert-fmms/Solitaire/internal/dataset"
)

// Summary holds aggregate statistics for a collection of attempt records.
// Pointer fields are nil when no sample was available.
type Summary struct {
	TotalRecords      int
	ResultCounts      map[string]int
	WinRate           *float64
	AverageMoves      *float64
	MedianMoves       *float64
	AverageDurationMS *float64
}

// Summarise returns aggregate statistics for records.
func Summarise(records []dataset.Record) Summary {
	total := len(records)
	counts := make(map[string]int)
	wins := 0
	var moveSamples []int
	var durationSamples []int

	for _, r := range records {
		label := r.Result
		if label == "" {
			label = "unknown"
		}
		counts[label]++
		if label == "win" {
			wins++
		}
		if r.Moves != nil {
			moveSamples = append(moveSamples, *r.Moves)
		}
		if r.DurationMS != nil {
			durationSamples = append(durationSamples, *r.DurationMS)
		}
	}

	s := Summary{TotalRecords: total, ResultCounts: counts}
	if total > 0 {
		rate := float64(wins) / float64(total)
		s.WinRate = &rate
	}
	if len(moveSamples) > 0 {
		avg := mean(moveSamples)
		med := median(moveSamples)
		s.AverageMoves = &avg
		s.MedianMoves = &med
	}
	if len(durationSamples) > 0 {
		avg := mean(durationSamples)
		s.AverageDurationMS = &avg
	}
	return s
}

func mean(samples []int) float64 {
	sum := 0
	for _, v := range samples {
		sum += v
	}
	return float64(sum) / float64(len(samples))
}

func median(samples []int) float64 {
	sorted := append([]int(nil), samples...)
	sort.Ints(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}

// FormatSummary renders a human-readable description of s for path.
func FormatSummary(path string, s Summary) string {
	lines := []string{fmt.Sprintf("%s: %d records", path, s.TotalRecords)}

	if len(s.ResultCounts) > 0 {
		labels := make([]string, 0, len(s.ResultCounts))
		for label := range s.ResultCounts {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		parts := make([]string, len(labels))
		for i, label := range labels {
			parts[i] = fmt.Sprintf("%s=%d", label, s.ResultCounts[label])
		}
		lines = append(lines, "  results: "+strings.Join(parts, ", "))
	}
	if s.WinRate != nil {
		lines = append(lines, fmt.Sprintf("  win rate: %.1f%%", *s.WinRate*100))
	}
	if s.AverageMoves != nil {
		lines = append(lines, fmt.Sprintf("  moves: mean=%.1f median=%.1f", *s.AverageMoves, *s.MedianMoves))
	}
	if s.AverageDurationMS != nil {
		lines = append(lines, fmt.Sprintf("  average duration: %.1f ms", *s.AverageDurationMS))
	}
	return strings.Join(lines, "\n")
}
