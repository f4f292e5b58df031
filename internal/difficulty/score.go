// Package difficulty assigns difficulty scores and categorical levels to
// solved-game win records. It is intended to run as a periodic batch job
// so downstream analytics can rely on the labels being populated.
package difficulty

import (
	"math"
	"sort"
	"time"
)

// Level buckets, ordered easy < medium < hard.
const (
	LevelEasy   = "easy"
	LevelMedium = "medium"
	LevelHard   = "hard"
)

// WinRecord is one solved-game log entry.
type WinRecord struct {
	DeckKey         string   `json:"deck_key"`
	DrawMode        int      `json:"draw_mode"`
	SolveTimeMS     float64  `json:"solve_time_ms"`
	NodeCount       float64  `json:"node_count"`
	TimestampUTC    string   `json:"timestamp_utc"`
	SolverID        string   `json:"solver_id"`
	SolverVersion   string   `json:"solver_version"`
	DifficultyScore *float64 `json:"difficulty_score"`
	DifficultyLevel string   `json:"difficulty_level"`
}

// Score computes the difficulty score for one record: the log-scaled
// search effort plus the log-scaled solve time.
func Score(r WinRecord) float64 {
	return math.Log10(r.NodeCount+1) + math.Log10(r.SolveTimeMS+1)
}

// percentile computes the q-th percentile (0–100) of values using linear
// interpolation between closest ranks.
func percentile(values []float64, q float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	rank := q / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// assignLevels buckets scored records: below the 30th percentile of their
// group → easy, above the 70th → hard, otherwise medium.
func assignLevels(group []*WinRecord) {
	if len(group) == 0 {
		return
	}
	scores := make([]float64, len(group))
	for i, r := range group {
		scores[i] = *r.DifficultyScore
	}
	p30 := percentile(scores, 30)
	p70 := percentile(scores, 70)
	for i, r := range group {
		switch {
		case scores[i] < p30:
			r.DifficultyLevel = LevelEasy
		case scores[i] > p70:
			r.DifficultyLevel = LevelHard
		default:
			r.DifficultyLevel = LevelMedium
		}
	}
}

// Update scores every unlevelled record in records, in place. When since
// is non-zero only records stamped on or after it are considered; limit
// caps the number of records touched (0 = no cap). Levels are assigned
// per draw-mode group. Returns the number of rows updated and the
// per-level counts.
func Update(records []*WinRecord, since time.Time, limit int) (int, map[string]int) {
	var candidates []*WinRecord
	for _, r := range records {
		if r.DifficultyLevel != "" {
			continue
		}
		if !since.IsZero() {
			ts, err := time.Parse(time.RFC3339, r.TimestampUTC)
			if err != nil || ts.Before(since) {
				continue
			}
		}
		candidates = append(candidates, r)
		if limit > 0 && len(candidates) == limit {
			break
		}
	}
	if len(candidates) == 0 {
		return 0, map[string]int{}
	}

	groups := make(map[int][]*WinRecord)
	var order []int
	for _, r := range candidates {
		score := Score(*r)
		r.DifficultyScore = &score
		if _, ok := groups[r.DrawMode]; !ok {
			order = append(order, r.DrawMode)
		}
		groups[r.DrawMode] = append(groups[r.DrawMode], r)
	}
	for _, mode := range order {
		assignLevels(groups[mode])
	}

	counts := make(map[string]int)
	for _, r := range candidates {
		counts[r.DifficultyLevel]++
	}
	return len(candidates), counts
}
