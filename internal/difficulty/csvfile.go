package difficulty

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrUpdate wraps fatal difficulty-update issues: missing logs,
// unreadable files.
var ErrUpdate = errors.New("difficulty update error")

var csvColumns = []string{
	"deck_key", "draw_mode", "solve_time_ms", "node_count",
	"timestamp_utc", "solver_id", "solver_version",
	"difficulty_score", "difficulty_level",
}

// LoadCSV reads win records from a CSV log at path.
func LoadCSV(path string) ([]*WinRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpdate, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUpdate, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: missing header row", ErrUpdate, path)
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[name] = i
	}
	cell := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]*WinRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := &WinRecord{
			DeckKey:         cell(row, "deck_key"),
			TimestampUTC:    cell(row, "timestamp_utc"),
			SolverID:        cell(row, "solver_id"),
			SolverVersion:   cell(row, "solver_version"),
			DifficultyLevel: cell(row, "difficulty_level"),
		}
		rec.DrawMode, _ = strconv.Atoi(cell(row, "draw_mode"))
		rec.SolveTimeMS, _ = strconv.ParseFloat(cell(row, "solve_time_ms"), 64)
		rec.NodeCount, _ = strconv.ParseFloat(cell(row, "node_count"), 64)
		if raw := cell(row, "difficulty_score"); raw != "" {
			if score, err := strconv.ParseFloat(raw, 64); err == nil {
				rec.DifficultyScore = &score
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// SaveCSV writes records back to path, overwriting any existing log.
func SaveCSV(path string, records []*WinRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpdate, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(csvColumns); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUpdate, path, err)
	}
	for _, rec := range records {
		score := ""
		if rec.DifficultyScore != nil {
			score = strconv.FormatFloat(*rec.DifficultyScore, 'f', -1, 64)
		}
		row := []string{
			rec.DeckKey,
			strconv.Itoa(rec.DrawMode),
			strconv.FormatFloat(rec.SolveTimeMS, 'f', -1, 64),
			strconv.FormatFloat(rec.NodeCount, 'f', -1, 64),
			rec.TimestampUTC,
			rec.SolverID,
			rec.SolverVersion,
			score,
			rec.DifficultyLevel,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrUpdate, path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUpdate, path, err)
	}
	return nil
}

// UpdateFile runs the scoring pass against the CSV log at path and writes
// the results back. When path is missing it is hydrated from seedPath
// first. Returns rows updated and per-level counts.
func UpdateFile(path, seedPath string, since time.Time, limit int) (int, map[string]int, error) {
	records, err := loadOrHydrate(path, seedPath)
	if err != nil {
		return 0, nil, err
	}
	if len(records) == 0 {
		logrus.Info("no records to process")
		return 0, map[string]int{}, nil
	}

	updated, counts := Update(records, since, limit)
	if updated == 0 {
		logrus.Info("no new wins require difficulty scoring")
		return 0, counts, nil
	}
	if err := SaveCSV(path, records); err != nil {
		return 0, nil, err
	}
	return updated, counts, nil
}

func loadOrHydrate(path, seedPath string) ([]*WinRecord, error) {
	if _, err := os.Stat(path); err == nil {
		return LoadCSV(path)
	}
	if seedPath == "" {
		return nil, fmt.Errorf("%w: win log not found: %s", ErrUpdate, path)
	}
	if _, err := os.Stat(seedPath); err != nil {
		return nil, fmt.Errorf("%w: win log not found: %s (and seed %s missing)", ErrUpdate, path, seedPath)
	}
	logrus.Infof("primary log %s missing; hydrating from seed %s", path, seedPath)
	records, err := LoadCSV(seedPath)
	if err != nil {
		return nil, err
	}
	if err := SaveCSV(path, records); err != nil {
		return nil, err
	}
	return records, nil
}
