package server

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/amsibert-fmms/Solitaire/internal/difficulty"
)

// decodeWinPayload parses and type-checks an ingest body. Numbers are
// decoded as json.Number so integer fields can reject fractional input.
func decodeWinPayload(body io.Reader) (difficulty.WinRecord, error) {
	var rec difficulty.WinRecord

	dec := json.NewDecoder(body)
	dec.UseNumber()
	payload := make(map[string]any)
	if err := dec.Decode(&payload); err != nil {
		return rec, fmt.Errorf("invalid JSON payload")
	}

	var err error
	if rec.DeckKey, err = requireString(payload, "deck_key"); err != nil {
		return rec, err
	}
	if rec.DrawMode, err = requireInt(payload, "draw_mode"); err != nil {
		return rec, err
	}
	if rec.SolveTimeMS, err = requireNumber(payload, "solve_time_ms"); err != nil {
		return rec, err
	}
	if rec.NodeCount, err = requireNumber(payload, "node_count"); err != nil {
		return rec, err
	}
	if rec.TimestampUTC, err = requireString(payload, "timestamp_utc"); err != nil {
		return rec, err
	}
	if rec.SolverID, err = requireString(payload, "solver_id"); err != nil {
		return rec, err
	}
	if rec.SolverVersion, err = requireString(payload, "solver_version"); err != nil {
		return rec, err
	}

	if rec.TimestampUTC, err = normaliseTimestamp(rec.TimestampUTC); err != nil {
		return rec, err
	}

	if raw, ok := payload["difficulty_score"]; ok && raw != nil {
		num, ok := raw.(json.Number)
		if !ok {
			return rec, fmt.Errorf("difficulty_score has invalid type")
		}
		score, err := num.Float64()
		if err != nil {
			return rec, fmt.Errorf("difficulty_score has invalid type")
		}
		rec.DifficultyScore = &score
	}
	if raw, ok := payload["difficulty_level"]; ok && raw != nil {
		level, ok := raw.(string)
		if !ok {
			return rec, fmt.Errorf("difficulty_level has invalid type")
		}
		rec.DifficultyLevel = level
	}

	return rec, nil
}

func requireString(payload map[string]any, field string) (string, error) {
	raw, ok := payload[field]
	if !ok {
		return "", fmt.Errorf("Missing field: %s", field)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s has invalid type", field)
	}
	return s, nil
}

func requireInt(payload map[string]any, field string) (int, error) {
	raw, ok := payload[field]
	if !ok {
		return 0, fmt.Errorf("Missing field: %s", field)
	}
	num, ok := raw.(json.Number)
	if !ok {
		return 0, fmt.Errorf("%s has invalid type", field)
	}
	n, err := num.Int64()
	if err != nil {
		return 0, fmt.Errorf("%s has invalid type", field)
	}
	return int(n), nil
}

func requireNumber(payload map[string]any, field string) (float64, error) {
	raw, ok := payload[field]
	if !ok {
		return 0, fmt.Errorf("Missing field: %s", field)
	}
	num, ok := raw.(json.Number)
	if !ok {
		return 0, fmt.Errorf("%s has invalid type", field)
	}
	f, err := num.Float64()
	if err != nil {
		return 0, fmt.Errorf("%s has invalid type", field)
	}
	return f, nil
}

// normaliseTimestamp converts candidate to UTC RFC 3339. Empty input
// yields the current time.
func normaliseTimestamp(candidate string) (string, error) {
	if candidate == "" {
		return time.Now().UTC().Format(time.RFC3339), nil
	}
	// Accept a trailing Z, an explicit offset, or a bare local time.
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04:05.999999999"} {
		if ts, err := time.Parse(layout, candidate); err == nil {
			return ts.UTC().Format(time.RFC3339), nil
		}
	}
	return "", fmt.Errorf("timestamp_utc must be ISO-8601 formatted")
}
