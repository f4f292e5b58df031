// Package dataset loads and validates solitaire attempt logs.
//
// Records are deliberately forgiving on load: fields are normalised with
// the same rules the historical exporters used (trimmed strings, empty →
// absent, non-negative integers only), and judgement is deferred to
// Validate.
package dataset

import (
	"math"
	"strconv"
	"strings"
)

// Record is one normalised attempt-log row.
type Record struct {
	Tag          string
	Result       string
	TimestampUTC string
	Seed         string
	Moves        *int
	DurationMS   *int
	Notes        string

	// Raw preserves the row as loaded, keyed by header name.
	Raw map[string]string
}

// Identity is the key used for duplicate detection.
type Identity struct {
	Tag          string
	Seed         string
	TimestampUTC string
}

// Identity returns the record's duplicate-detection key.
func (r Record) Identity() Identity {
	return Identity{Tag: r.Tag, Seed: r.Seed, TimestampUTC: r.TimestampUTC}
}

// normaliseString trims v and maps empty values to absent.
func normaliseString(v string) string {
	return strings.TrimSpace(v)
}

// normaliseInt parses v as a non-negative integer. Negative values and
// unparseable junk count as absent.
func normaliseInt(v string) *int {
	s := strings.TrimSpace(v)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// normaliseRecord builds a Record from a raw row.
func normaliseRecord(raw map[string]string) Record {
	return Record{
		Tag:          normaliseString(raw["tag"]),
		Result:       strings.ToLower(normaliseString(raw["result"])),
		TimestampUTC: normaliseString(raw["timestamp_utc"]),
		Seed:         normaliseString(raw["seed"]),
		Moves:        normaliseInt(raw["moves"]),
		DurationMS:   normaliseInt(raw["duration_ms"]),
		Notes:        normaliseString(raw["notes"]),
		Raw:          raw,
	}
}
