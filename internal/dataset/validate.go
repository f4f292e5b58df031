package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// Required and recommended columns for attempt logs.
var (
	RequiredColumns    = []string{"result", "tag", "timestamp_utc"}
	RecommendedColumns = []string{"duration_ms", "moves", "seed"}
)

// AllowedResults is the closed set of outcome labels.
var AllowedResults = map[string]bool{
	"win":       true,
	"loss":      true,
	"abandoned": true,
	"unknown":   true,
}

// ValidationResult collects everything Validate found for one file.
type ValidationResult struct {
	Path     string
	Records  []Record
	Errors   []string
	Warnings []string
}

// OK reports whether the dataset passed with no errors.
func (v ValidationResult) OK() bool { return len(v.Errors) == 0 }

// ResultCounts tallies records per result label.
func (v ValidationResult) ResultCounts() map[string]int {
	counts := make(map[string]int)
	for _, r := range v.Records {
		counts[r.Result]++
	}
	return counts
}

// Validate checks records loaded from path against the dataset contract:
// required columns, allowed result values, non-empty tags and timestamps,
// and duplicate identities.
func Validate(path string, records []Record) ValidationResult {
	result := ValidationResult{Path: path, Records: records}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "No records found")
		return result
	}

	header := make(map[string]bool)
	for key := range records[0].Raw {
		header[strings.ToLower(key)] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !header[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		result.Errors = append(result.Errors, "Missing required columns: "+strings.Join(missing, ", "))
	}
	var missingRec []string
	for _, col := range RecommendedColumns {
		if !header[col] {
			missingRec = append(missingRec, col)
		}
	}
	if len(missingRec) > 0 {
		sort.Strings(missingRec)
		result.Warnings = append(result.Warnings, "Missing recommended columns: "+strings.Join(missingRec, ", "))
	}

	invalid := make(map[string]bool)
	for _, r := range records {
		if r.Result != "" && !AllowedResults[r.Result] {
			invalid[r.Result] = true
		}
	}
	if len(invalid) > 0 {
		values := make([]string, 0, len(invalid))
		for v := range invalid {
			values = append(values, v)
		}
		sort.Strings(values)
		result.Errors = append(result.Errors, "Unexpected result values: "+strings.Join(values, ", "))
	}

	emptyTags := 0
	emptyTimestamps := 0
	for _, r := range records {
		if r.Tag == "" {
			emptyTags++
		}
		if r.TimestampUTC == "" {
			emptyTimestamps++
		}
	}
	if emptyTags > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("%d records missing tag values", emptyTags))
	}
	if emptyTimestamps > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("%d records missing timestamp_utc values", emptyTimestamps))
	}

	seen := make(map[Identity]int)
	var duplicates []Identity
	for _, r := range records {
		key := r.Identity()
		seen[key]++
		if seen[key] == 2 {
			duplicates = append(duplicates, key)
		}
	}
	if len(duplicates) > 0 {
		parts := make([]string, len(duplicates))
		for i, d := range duplicates {
			seed := d.Seed
			if seed == "" {
				seed = "—"
			}
			parts[i] = fmt.Sprintf("(tag=%s, seed=%s, timestamp_utc=%s)", d.Tag, seed, d.TimestampUTC)
		}
		result.Errors = append(result.Errors, "Duplicate records detected: "+strings.Join(parts, ", "))
	}

	distinct := make(map[string]bool)
	sawResult := false
	for _, r := range records {
		if r.Result != "" {
			distinct[r.Result] = true
			sawResult = true
		}
	}
	if sawResult && len(distinct) == 1 {
		result.Warnings = append(result.Warnings,
			"All records share the same result value; outcome coverage may be incomplete")
	}

	return result
}

// FormatResult renders the one-line status for a validated file.
func FormatResult(v ValidationResult) string {
	counts := v.ResultCounts()
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	parts := make([]string, len(labels))
	for i, label := range labels {
		parts[i] = fmt.Sprintf("%s=%d", label, counts[label])
	}
	status := "ok"
	if !v.OK() {
		status = "failed"
	}
	line := fmt.Sprintf("%s: %s (%d rows) %s", v.Path, status, len(v.Records), strings.Join(parts, " "))
	return strings.TrimSpace(line)
}
