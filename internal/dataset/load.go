package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrDataset wraps fatal dataset issues: unreadable files, unsupported
// formats, missing headers.
var ErrDataset = errors.New("dataset error")

// Load reads every record from path. Only CSV is supported; other
// extensions (including .parquet exports, which need a dedicated reader
// this toolchain does not carry) yield ErrDataset.
func Load(path string) ([]Record, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported file extension", ErrDataset, path)
	}
}

func loadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataset, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataset, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: missing header row", ErrDataset, path)
	}

	header := rows[0]
	if len(header) > 0 {
		// Tolerate a UTF-8 BOM on the first header cell.
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		raw := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				raw[name] = row[i]
			} else {
				raw[name] = ""
			}
		}
		records = append(records, normaliseRecord(raw))
	}
	return records, nil
}
