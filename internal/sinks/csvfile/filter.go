package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadIDColumn reads the named column from a CSV file into a set,
// trimming whitespace and skipping empty values.
func ReadIDColumn(path, column string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvfile: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csvfile: read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csvfile: %s has no header row", path)
	}

	idx, err := columnIndex(rows[0], column)
	if err != nil {
		return nil, fmt.Errorf("csvfile: %s: %w", path, err)
	}

	ids := make(map[string]struct{})
	for _, row := range rows[1:] {
		if idx >= len(row) {
			continue
		}
		id := strings.TrimSpace(row[idx])
		if id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids, nil
}

// FilterByID rewrites the CSV at path, keeping only data rows whose
// idColumn value is in the keep set. The header is preserved and the
// rewrite is atomic. Returns the kept and total data-row counts.
func FilterByID(path, idColumn string, keep map[string]struct{}) (kept, total int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("csvfile: open %s: %w", path, err)
	}
	rows, err := csv.NewReader(f).ReadAll()
	f.Close()
	if err != nil {
		return 0, 0, fmt.Errorf("csvfile: read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return 0, 0, fmt.Errorf("csvfile: %s has no header row", path)
	}

	idx, err := columnIndex(rows[0], idColumn)
	if err != nil {
		return 0, 0, fmt.Errorf("csvfile: %s: %w", path, err)
	}

	filtered := [][]string{rows[0]}
	for _, row := range rows[1:] {
		total++
		if idx >= len(row) {
			continue
		}
		if _, ok := keep[strings.TrimSpace(row[idx])]; ok {
			filtered = append(filtered, row)
			kept++
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".trialsift-*.csv")
	if err != nil {
		return kept, total, fmt.Errorf("csvfile: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(filtered); err != nil {
		tmp.Close()
		return kept, total, fmt.Errorf("csvfile: write rows: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return kept, total, fmt.Errorf("csvfile: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return kept, total, fmt.Errorf("csvfile: move into place: %w", err)
	}
	return kept, total, nil
}

// columnIndex finds a header column by name.
func columnIndex(header []string, column string) (int, error) {
	for i, name := range header {
		if strings.TrimSpace(name) == column {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found in header", column)
}
