// Package csvfile writes study records to delimited files. Writes are
// atomic: output lands in a temp file that is renamed over the
// destination only after a clean flush, so a failed run never leaves a
// partially written file behind.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kevinjones/trialsift/internal/core/domain"
	"github.com/kevinjones/trialsift/internal/core/ports/driven"
)

// Ensure Sink implements the interface.
var _ driven.StudySink = (*Sink)(nil)

// Sink writes studies as UTF-8 CSV with a header row.
type Sink struct{}

// Write emits one row per study in the fixed column order. When
// enrichmentColumn is non-empty it is appended as the final column;
// records the enrichment stage never touched get the not-available
// sentinel there.
func (s *Sink) Write(path string, studies []domain.Study, enrichmentColumn string) error {
	columns := domain.Columns
	if enrichmentColumn != "" {
		columns = append(append([]string{}, domain.Columns...), enrichmentColumn)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".trialsift-*.csv")
	if err != nil {
		return fmt.Errorf("csvfile: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	w := csv.NewWriter(tmp)
	if err := w.Write(columns); err != nil {
		tmp.Close()
		return fmt.Errorf("csvfile: write header: %w", err)
	}

	row := make([]string, len(columns))
	for i := range studies {
		study := &studies[i]
		for j, name := range domain.Columns {
			value, _ := study.Field(name)
			row[j] = value
		}
		if enrichmentColumn != "" {
			value := domain.NotAvailable
			if study.Classified {
				value = study.Classification
			}
			row[len(row)-1] = value
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("csvfile: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("csvfile: flush: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("csvfile: close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("csvfile: move into place: %w", err)
	}
	return nil
}
