package driven

import "github.com/kevinjones/trialsift/internal/core/domain"

// StudySink persists an ordered study set to a destination path.
type StudySink interface {
	// Write emits one row per study in the fixed column order. When
	// enrichmentColumn is non-empty it is appended as the final column;
	// records the enrichment stage never touched default to the
	// not-available sentinel. Writing is all-or-nothing: on failure no
	// partial destination file is left behind.
	Write(path string, studies []domain.Study, enrichmentColumn string) error
}
