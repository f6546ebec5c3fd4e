package services

import "github.com/kevinjones/trialsift/internal/core/domain"

// GenderFilter drops male-only trials. Geography, date range, phase and
// study type are pushed into the registry's server-side filter
// expression; this single client-side rule compensates for the
// registry's sex filter, which is known to leak male-only records.
type GenderFilter struct {
	// Dropped counts records removed by the rule.
	Dropped int

	// Passed counts records that survived the rule.
	Passed int
}

// Keep decides whether a study stays in the pipeline, updating the
// filter's counters.
func (f *GenderFilter) Keep(s *domain.Study) bool {
	if s.Gender == domain.GenderMaleOnly {
		f.Dropped++
		return false
	}
	f.Passed++
	return true
}
