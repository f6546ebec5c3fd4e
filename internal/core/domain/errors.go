package domain

import "errors"

// Domain errors represent pipeline-level failures, distinct from the
// transport errors raised by adapters.
var (
	// ErrNoStudies indicates the post-filter study set was empty, so
	// there is nothing to enrich or export.
	ErrNoStudies = errors.New("no studies match the filtering criteria")
)
