package driven

import (
	"context"

	"github.com/kevinjones/trialsift/internal/core/domain"
)

// TrialRegistry fetches pages of raw trial records from the source
// registry's cursor-based list API.
type TrialRegistry interface {
	// FetchPage retrieves one page of studies. pageToken is empty for the
	// first request; the returned page carries the continuation token for
	// the next request, or an empty token when no pages remain.
	//
	// Any transport failure, non-success status, or malformed body is
	// returned as an error with no partial page.
	FetchPage(ctx context.Context, pageToken string) (*domain.StudyPage, error)
}
