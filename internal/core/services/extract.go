// Package services implements the trialsift pipeline stages: paged
// extraction, normalisation, client-side filtering, classifier
// enrichment, and the orchestrator that sequences them.
package services

import (
	"context"
	"fmt"

	"github.com/kevinjones/trialsift/internal/core/domain"
	"github.com/kevinjones/trialsift/internal/core/ports/driven"
	"github.com/kevinjones/trialsift/internal/logger"
)

// MaxPages bounds the cursor walk. A registry that keeps handing out
// continuation tokens stops the run here instead of looping forever;
// the caller gets everything accumulated so far plus a resume token.
const MaxPages = 100

// ExtractResult is the outcome of a full registry walk.
type ExtractResult struct {
	// Studies are all fetched records in registry order.
	Studies []domain.RawStudy

	// Pages is the number of pages retrieved.
	Pages int

	// TotalCount is the registry's reported total match count, when the
	// first page carried one.
	TotalCount int

	// ResumeToken is non-empty when the page ceiling stopped the walk
	// before the registry ran out of pages.
	ResumeToken string
}

// ExtractAll walks the registry's continuation cursor from startToken
// (empty for a fresh walk) until no pages remain or the page ceiling is
// reached. Extraction is all-or-nothing: any page failure aborts the
// whole walk with an error and no partial results.
func ExtractAll(ctx context.Context, registry driven.TrialRegistry, startToken string) (*ExtractResult, error) {
	result := &ExtractResult{}
	token := startToken

	for result.Pages < MaxPages {
		page, err := registry.FetchPage(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", result.Pages+1, err)
		}

		result.Pages++
		result.Studies = append(result.Studies, page.Studies...)
		if result.Pages == 1 && page.TotalCount > 0 {
			result.TotalCount = page.TotalCount
		}
		logger.Info("fetched page %d: %d studies (total %d)",
			result.Pages, len(page.Studies), len(result.Studies))

		if page.NextPageToken == "" {
			return result, nil
		}
		token = page.NextPageToken
	}

	logger.Warn("reached maximum page limit (%d pages), stopping extraction", MaxPages)
	result.ResumeToken = token
	return result, nil
}
