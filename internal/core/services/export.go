package services

import (
	"context"
	"fmt"

	"github.com/kevinjones/trialsift/internal/core/domain"
	"github.com/kevinjones/trialsift/internal/core/ports/driven"
	"github.com/kevinjones/trialsift/internal/logger"
)

// Pipeline sequences extraction, normalisation, filtering, enrichment
// and the output sink. All collaborators arrive as explicit values;
// nothing is loaded from global state.
type Pipeline struct {
	Registry   driven.TrialRegistry
	Sink       driven.StudySink
	Normaliser *Normaliser

	// Classifier is required only when RunOptions.Enrichment is set.
	Classifier driven.Classifier
}

// RunOptions configures one pipeline run.
type RunOptions struct {
	// ResumeToken resumes a previously interrupted registry walk.
	ResumeToken string

	// Enrichment enables the classification stage when non-nil.
	Enrichment *EnrichOptions

	// EnrichmentColumn names the output column for the classification
	// value. Ignored when Enrichment is nil.
	EnrichmentColumn string

	// OutputPath is the CSV destination.
	OutputPath string
}

// Report summarises a completed run.
type Report struct {
	// Fetched is the number of raw records retrieved.
	Fetched int

	// Pages is the number of registry pages walked.
	Pages int

	// Kept and DroppedMaleOnly are the client-side filter tallies.
	Kept            int
	DroppedMaleOnly int

	// Enrich carries the enrichment tallies, nil when the stage was
	// disabled.
	Enrich *EnrichStats

	// ResumeToken is non-empty when the page ceiling interrupted the
	// walk; pass it back via RunOptions.ResumeToken to continue.
	ResumeToken string

	// OutputPath is where the CSV was written.
	OutputPath string
}

// Run executes the pipeline end to end. Extraction failures, an empty
// post-filter set, and sink failures are all fatal; enrichment failures
// are absorbed per record.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*Report, error) {
	extracted, err := ExtractAll(ctx, p.Registry, opts.ResumeToken)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Fetched:     len(extracted.Studies),
		Pages:       extracted.Pages,
		ResumeToken: extracted.ResumeToken,
		OutputPath:  opts.OutputPath,
	}
	logger.Info("extracted %d studies across %d pages", report.Fetched, report.Pages)

	filter := &GenderFilter{}
	studies := make([]domain.Study, 0, len(extracted.Studies))
	for _, raw := range extracted.Studies {
		study := p.Normaliser.Normalise(raw)
		if filter.Keep(&study) {
			studies = append(studies, study)
		}
	}
	report.Kept = filter.Passed
	report.DroppedMaleOnly = filter.Dropped
	logger.Info("filtered: %d kept, %d male-only dropped", filter.Passed, filter.Dropped)

	if len(studies) == 0 {
		return report, domain.ErrNoStudies
	}

	enrichmentColumn := ""
	if opts.Enrichment != nil {
		stats, err := Enrich(ctx, p.Classifier, studies, *opts.Enrichment)
		if err != nil {
			return report, err
		}
		report.Enrich = stats
		enrichmentColumn = opts.EnrichmentColumn
		logger.Info("enrichment: %d succeeded, %d failed, %d bypassed",
			stats.Succeeded, stats.Failed, stats.Bypassed)
	}

	if err := p.Sink.Write(opts.OutputPath, studies, enrichmentColumn); err != nil {
		return report, fmt.Errorf("write output: %w", err)
	}

	return report, nil
}
