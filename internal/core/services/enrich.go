package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/kevinjones/trialsift/internal/core/domain"
	"github.com/kevinjones/trialsift/internal/core/ports/driven"
	"github.com/kevinjones/trialsift/internal/logger"
)

// ErrUnknownPlaceholder indicates a prompt template references a field
// that does not exist on the study record.
var ErrUnknownPlaceholder = errors.New("unknown prompt placeholder")

// placeholderRe matches {field_name} placeholders in a prompt template.
var placeholderRe = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// EnrichOptions configures the enrichment pass.
type EnrichOptions struct {
	// PromptTemplate is the per-record prompt with {field} placeholders
	// named after study columns.
	PromptTemplate string

	// MaxRows caps how many records, counted from the front of the input,
	// are eligible for a classifier call. Zero means no cap.
	MaxRows int

	// DebugOnly restricts eligible records to those whose identifier is
	// in AllowedIDs. Used for tuning prompts without the cost of a full
	// run; excluded records stay in the output with the sentinel value.
	DebugOnly bool

	// AllowedIDs is the debug allow-list of trial identifiers.
	AllowedIDs []string

	// CallDelay is the minimum spacing between classifier calls,
	// throttling against the external service's rate limits. Zero
	// disables throttling.
	CallDelay time.Duration
}

// EnrichStats tallies the outcome of an enrichment pass.
type EnrichStats struct {
	// Attempted counts records that were eligible for a classifier call.
	Attempted int

	// Succeeded counts calls that produced a classification.
	Succeeded int

	// Failed counts eligible records that ended with the sentinel:
	// template mismatches, call errors, and empty responses.
	Failed int

	// Bypassed counts records routed straight to the sentinel by the row
	// cap or the debug allow-list, with no call and no delay.
	Bypassed int
}

// RenderPrompt substitutes every {field} placeholder in the template
// with the study's corresponding field value. A placeholder with no
// matching field is an error; the caller marks the record failed rather
// than calling the classifier with a broken prompt.
func RenderPrompt(template string, s *domain.Study) (string, error) {
	var missing string
	rendered := placeholderRe.ReplaceAllStringFunc(template, func(ph string) string {
		name := ph[1 : len(ph)-1]
		value, ok := s.Field(name)
		if !ok {
			if missing == "" {
				missing = name
			}
			return ph
		}
		return value
	})
	if missing != "" {
		return "", fmt.Errorf("%w: %s", ErrUnknownPlaceholder, missing)
	}
	return rendered, nil
}

// Enrich assigns the classification field to every study, in place and
// in input order. Eligible records get one classifier call each; a
// failed call stores the sentinel instead of aborting the batch.
// Records bypassed by the row cap or the allow-list keep their input
// position and receive the sentinel directly.
//
// The only error paths are context cancellation while waiting on the
// rate limiter and a nil classifier.
func Enrich(ctx context.Context, classifier driven.Classifier, studies []domain.Study, opts EnrichOptions) (*EnrichStats, error) {
	if classifier == nil {
		return nil, errors.New("enrich: classifier is required")
	}

	var limiter *rate.Limiter
	if opts.CallDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.CallDelay), 1)
	}

	allowed := make(map[string]struct{}, len(opts.AllowedIDs))
	for _, id := range opts.AllowedIDs {
		allowed[id] = struct{}{}
	}

	stats := &EnrichStats{}
	for i := range studies {
		s := &studies[i]

		if !eligible(i, s, opts, allowed) {
			s.Classification = domain.NotAvailable
			s.Classified = true
			stats.Bypassed++
			continue
		}

		stats.Attempted++
		logger.Debug("[%d/%d] classifying %s", stats.Attempted, len(studies), s.NCTID)

		prompt, err := RenderPrompt(opts.PromptTemplate, s)
		if err != nil {
			logger.Warn("classify %s: %v", s.NCTID, err)
			s.Classification = domain.NotAvailable
			s.Classified = true
			stats.Failed++
			continue
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return stats, fmt.Errorf("enrich: %w", err)
			}
		}

		value, err := classifier.Classify(ctx, prompt)
		value = strings.TrimSpace(value)
		if err != nil || value == "" {
			if err != nil {
				logger.Warn("classify %s: %v", s.NCTID, err)
			}
			s.Classification = domain.NotAvailable
			s.Classified = true
			stats.Failed++
			continue
		}

		s.Classification = value
		s.Classified = true
		stats.Succeeded++
	}

	return stats, nil
}

// eligible applies the selection policy: the row cap first, then the
// debug allow-list. Output order is untouched either way.
func eligible(index int, s *domain.Study, opts EnrichOptions, allowed map[string]struct{}) bool {
	if opts.MaxRows > 0 && index >= opts.MaxRows {
		return false
	}
	if opts.DebugOnly {
		_, ok := allowed[s.NCTID]
		return ok
	}
	return true
}
